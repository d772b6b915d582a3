package activity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ddka-tech/ddka-backend/internal/geo"
	"github.com/ddka-tech/ddka-backend/internal/metrics"
	"github.com/ddka-tech/ddka-backend/internal/models"
)

// DefaultRetention is how many login events are kept per (user, role) pair.
const DefaultRetention = 3

// Store is the persistence the recorder needs.
type Store interface {
	Insert(ctx context.Context, event *models.LoginActivity) error
	CountForUser(ctx context.Context, userID uuid.UUID, role models.Role) (int64, error)
	OldestIDs(ctx context.Context, userID uuid.UUID, role models.Role, n int) ([]uuid.UUID, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	RecentForUser(ctx context.Context, userID uuid.UUID, role models.Role, limit int) ([]models.LoginActivity, error)
}

// Recorder writes login-activity events. The geocoder and locator are both
// optional; a nil collaborator just means no enrichment of that kind.
type Recorder struct {
	store     Store
	locator   geo.IPLocator
	geocoder  geo.ReverseGeocoder
	retention int
}

func NewRecorder(store Store, locator geo.IPLocator, geocoder geo.ReverseGeocoder) *Recorder {
	return &Recorder{
		store:     store,
		locator:   locator,
		geocoder:  geocoder,
		retention: DefaultRetention,
	}
}

// Record persists one login event and prunes the account's history down to
// the retention cap. It never returns an error: a login must succeed even
// when its audit write cannot.
func (r *Recorder) Record(ctx context.Context, userID uuid.UUID, role models.Role, email, loginType string, req RequestInfo, coords *ClientCoords) {
	event := &models.LoginActivity{
		UserID:         userID,
		UserType:       role,
		Email:          email,
		IP:             ClientIP(req.RemoteIP, req.ForwardedFor),
		ForwardedIP:    req.ForwardedFor,
		UserAgent:      req.UserAgent,
		AcceptLanguage: req.AcceptLanguage,
		Referer:        req.Referer,
		Path:           req.Path,
		Method:         req.Method,
		Host:           req.Host,
		LoginType:      loginType,
		Country:        req.Country,
	}

	r.enrichLocation(ctx, event, coords)

	if err := r.store.Insert(ctx, event); err != nil {
		slog.Error("failed to record login activity", "userId", userID, "role", role, "error", err)
		return
	}
	metrics.LoginsRecorded.WithLabelValues(string(role)).Inc()

	r.prune(ctx, userID, role)
}

// enrichLocation fills coordinates and a place label. Client-supplied
// coordinates win over the IP database; the reverse geocoder only runs for
// client coordinates, since IP-derived ones are too coarse to label.
func (r *Recorder) enrichLocation(ctx context.Context, event *models.LoginActivity, coords *ClientCoords) {
	if coords != nil {
		lat, lon, acc := coords.Latitude, coords.Longitude, coords.Accuracy
		event.Latitude = &lat
		event.Longitude = &lon
		event.Accuracy = &acc

		if r.geocoder != nil {
			label, err := r.geocoder.Label(ctx, lat, lon)
			if err != nil {
				slog.Warn("reverse geocode failed", "error", err)
			} else {
				event.LocationLabel = label
			}
		}
		return
	}

	if r.locator == nil {
		return
	}
	if lat, lon, ok := r.locator.Locate(event.IP); ok {
		event.Latitude = &lat
		event.Longitude = &lon
	}
}

func (r *Recorder) prune(ctx context.Context, userID uuid.UUID, role models.Role) {
	count, err := r.store.CountForUser(ctx, userID, role)
	if err != nil {
		slog.Error("failed to count login activity", "userId", userID, "error", err)
		return
	}
	excess := int(count) - r.retention
	if excess <= 0 {
		return
	}

	ids, err := r.store.OldestIDs(ctx, userID, role, excess)
	if err != nil {
		slog.Error("failed to find stale login activity", "userId", userID, "error", err)
		return
	}
	deleted, err := r.store.DeleteByIDs(ctx, ids)
	if err != nil {
		slog.Error("failed to prune login activity", "userId", userID, "error", err)
		return
	}
	metrics.ActivityPruned.Add(float64(deleted))
}

// Recent returns the newest events for one account, newest first.
func (r *Recorder) Recent(ctx context.Context, userID uuid.UUID, role models.Role, limit int) ([]models.LoginActivity, error) {
	if limit <= 0 {
		limit = r.retention
	}
	return r.store.RecentForUser(ctx, userID, role, limit)
}
