package verify

import (
	"context"
	"errors"
	"strings"

	"github.com/ddka-tech/ddka-backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound marks a lookup that completed but matched nothing. Store
// failures are returned as ordinary errors so callers can tell "nothing
// matched" from "the system could not check".
var ErrNotFound = errors.New("no record found")

// Directory is the read-side the lookup service needs. A nil record with nil
// error means no match.
type Directory interface {
	PlayerByIdentifier(ctx context.Context, identifier string) (*models.Player, error)
	OfficialByIdentifier(ctx context.Context, identifier string) (*models.TechnicalOfficial, error)
	InstitutionByIdentifier(ctx context.Context, identifier string) (*models.Institution, error)
	PlayerByTransactionID(ctx context.Context, txn string) (*models.Player, error)
	PlayerByContact(ctx context.Context, email, phone string) (*models.Player, error)
	OfficialByContact(ctx context.Context, email, mobile string) (*models.TechnicalOfficial, error)
}

// Service resolves identifiers across entity types. Pure read path.
type Service struct {
	dir       Directory
	regPrefix string
}

func NewService(dir Directory, registrationCodePrefix string) *Service {
	return &Service{dir: dir, regPrefix: registrationCodePrefix}
}

// LookupPlayer resolves an identifier against players only.
func (s *Service) LookupPlayer(ctx context.Context, identifier string) (*Record, error) {
	player, err := s.dir.PlayerByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrNotFound
	}
	rec := normalizePlayer(player, strings.ToUpper(identifier))
	return &rec, nil
}

// LookupOfficial resolves an identifier against technical officials only.
func (s *Service) LookupOfficial(ctx context.Context, identifier string) (*Record, error) {
	official, err := s.dir.OfficialByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if official == nil {
		return nil, ErrNotFound
	}
	rec := s.normalizeOfficial(official, strings.ToUpper(identifier))
	return &rec, nil
}

// LookupInstitution resolves an identifier against institutions only.
func (s *Service) LookupInstitution(ctx context.Context, identifier string) (*Record, error) {
	inst, err := s.dir.InstitutionByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, ErrNotFound
	}
	rec := normalizeInstitution(inst, strings.ToUpper(identifier))
	return &rec, nil
}

// Lookup resolves an identifier against all three entity types at once,
// cross-links records that plausibly belong to the same person, and returns
// one prioritized result: official first, then player, then institution.
func (s *Service) Lookup(ctx context.Context, identifier string) (*UnifiedRecord, error) {
	var (
		player      *models.Player
		official    *models.TechnicalOfficial
		institution *models.Institution
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		player, err = s.dir.PlayerByIdentifier(gctx, identifier)
		return err
	})
	g.Go(func() (err error) {
		official, err = s.dir.OfficialByIdentifier(gctx, identifier)
		return err
	})
	g.Go(func() (err error) {
		institution, err = s.dir.InstitutionByIdentifier(gctx, identifier)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Cross-link: a player and an official sharing a transaction id or a
	// contact channel are the same person wearing two hats.
	if official == nil && player != nil {
		if player.TransactionID != "" {
			found, err := s.dir.OfficialByIdentifier(ctx, player.TransactionID)
			if err != nil {
				return nil, err
			}
			official = found
		}
		if official == nil {
			found, err := s.dir.OfficialByContact(ctx, player.Email, player.Phone)
			if err != nil {
				return nil, err
			}
			official = found
		}
	}
	if player == nil && official != nil {
		if official.TransactionID != "" {
			found, err := s.dir.PlayerByTransactionID(ctx, official.TransactionID)
			if err != nil {
				return nil, err
			}
			player = found
		}
		if player == nil {
			found, err := s.dir.PlayerByContact(ctx, official.Email, official.Mobile)
			if err != nil {
				return nil, err
			}
			player = found
		}
	}

	if player == nil && official == nil && institution == nil {
		return nil, ErrNotFound
	}

	normalizedID := strings.ToUpper(strings.TrimSpace(identifier))
	var records []Record
	if official != nil {
		records = append(records, s.normalizeOfficial(official, normalizedID))
	}
	if player != nil {
		records = append(records, normalizePlayer(player, normalizedID))
	}
	if institution != nil {
		records = append(records, normalizeInstitution(institution, normalizedID))
	}

	result := UnifiedRecord{Record: records[0], Records: records}
	if result.IDNumber == "" {
		result.IDNumber = normalizedID
	}
	result.Roles = unionRoles(records)
	return &result, nil
}

func unionRoles(records []Record) []string {
	seen := make(map[string]bool)
	var union []string
	for _, rec := range records {
		for _, role := range rec.Roles {
			if !seen[role] {
				seen[role] = true
				union = append(union, role)
			}
		}
	}
	return union
}
