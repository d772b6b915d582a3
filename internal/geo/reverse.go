package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ReverseGeocoder turns coordinates into a human-readable place label.
type ReverseGeocoder interface {
	Label(ctx context.Context, lat, lon float64) (string, error)
}

// HTTPReverseGeocoder calls a nominatim-style JSON endpoint. One attempt,
// bounded by Timeout; no retries.
type HTTPReverseGeocoder struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

func NewHTTPReverseGeocoder(baseURL string, timeout time.Duration) *HTTPReverseGeocoder {
	return &HTTPReverseGeocoder{
		BaseURL: baseURL,
		Timeout: timeout,
		Client:  &http.Client{Timeout: timeout},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func (g *HTTPReverseGeocoder) Label(ctx context.Context, lat, lon float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}
	if body.DisplayName == "" {
		return "", errors.New("reverse geocode response missing display name")
	}
	return body.DisplayName, nil
}
