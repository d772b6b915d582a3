package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocodeLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12.971599", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.594566", r.URL.Query().Get("lon"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Bengaluru, Karnataka, India"}`))
	}))
	defer srv.Close()

	g := NewHTTPReverseGeocoder(srv.URL, time.Second)
	label, err := g.Label(context.Background(), 12.971599, 77.594566)
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru, Karnataka, India", label)
}

func TestReverseGeocodeNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewHTTPReverseGeocoder(srv.URL, time.Second)
	_, err := g.Label(context.Background(), 1, 2)
	assert.Error(t, err)
}

func TestReverseGeocodeMissingDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := NewHTTPReverseGeocoder(srv.URL, time.Second)
	_, err := g.Label(context.Background(), 1, 2)
	assert.Error(t, err)
}

func TestMaxMindLocatorWithoutDatabase(t *testing.T) {
	l := OpenMaxMind("")
	_, _, ok := l.Locate("8.8.8.8")
	assert.False(t, ok)
	assert.NoError(t, l.Close())
}
