// Package geo provides the two geolocation collaborators of the login
// activity recorder: an embedded IP-to-coordinates lookup and an outbound
// reverse geocoder. Both are best-effort; callers treat every failure as
// "no location available".
package geo

import (
	"log/slog"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// IPLocator resolves an IP address to approximate coordinates.
type IPLocator interface {
	Locate(ip string) (lat, lon float64, ok bool)
}

// MaxMindLocator reads a local GeoLite2/GeoIP2 City database.
type MaxMindLocator struct {
	reader *geoip2.Reader
}

// OpenMaxMind opens the mmdb file at path. A missing or unreadable database
// is not fatal: the returned locator answers every query with ok=false.
func OpenMaxMind(path string) *MaxMindLocator {
	if path == "" {
		return &MaxMindLocator{}
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		slog.Warn("geoip database unavailable, IP lookups disabled", "path", path, "error", err)
		return &MaxMindLocator{}
	}
	return &MaxMindLocator{reader: reader}
}

func (l *MaxMindLocator) Locate(ip string) (float64, float64, bool) {
	if l.reader == nil {
		return 0, 0, false
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return 0, 0, false
	}
	record, err := l.reader.City(parsed)
	if err != nil || record == nil {
		return 0, 0, false
	}
	loc := record.Location
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return 0, 0, false
	}
	return loc.Latitude, loc.Longitude, true
}

func (l *MaxMindLocator) Close() error {
	if l.reader == nil {
		return nil
	}
	return l.reader.Close()
}
