// Package activity records successful-authentication audit events, enriches
// them with best-effort geolocation, and enforces the per-account retention
// cap. Nothing in this package may fail a login: every error is logged and
// swallowed.
package activity

import "strings"

// RequestInfo is the slice of an inbound HTTP request the audit trail keeps.
type RequestInfo struct {
	RemoteIP       string
	ForwardedFor   string
	UserAgent      string
	AcceptLanguage string
	Referer        string
	Path           string
	Method         string
	Host           string
	Country        string
}

// ClientCoords are browser-supplied coordinates sent along with a login.
type ClientCoords struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// ClientIP picks the address to attribute the login to: the first entry of
// X-Forwarded-For when present, otherwise the direct remote address.
func ClientIP(remoteIP, forwardedFor string) string {
	if forwardedFor != "" {
		first := forwardedFor
		if idx := strings.IndexByte(forwardedFor, ','); idx >= 0 {
			first = forwardedFor[:idx]
		}
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	return remoteIP
}

// NormalizeCountry returns the first usable country code from the candidate
// headers, uppercased. Placeholder values some proxies send for "unknown"
// count as absent.
func NormalizeCountry(candidates ...string) string {
	for _, c := range candidates {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || c == "XX" || c == "??" {
			continue
		}
		return c
	}
	return ""
}
