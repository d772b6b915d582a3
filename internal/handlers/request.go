package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ddka-tech/ddka-backend/internal/activity"
)

// requestInfo extracts the audit fingerprint from an inbound request.
func requestInfo(c *fiber.Ctx) activity.RequestInfo {
	return activity.RequestInfo{
		RemoteIP:       c.IP(),
		ForwardedFor:   c.Get("X-Forwarded-For"),
		UserAgent:      c.Get("User-Agent"),
		AcceptLanguage: c.Get("Accept-Language"),
		Referer:        c.Get("Referer"),
		Path:           c.OriginalURL(),
		Method:         c.Method(),
		Host:           c.Hostname(),
		Country: activity.NormalizeCountry(
			c.Get("CF-IPCountry"),
			c.Get("X-Appengine-Country"),
			c.Get("X-Country-Code"),
		),
	}
}
