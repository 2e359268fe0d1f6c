package middleware

import (
	"crypto/subtle"
	"math/rand"

	"orgpulse-survey/internal/config"
	"orgpulse-survey/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CSRF double-submit cookie names
const (
	CSRFCookieName = "csrf-token"
	CSRFHeaderName = "X-CSRF-Token"
)

// csrfTokenLength is the generated token size
const csrfTokenLength = 32

// csrfCookieMaxAge matches the auth cookie lifetime (7 days)
const csrfCookieMaxAge = 7 * 24 * 60 * 60

const csrfAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateCSRFToken draws a fixed-length alphanumeric token. The
// token only needs to be unguessable per session, not a credential,
// so math/rand suffices.
func generateCSRFToken() string {
	b := make([]byte, csrfTokenLength)
	for i := range b {
		b[i] = csrfAlphabet[rand.Intn(len(csrfAlphabet))]
	}
	return string(b)
}

// CSRFGuard implements double-submit-cookie validation. Safe methods
// always pass and receive a token cookie when none exists; unsafe
// methods require the cookie token to equal the X-CSRF-Token header,
// compared in constant time.
func CSRFGuard(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookieToken := c.Cookies(CSRFCookieName)

		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			if cookieToken == "" {
				issueCSRFCookie(c, cfg)
			}
			return c.Next()
		}

		headerToken := c.Get(CSRFHeaderName)
		if cookieToken == "" || headerToken == "" {
			return response.Forbidden(c, "CSRF token missing")
		}

		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) != 1 {
			return response.Forbidden(c, "CSRF token mismatch")
		}

		return c.Next()
	}
}

// issueCSRFCookie attaches a fresh token. Not httpOnly: client script
// must read it to echo it into the header on subsequent requests.
func issueCSRFCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     CSRFCookieName,
		Value:    generateCSRFToken(),
		Path:     "/",
		MaxAge:   csrfCookieMaxAge,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: false,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}
