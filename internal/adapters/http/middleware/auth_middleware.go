package middleware

import (
	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/config"
	"orgpulse-survey/internal/pkg/jwt"
	"orgpulse-survey/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthCookieName is the only credential source. Authorization headers
// and query parameters are never honored.
const AuthCookieName = "authToken"

// userLocalKey is the ctx locals key for the resolved session
const userLocalKey = "authenticatedUser"

// AccountKind tags how a session was resolved
type AccountKind int

const (
	// AccountRegular is a session backed by a users row
	AccountRegular AccountKind = iota
	// AccountSystem is the reserved account authenticated by token
	// alone, with no users row. It is treated as admin unconditionally
	// and never appears in user listings. See config.SystemAccountConfig.
	AccountSystem
)

// AuthenticatedUser is the resolved session placed in ctx locals
type AuthenticatedUser struct {
	ID    uint
	Email string
	Role  string
	Kind  AccountKind
}

// IsAdmin reports whether the session passes admin gates. The system
// account bypasses the role check by tag, decided once at resolution.
func (u *AuthenticatedUser) IsAdmin() bool {
	return u.Kind == AccountSystem || u.Role == models.RoleAdmin
}

// resolveUser extracts and verifies the auth cookie. Returns nil when
// there is no valid session, without distinguishing causes.
func resolveUser(c *fiber.Ctx, cfg *config.Config) *AuthenticatedUser {
	token := c.Cookies(AuthCookieName)
	if token == "" {
		return nil
	}

	claims := jwt.Verify(token, cfg.JWT.Secret)
	if claims == nil {
		return nil
	}

	user := &AuthenticatedUser{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
		Kind:  AccountRegular,
	}

	// The system account tag is resolved exactly once, here.
	if claims.UserID == cfg.SystemAccount.ID && claims.Email == cfg.SystemAccount.Email {
		user.Kind = AccountSystem
	}

	return user
}

// AuthRequired resolves the session and rejects unauthenticated
// requests with 401. The wrapped handler never runs without a session.
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := resolveUser(c, cfg)
		if user == nil {
			return response.Unauthorized(c, "Authentication required")
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// AdminOnly rejects sessions without the admin role with 403. Must
// run after AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		if !user.IsAdmin() {
			return response.Forbidden(c, "Administrator access required")
		}

		return c.Next()
	}
}

// CurrentUser returns the session resolved by AuthRequired
func CurrentUser(c *fiber.Ctx) (*AuthenticatedUser, bool) {
	user, ok := c.Locals(userLocalKey).(*AuthenticatedUser)
	return user, ok
}
