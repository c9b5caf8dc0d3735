package middleware

import (
	"strings"

	"ledger/pkg/auth"
	"ledger/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionIDKey       = "sessionID"
	SessionTokenHeader = "X-Session-Token"
)

// Sessions is the registry the middleware binds requests to.
type Sessions interface {
	// Touch reports whether id names a live session and marks it as seen.
	Touch(id uuid.UUID) bool
	Open() uuid.UUID
}

// SessionMiddleware resolves the caller's session from the session cookie or
// a Bearer token. Callers without a valid token for a live session get a new
// session and a fresh cookie.
func SessionMiddleware(tokens *auth.TokenManager, sessions Sessions, cfg *config.SessionConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bound, err := bindSession(c, tokens, sessions, cfg, logger)
		if err != nil {
			return err
		}
		if bound {
			return c.Next()
		}

		id := sessions.Open()
		if err := issueToken(c, tokens, cfg, id, logger); err != nil {
			return err
		}
		c.Locals(SessionIDKey, id)
		return c.Next()
	}
}

// OptionalSession binds a session when the caller presents a valid token and
// otherwise lets the request through without one. Read-only routes use it so
// anonymous polling does not allocate sessions.
func OptionalSession(tokens *auth.TokenManager, sessions Sessions, cfg *config.SessionConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := bindSession(c, tokens, sessions, cfg, logger); err != nil {
			return err
		}
		return c.Next()
	}
}

// bindSession tries the cookie first and then the Bearer header. A token
// past half its lifetime is re-issued.
func bindSession(c *fiber.Ctx, tokens *auth.TokenManager, sessions Sessions, cfg *config.SessionConfig, logger *zap.Logger) (bool, error) {
	for _, token := range presentedTokens(c, cfg.CookieName) {
		info, err := tokens.ParseToken(token)
		if err != nil {
			logger.Debug("Discarding session token", zap.Error(err))
			continue
		}
		if !sessions.Touch(info.SessionID) {
			logger.Debug("Session token for unknown session", zap.String("session_id", info.SessionID.String()))
			continue
		}

		c.Locals(SessionIDKey, info.SessionID)
		if tokens.NeedsRefresh(info) {
			return true, issueToken(c, tokens, cfg, info.SessionID, logger)
		}
		return true, nil
	}
	return false, nil
}

func presentedTokens(c *fiber.Ctx, cookieName string) []string {
	var out []string
	if token := c.Cookies(cookieName); token != "" {
		out = append(out, token)
	}
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimPrefix(header, "Bearer "); token != "" {
			out = append(out, token)
		}
	}
	return out
}

func issueToken(c *fiber.Ctx, tokens *auth.TokenManager, cfg *config.SessionConfig, id uuid.UUID, logger *zap.Logger) error {
	signed, err := tokens.GenerateToken(id)
	if err != nil {
		logger.Error("Failed to issue session token", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to start session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(tokens.TokenDuration().Seconds()),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Set(SessionTokenHeader, signed)
	return nil
}

// SessionID returns the id stored by SessionMiddleware or OptionalSession.
func SessionID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(SessionIDKey).(uuid.UUID)
	return id, ok
}
