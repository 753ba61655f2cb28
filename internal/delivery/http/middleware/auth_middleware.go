package middleware

import (
	"errors"
	"strings"

	"skill-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type identityKey struct{}

// AuthMiddleware admits requests carrying a valid access token.
type AuthMiddleware struct {
	tokens jwt.Service
}

func NewAuthMiddleware(tokens jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := m.authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(identityKey{}, id)
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(header string) (jwt.Identity, error) {
	token, ok := BearerToken(header)
	if !ok {
		return jwt.Identity{}, unauthorized("Unauthorized", nil)
	}

	claims, err := m.tokens.ValidateToken(token)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return jwt.Identity{}, unauthorized("Token expired", err)
	case err != nil:
		return jwt.Identity{}, unauthorized("Invalid token", err)
	case m.tokens.IsRefreshToken(claims):
		return jwt.Identity{}, unauthorized("Invalid token", nil)
	}
	return claims.Identity(), nil
}

func unauthorized(msg string, err error) error {
	return NewAppError(fiber.StatusUnauthorized, msg, nil, err)
}

// CurrentIdentity returns the bearer stored by the auth middleware.
func CurrentIdentity(c fiber.Ctx) (jwt.Identity, bool) {
	id, ok := c.Locals(identityKey{}).(jwt.Identity)
	if !ok || id.UserID == uuid.Nil {
		return jwt.Identity{}, false
	}
	return id, true
}

func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := CurrentIdentity(c)
	return id.UserID, ok
}

// BearerToken extracts the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
