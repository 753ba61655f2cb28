package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

// RequireType must run after the auth middleware. It rejects users whose
// account type is not one of allowed.
func RequireType(allowed ...string) fiber.Handler {
	allow := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			allow[a] = true
		}
	}

	return func(c fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok || !allow[strings.ToLower(strings.TrimSpace(id.UserType))] {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		return c.Next()
	}
}
