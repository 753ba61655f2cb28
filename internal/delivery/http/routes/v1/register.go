// Package v1 mounts the /api/v1 handlers.
package v1

import (
	"skill-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Deps are the handlers served under /api/v1. Auth is the access token
// middleware guarding the private routes; without it they are not mounted.
type Deps struct {
	Auth fiber.Handler

	AuthHandler  *handler.AuthHandler
	UserHandler  *handler.UserHandler
	SkillHandler *handler.SkillHandler
	MatchHandler *handler.MatchHandler
	JobsHandler  *handler.JobsHandler
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}
	registerPublic(r, d)
	if d.Auth != nil {
		registerPrivate(r, d)
	}
}
