package v1

import "github.com/gofiber/fiber/v3"

// registerPublic mounts the routes that work without a token. The jobs
// handler guards its own write routes.
func registerPublic(r fiber.Router, d Deps) {
	if d.AuthHandler != nil {
		d.AuthHandler.RegisterRoutes(r.Group("/auth"))
	}
	if d.JobsHandler != nil {
		d.JobsHandler.RegisterRoutes(r.Group("/jobs"))
	}
	if d.MatchHandler != nil {
		r.Post("/demo/match", d.MatchHandler.DemoMatch)
	}
}
