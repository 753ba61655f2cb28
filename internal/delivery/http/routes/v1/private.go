package v1

import "github.com/gofiber/fiber/v3"

func registerPrivate(r fiber.Router, d Deps) {
	if d.UserHandler != nil {
		d.UserHandler.RegisterRoutes(r.Group("/users", d.Auth))
	}

	skills := r.Group("/skills", d.Auth)
	if d.SkillHandler != nil {
		d.SkillHandler.RegisterRoutes(skills)
	}
	if d.MatchHandler != nil {
		skills.Get("/find-courses-by-match", d.MatchHandler.FindCoursesByMatch)
	}
}
