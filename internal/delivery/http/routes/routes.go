package routes

import (
	"skill-match/internal/delivery/http/handler"
	v1 "skill-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	catalogWS fiber.Handler
	v1        v1.Deps
}

// NewRegistry collects the route groups of the server. cache may be nil when
// health should not report it; catalogWS may be nil
// when websocket notifications are disabled.
func NewRegistry(cache handler.CacheProbe, v1Deps v1.Deps, catalogWS fiber.Handler) *Registry {
	return &Registry{health: handler.NewHealthHandler(cache), catalogWS: catalogWS, v1: v1Deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.catalogWS == nil {
		return
	}
	app.Get("/ws/catalog", r.catalogWS)
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1.Register(app.Group("/api/v1"), r.v1)
}
