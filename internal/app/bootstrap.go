package app

import (
	"context"
	"fmt"
	"strings"

	"skill-match/internal/config"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/routes"
	v1 "skill-match/internal/delivery/http/routes/v1"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	authMw := middleware.NewAuthMiddleware(c.JWT).Middleware()
	matchHandler := handler.NewMatchHandler(c.Matching, c.Config.Match.DefaultThreshold)

	registry := routes.NewRegistry(c.Cache, v1.Deps{
		Auth:         authMw,
		AuthHandler:  handler.NewAuthHandler(c.Auth),
		UserHandler:  handler.NewUserHandler(c.User),
		SkillHandler: handler.NewSkillHandler(c.UserSkill),
		MatchHandler: matchHandler,
		JobsHandler:  handler.NewJobsHandler(c.Catalog, authMw),
	}, ws.NewHandler(c.Hub, c.Logger).HandleCatalogWS)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container and the HTTP app. The returned cleanup closes
// every resource the container opened.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
