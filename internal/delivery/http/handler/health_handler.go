package handler

import (
	"context"
	"time"

	"skill-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	cacheUp   = "up"
	cacheDown = "down"

	cachePingTimeout = time.Second
)

// CacheProbe reports whether the catalog cache is reachable.
type CacheProbe interface {
	Available() bool
	Ping(ctx context.Context) error
}

// HealthHandler answers 200 while the process serves requests. A down cache
// is reported in the body only, since reads fall through to the database.
type HealthHandler struct {
	cache CacheProbe
}

func NewHealthHandler(cache CacheProbe) *HealthHandler {
	return &HealthHandler{cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h.cache == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"cache": h.cacheState(c.Context())})
}

func (h *HealthHandler) cacheState(ctx context.Context) string {
	if !h.cache.Available() {
		return cacheDown
	}
	ctx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		return cacheDown
	}
	return cacheUp
}
