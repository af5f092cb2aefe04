// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/config"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/handler"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/middleware"
)

// Handlers groups everything RegisterRoutes needs to wire the API.
// Users backs the JWT middleware's live-account check.
type Handlers struct {
	Auth          *handler.AuthHandler
	Events        *handler.EventHandler
	Registrations *handler.RegistrationHandler
	Seed          *handler.SeedHandler
	Users         middleware.UserLookup
}

// RegisterRoutes registers the full REST surface. The event catalog and
// auth endpoints are public; everything under /registrations requires a
// valid bearer token. When a Redis client is supplied, the whole API is
// rate limited and catalog GETs are response-cached; with rdb nil both
// middlewares are no-ops.
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	e.GET("/seed", h.Seed.Seed)

	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	e.GET("/events", h.Events.List, cache)
	e.GET("/events/:id", h.Events.Get, cache)

	regs := e.Group("/registrations")
	regs.Use(middleware.JWTAuth(cfg.JWTSecret, h.Users))
	regs.GET("/me", h.Registrations.Mine)
	regs.POST("/:eventId", h.Registrations.Create)
	regs.DELETE("/:eventId", h.Registrations.Cancel)
}
