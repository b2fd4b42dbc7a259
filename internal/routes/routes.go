package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/tasknest/tasknest-backend/internal/config"
	"github.com/tasknest/tasknest-backend/internal/handlers"
	"github.com/tasknest/tasknest-backend/internal/middleware"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Profile  *handlers.ProfileHandler
	Category *handlers.CategoryHandler
	Task     *handlers.TaskHandler
	Health   *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth endpoints are public and get a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	jwt := middleware.JWTProtected(cfg)

	// Users: reads and writes both require authentication; writes are
	// additionally self-only (checked against the target object).
	api.Get("/users", jwt, h.User.List)
	api.Get("/users/:id", jwt, h.User.Get)
	api.Patch("/users/:id", jwt, h.User.Update)

	// Profiles: public reads, owner-only writes.
	api.Get("/profiles", h.Profile.List)
	api.Get("/profiles/:id", h.Profile.Get)
	api.Patch("/profiles/:id", jwt, h.Profile.Update)

	// Categories: read-only.
	api.Get("/categories", h.Category.List)
	api.Get("/categories/:id", h.Category.Get)

	// Tasks: authenticated reads, assignee-only writes.
	tasks := api.Group("/tasks", jwt)
	tasks.Get("/", h.Task.List)
	tasks.Post("/", h.Task.Create)
	tasks.Get("/:id", h.Task.Get)
	tasks.Patch("/:id", h.Task.Update)
	tasks.Put("/:id", h.Task.Update)
	tasks.Delete("/:id", h.Task.Delete)
}
