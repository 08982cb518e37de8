package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Catalog    *handlers.CatalogHandler
	Comments   *handlers.CommentHandler
	Moderation *handlers.ModerationHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	users middleware.UserLoader,
	staff *services.StaffPolicy,
	h Handlers,
	plugins []apps.Plugin,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Every API route sees the caller when a valid token is sent.
	api.Use(middleware.OptionalJWT(cfg), middleware.LoadUser(users))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
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
	api.Get("/auth/me", middleware.JWTProtected(cfg), h.Auth.Me)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), h.Auth.DeleteAccount)

	api.Get("/catalog/tiers", h.Catalog.Tiers)
	api.Get("/catalog/flags", h.Catalog.Flags)

	api.Post("/comments/:id/flag", h.Comments.Flag)

	// Staff: stored role, STAFF_EMAILS / STAFF_USER_IDS, or X-Admin-Token.
	admin := api.Group("/admin", middleware.StaffRequired(staff))
	admin.Get("/moderation/queue", h.Moderation.Queue)
	admin.Post("/moderation/approve", h.Moderation.Approve)
	admin.Post("/moderation/unapprove", h.Moderation.Unapprove)
	admin.Post("/moderation/reviewed", h.Moderation.MarkReviewed)
	admin.Post("/moderation/deactivate-authors", h.Moderation.DeactivateAuthors)
	admin.Post("/moderation/reactivate-authors", h.Moderation.ReactivateAuthors)
	admin.Delete("/comments/:id", h.Comments.Delete)

	for _, p := range plugins {
		p.RegisterRoutes(api, db, cfg)
		if ap, ok := p.(apps.AdminPlugin); ok {
			ap.RegisterAdminRoutes(admin, db, cfg)
		}
	}
}
