package games

import (
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct {
	catalog   *catalog.Catalog
	publisher events.Publisher
	comments  *handlers.CommentHandler
	handler   *Handler
}

func New(cat *catalog.Catalog, publisher events.Publisher, comments *handlers.CommentHandler) *Plugin {
	return &Plugin{catalog: cat, publisher: publisher, comments: comments}
}

func (p *Plugin) ID() string { return "games" }

func (p *Plugin) handlerFor(db *gorm.DB) *Handler {
	if p.handler == nil {
		p.handler = NewHandler(services.NewGameService(db, p.publisher), p.comments, p.catalog)
	}
	return p.handler
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	h := p.handlerFor(db)

	router.Get("/games", h.List)
	router.Get("/games/:slug", h.Get)
	router.Get("/games/:slug/comments", h.Comments)
	router.Post("/games/:slug/comments", h.CreateComment)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	h := p.handlerFor(db)

	router.Post("/games", h.Create)
	router.Put("/games/:slug", h.Update)
	router.Post("/games/:slug/override", h.OverrideTier)
	router.Delete("/games/:slug/override", h.ClearOverride)
}
