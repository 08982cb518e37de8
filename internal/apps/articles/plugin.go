package articles

import (
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct {
	comments *handlers.CommentHandler
	handler  *Handler
}

func New(comments *handlers.CommentHandler) *Plugin {
	return &Plugin{comments: comments}
}

func (p *Plugin) ID() string { return "articles" }

func (p *Plugin) handlerFor(db *gorm.DB) *Handler {
	if p.handler == nil {
		p.handler = NewHandler(services.NewArticleService(db), p.comments)
	}
	return p.handler
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	h := p.handlerFor(db)

	router.Get("/articles", h.List)
	router.Get("/articles/:slug", h.Get)
	router.Get("/articles/:slug/comments", h.Comments)
	router.Post("/articles/:slug/comments", h.CreateComment)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	h := p.handlerFor(db)

	router.Get("/articles", h.ListAll)
	router.Post("/articles", h.Create)
	router.Put("/articles/:slug", h.Update)
}
