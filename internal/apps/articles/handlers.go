package articles

import (
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	articles *services.ArticleService
	comments *handlers.CommentHandler
}

func NewHandler(articles *services.ArticleService, comments *handlers.CommentHandler) *Handler {
	return &Handler{articles: articles, comments: comments}
}

func (h *Handler) List(c *fiber.Ctx) error {
	return h.list(c, false)
}

// ListAll includes drafts for the staff editor.
func (h *Handler) ListAll(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *Handler) list(c *fiber.Ctx, includeDrafts bool) error {
	limit, offset := handlers.Page(c)
	articles, total, err := h.articles.List(includeDrafts, limit, offset)
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return c.JSON(dto.PageResponse{Items: articles, Total: total, Limit: limit, Offset: offset})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	article, err := h.articles.GetBySlug(c.Params("slug"), identity.CurrentUser(c).IsStaff())
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return c.JSON(article)
}

func (h *Handler) Comments(c *fiber.Ctx) error {
	article, err := h.articles.GetBySlug(c.Params("slug"), false)
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return h.comments.ListFor(c, models.ArticleRef(article.ID))
}

func (h *Handler) CreateComment(c *fiber.Ctx) error {
	article, err := h.articles.GetBySlug(c.Params("slug"), false)
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return h.comments.CreateFor(c, models.ArticleRef(article.ID), "/articles/"+article.Slug)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	var article models.Article
	req.ApplyTo(&article)
	if err := h.articles.Save(identity.CurrentUser(c), &article); err != nil {
		return handlers.WriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	article, err := h.articles.GetBySlug(c.Params("slug"), true)
	if err != nil {
		return handlers.WriteError(c, err)
	}

	var req dto.ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	req.ApplyTo(article)
	if err := h.articles.Save(identity.CurrentUser(c), article); err != nil {
		return handlers.WriteError(c, err)
	}
	return c.JSON(article)
}
