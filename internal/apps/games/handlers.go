package games

import (
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	games    *services.GameService
	comments *handlers.CommentHandler
	catalog  *catalog.Catalog
}

func NewHandler(games *services.GameService, comments *handlers.CommentHandler, cat *catalog.Catalog) *Handler {
	return &Handler{games: games, comments: comments, catalog: cat}
}

func (h *Handler) List(c *fiber.Ctx) error {
	limit, offset := handlers.Page(c)

	games, total, err := h.games.List(c.Query("tier"), limit, offset)
	if err != nil {
		return handlers.WriteError(c, err)
	}

	items := make([]dto.GameResponse, len(games))
	for i := range games {
		items[i] = dto.NewGameResponse(&games[i], h.catalog)
	}
	return c.JSON(dto.PageResponse{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	game, err := h.games.GetBySlug(c.Params("slug"))
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return c.JSON(dto.NewGameResponse(game, h.catalog))
}

func (h *Handler) Comments(c *fiber.Ctx) error {
	game, err := h.games.GetBySlug(c.Params("slug"))
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return h.comments.ListFor(c, models.GameRef(game.ID))
}

func (h *Handler) CreateComment(c *fiber.Ctx) error {
	game, err := h.games.GetBySlug(c.Params("slug"))
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return h.comments.CreateFor(c, models.GameRef(game.ID), "/games/"+game.Slug)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var req dto.GameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	var game models.Game
	if err := req.ApplyTo(&game); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if err := h.games.Save(identity.CurrentUser(c), &game); err != nil {
		return handlers.WriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewGameResponse(&game, h.catalog))
}

func (h *Handler) Update(c *fiber.Ctx) error {
	game, err := h.games.GetBySlug(c.Params("slug"))
	if err != nil {
		return handlers.WriteError(c, err)
	}

	var req dto.GameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := req.ApplyTo(game); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if err := h.games.Save(identity.CurrentUser(c), game); err != nil {
		return handlers.WriteError(c, err)
	}
	return c.JSON(dto.NewGameResponse(game, h.catalog))
}

func (h *Handler) OverrideTier(c *fiber.Ctx) error {
	game, err := h.games.GetBySlug(c.Params("slug"))
	if err != nil {
		return handlers.WriteError(c, err)
	}

	var req dto.OverrideTierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	game, err = h.games.OverrideTier(identity.CurrentUser(c), game.ID, req.Tier)
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return c.JSON(dto.NewGameResponse(game, h.catalog))
}

func (h *Handler) ClearOverride(c *fiber.Ctx) error {
	game, err := h.games.GetBySlug(c.Params("slug"))
	if err != nil {
		return handlers.WriteError(c, err)
	}

	game, err = h.games.ClearOverride(identity.CurrentUser(c), game.ID)
	if err != nil {
		return handlers.WriteError(c, err)
	}
	return c.JSON(dto.NewGameResponse(game, h.catalog))
}
