package handlers

import (
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type bulkAction func(actor *models.User, ids []uuid.UUID) (int64, error)

// ModerationHandler serves the staff queue and bulk comment actions.
type ModerationHandler struct {
	comments *services.CommentService
}

func NewModerationHandler(comments *services.CommentService) *ModerationHandler {
	return &ModerationHandler{comments: comments}
}

func (h *ModerationHandler) Queue(c *fiber.Ctx) error {
	limit, offset := Page(c)

	items, total, err := h.comments.ModerationQueue(limit, offset)
	if err != nil {
		return WriteError(c, err)
	}

	out := make([]dto.CommentResponse, len(items))
	for i := range items {
		out[i] = dto.NewCommentResponse(&items[i].Comment)
		n := items[i].FlagCount
		out[i].FlagCount = &n
	}
	return c.JSON(dto.PageResponse{Items: out, Total: total, Limit: limit, Offset: offset})
}

func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	return h.run(c, services.ActionApprove, h.comments.Approve)
}

func (h *ModerationHandler) Unapprove(c *fiber.Ctx) error {
	return h.run(c, services.ActionUnapprove, h.comments.Unapprove)
}

func (h *ModerationHandler) MarkReviewed(c *fiber.Ctx) error {
	return h.run(c, services.ActionReview, h.comments.MarkReviewed)
}

func (h *ModerationHandler) DeactivateAuthors(c *fiber.Ctx) error {
	return h.run(c, services.ActionDeactivate, h.comments.DeactivateAuthors)
}

func (h *ModerationHandler) ReactivateAuthors(c *fiber.Ctx) error {
	return h.run(c, services.ActionReactivate, h.comments.ReactivateAuthors)
}

func (h *ModerationHandler) run(c *fiber.Ctx, name string, action bulkAction) error {
	var req dto.BulkActionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.IDs) == 0 {
		return badRequest(c, "ids are required")
	}

	affected, err := action(identity.CurrentUser(c), req.IDs)
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(dto.BulkActionResponse{Action: name, Selected: len(req.IDs), Affected: affected})
}
