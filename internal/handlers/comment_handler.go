package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler serves the comment endpoints shared by games and articles.
// Content handlers resolve the parent and call CreateFor / ListFor.
type CommentHandler struct {
	comments *services.CommentService
	loginURL string
}

func NewCommentHandler(comments *services.CommentService, loginURL string) *CommentHandler {
	return &CommentHandler{comments: comments, loginURL: loginURL}
}

// CreateFor posts a comment on parent. next is the content page the user
// is sent back to after logging in.
func (h *CommentHandler) CreateFor(c *fiber.Ctx, parent models.ContentRef, next string) error {
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.comments.Create(identity.CurrentUser(c), parent, req.Body)
	if err != nil {
		if errors.Is(err, services.ErrAuthenticationRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:    true,
				Message:  "Please log in to comment",
				LoginURL: LoginRedirect(h.loginURL, next),
			})
		}
		return WriteError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCommentResponse(comment))
}

// ListFor returns visible comments; staff also see unapproved ones.
func (h *CommentHandler) ListFor(c *fiber.Ctx, parent models.ContentRef) error {
	staff := identity.CurrentUser(c).IsStaff()
	comments, err := h.comments.ListForContent(parent, staff)
	if err != nil {
		return WriteError(c, err)
	}
	return c.JSON(fiber.Map{"comments": dto.NewCommentList(comments)})
}

func (h *CommentHandler) Flag(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	user := identity.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:    true,
			Message:  "Please log in to flag comments",
			LoginURL: LoginRedirect(h.loginURL, ""),
		})
	}

	if _, err := h.comments.Flag(commentID, user); err != nil {
		if errors.Is(err, services.ErrAlreadyFlagged) {
			return c.JSON(dto.FlagResponse{Message: err.Error(), AlreadyFlagged: true})
		}
		return WriteError(c, err)
	}

	return c.JSON(dto.FlagResponse{Message: "Thanks, a moderator will review this comment"})
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	if err := h.comments.Delete(commentID, identity.CurrentUser(c)); err != nil {
		return WriteError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
