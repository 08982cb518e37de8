package handlers

import (
	"errors"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WriteError maps service errors to a status and dto.ErrorResponse. Unknown
// errors are logged and answered with a generic 500.
func WriteError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrPermissionDenied):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrSelfFlagNotAllowed),
		errors.Is(err, services.ErrGameExists),
		errors.Is(err, services.ErrArticleExists),
		errors.Is(err, services.ErrEmailTaken):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrContentNotFound),
		errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrArticleNotFound),
		errors.Is(err, services.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidCommentBody),
		errors.Is(err, services.ErrInvalidTier),
		errors.Is(err, services.ErrInvalidGame),
		errors.Is(err, services.ErrInvalidArticle),
		errors.Is(err, services.ErrInvalidSignup):
		status = fiber.StatusBadRequest
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "request_id", requestID(c), "error", err)
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

// LoginRedirect builds the login link that returns the user to next.
func LoginRedirect(loginURL, next string) string {
	if next == "" {
		return loginURL
	}
	return loginURL + "?next=" + url.QueryEscape(next)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(param))
}

// Page reads limit and offset query params, capping limit at 100.
func Page(c *fiber.Ctx) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
