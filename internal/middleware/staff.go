package middleware

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserLoader interface {
	UserByID(id uuid.UUID) (*models.User, error)
}

// LoadUser resolves the JWT subject to a stored user. Requests without a
// token, or whose user no longer exists, continue as anonymous.
func LoadUser(users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identity.GetUserID(c)
		if err != nil {
			return c.Next()
		}
		user, err := users.UserByID(userID)
		if err != nil {
			slog.Debug("token subject not loaded", "user_id", userID.String(), "error", err)
			return c.Next()
		}
		identity.SetUser(c, user)
		return c.Next()
	}
}

// StaffRequired admits the X-Admin-Token holder and users with a staff role,
// whether stored or granted through STAFF_EMAILS / STAFF_USER_IDS.
func StaffRequired(policy *services.StaffPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if actor, ok := policy.TokenActor(c.Get("X-Admin-Token")); ok {
			identity.SetUser(c, actor)
			return c.Next()
		}

		user := identity.CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !user.IsStaff() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Staff access required",
			})
		}
		return c.Next()
	}
}
