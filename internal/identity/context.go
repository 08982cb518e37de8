// Package identity reads the caller from the fiber request context.
package identity

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userKey = "current_user"

var ErrNoToken = errors.New("invalid token in context")

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, ErrNoToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

func SetUser(c *fiber.Ctx, u *models.User) {
	c.Locals(userKey, u)
}

// CurrentUser returns the loaded caller, or nil for anonymous requests.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userKey).(*models.User)
	return u
}
