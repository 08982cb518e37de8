package apps

import (
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin is a content area (games, articles) mounted under /api.
type Plugin interface {
	// ID names the content area in logs.
	ID() string

	// RegisterRoutes mounts public routes. The group has optional JWT and
	// the current user loaded, so handlers see anonymous and signed-in callers.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// AdminPlugin extends Plugin with staff-only routes.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts routes on the /api/admin group, which
	// already requires a staff user or the admin token.
	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
