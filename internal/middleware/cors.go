package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// Staff tools send X-Admin-Token from the browser.
var corsHeaders = []string{
	fiber.HeaderOrigin,
	fiber.HeaderContentType,
	fiber.HeaderAuthorization,
	fiber.HeaderAccept,
	"X-Admin-Token",
	fiber.HeaderXRequestID,
}

// CORS admits the site frontends listed in CORS_ORIGINS.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  strings.Join(corsHeaders, ", "),
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: strings.Join([]string{fiber.HeaderXRequestID, fiber.HeaderRetryAfter}, ", "),
		MaxAge:        600,
	})
}
