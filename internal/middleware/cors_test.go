package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSPreflight(t *testing.T) {
	app := fiber.New()
	app.Use(CORS(&config.Config{CORSOrigins: "https://games.example.com"}))
	app.Post("/api/admin/moderation/approve", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/moderation/approve", nil)
	req.Header.Set("Origin", "https://games.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://games.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "X-Admin-Token")
	assert.Equal(t, "600", resp.Header.Get("Access-Control-Max-Age"))
}
