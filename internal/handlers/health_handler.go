package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ping    func() error
	catalog *catalog.Catalog
}

func NewHealthHandler(ping func() error, cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{ping: ping, catalog: cat}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Tiers:     len(h.catalog.Tiers()),
		Flags:     len(h.catalog.Flags()),
	})
}
