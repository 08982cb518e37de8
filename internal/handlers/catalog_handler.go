package handlers

import (
	"github.com/ahmetcoskunkizilkaya/gamerating-backend/internal/catalog"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

func (h *CatalogHandler) Tiers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"tiers": h.catalog.Tiers()})
}

func (h *CatalogHandler) Flags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flags": h.catalog.Flags()})
}
