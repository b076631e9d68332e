package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dessertshop/internal/catalog"
	"dessertshop/internal/models"
)

// DessertHandler serves the static dessert catalog.
type DessertHandler struct{}

// NewDessertHandler creates a new DessertHandler.
func NewDessertHandler() *DessertHandler {
	return &DessertHandler{}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *DessertHandler) RegisterRoutes(router fiber.Router) {
	dessertRoutes := router.Group("/desserts")
	dessertRoutes.Get("/", h.HandleGetDesserts)
	dessertRoutes.Get("/:id", h.HandleGetDessertByID)
}

// HandleGetDesserts returns the full catalog, optionally filtered by
// category.
func (h *DessertHandler) HandleGetDesserts(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		return c.JSON(catalog.ByCategory(models.DessertCategory(category)))
	}
	return c.JSON(catalog.Desserts())
}

// HandleGetDessertByID returns a single dessert by its id.
func (h *DessertHandler) HandleGetDessertByID(c *fiber.Ctx) error {
	id := c.Params("id")
	dessert, found := catalog.ByID(id)
	if !found {
		return domainError(c, &models.NotFoundError{Kind: "dessert", ID: id})
	}
	return c.JSON(dessert)
}
