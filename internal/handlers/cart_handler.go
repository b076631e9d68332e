package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"dessertshop/internal/cart"
	"dessertshop/internal/catalog"
	"dessertshop/internal/models"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	cart     *cart.Cart
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(c *cart.Cart, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:     c,
		validate: validator.New(),
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Get("/total", h.HandleGetTotal)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Post("/items/:id/increment", h.HandleIncrement)
	cartRoutes.Post("/items/:id/decrement", h.HandleDecrement)
}

// AddItemRequest is the payload for adding a dessert to the cart.
type AddItemRequest struct {
	DessertID string `json:"dessert_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// UpdateQuantityRequest is the payload for replacing a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// HandleGetCart returns the current cart contents and totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items":      h.cart.Items(),
		"subtotal":   h.cart.Subtotal(),
		"item_count": h.cart.ItemCount(),
		"is_empty":   h.cart.IsEmpty(),
	})
}

// HandleAddItem adds a catalog dessert to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	dessert, found := catalog.ByID(req.DessertID)
	if !found {
		return domainError(c, &models.NotFoundError{Kind: "dessert", ID: req.DessertID})
	}

	if err := h.cart.AddItem(dessert, req.Quantity); err != nil {
		h.logger.Warn().Err(err).Str("dessert_id", req.DessertID).Msg("add item rejected")
		return domainError(c, err)
	}

	item, _ := h.cart.Item(req.DessertID)
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateQuantity replaces the quantity of a cart line. Quantity 0
// removes the line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.cart.UpdateQuantity(c.Params("id"), req.Quantity); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRemoveItem deletes a cart line. Removing an absent line still
// succeeds, matching the cart's no-op semantics.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	h.cart.RemoveItem(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleIncrement raises a line's quantity by one.
func (h *CartHandler) HandleIncrement(c *fiber.Ctx) error {
	if err := h.cart.IncrementQuantity(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	item, _ := h.cart.Item(c.Params("id"))
	return c.JSON(item)
}

// HandleDecrement lowers a line's quantity by one, removing it at zero.
func (h *CartHandler) HandleDecrement(c *fiber.Ctx) error {
	if err := h.cart.DecrementQuantity(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetTotal returns subtotal, tax, and total at the tax rate given in
// the tax_rate query parameter.
func (h *CartHandler) HandleGetTotal(c *fiber.Ctx) error {
	taxRate := c.QueryFloat("tax_rate", 0)
	if taxRate < 0 {
		return domainError(c, models.NewValidationError("tax rate cannot be negative"))
	}
	return c.JSON(cart.CalculateTotal(h.cart.Items(), taxRate))
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.cart.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
