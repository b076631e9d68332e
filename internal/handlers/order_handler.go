package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"dessertshop/internal/cart"
	"dessertshop/internal/events"
	"dessertshop/internal/models"
	"dessertshop/internal/orders"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	manager   *orders.Manager
	cart      *cart.Cart
	publisher *events.Publisher
	validate  *validator.Validate
	logger    zerolog.Logger

	defaultCurrency models.Currency
	defaultTaxRate  float64
}

// NewOrderHandler creates a new OrderHandler. Checkout uses the given
// currency and tax rate when the request does not override them.
func NewOrderHandler(
	manager *orders.Manager,
	c *cart.Cart,
	publisher *events.Publisher,
	defaultCurrency models.Currency,
	defaultTaxRate float64,
	logger zerolog.Logger,
) *OrderHandler {
	return &OrderHandler{
		manager:         manager,
		cart:            c,
		publisher:       publisher,
		validate:        validator.New(),
		logger:          logger.With().Str("handler", "orders").Logger(),
		defaultCurrency: defaultCurrency,
		defaultTaxRate:  defaultTaxRate,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Delete("/", h.HandleClearOrders)
	orderRoutes.Get("/revenue", h.HandleGetRevenue)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
	orderRoutes.Post("/:id/confirm", h.HandleConfirmOrder)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
	orderRoutes.Post("/:id/complete", h.HandleCompleteOrder)
}

// CheckoutRequest optionally overrides the configured currency and tax
// rate for a single order.
type CheckoutRequest struct {
	Currency string   `json:"currency" validate:"omitempty,oneof=USD EUR GBP"`
	TaxRate  *float64 `json:"tax_rate" validate:"omitempty,gte=0"`
}

// HandleCheckout creates a pending order from the live cart and clears the
// cart on success.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	req := CheckoutRequest{}
	if len(c.Body()) > 0 {
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
	}

	currency := h.defaultCurrency
	if req.Currency != "" {
		currency = models.Currency(req.Currency)
	}
	taxRate := h.defaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	order, err := h.manager.CreateOrder(h.cart, currency, taxRate)
	if err != nil {
		h.logger.Warn().Err(err).Msg("checkout rejected")
		return domainError(c, err)
	}

	h.publisher.PublishOrderEvent("created", order)
	h.cart.Clear()
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders returns all orders, optionally filtered by the status
// query parameter.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(models.OrderStatus(status)) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown order status: " + status,
			})
		}
		return c.JSON(h.manager.GetOrdersByStatus(models.OrderStatus(status)))
	}
	return c.JSON(h.manager.GetAllOrders())
}

// HandleGetOrderByID returns a single order by its id.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id := c.Params("id")
	order, found := h.manager.GetOrder(id)
	if !found {
		return domainError(c, &models.NotFoundError{Kind: "order", ID: id})
	}
	return c.JSON(order)
}

// HandleConfirmOrder moves a pending order to confirmed.
func (h *OrderHandler) HandleConfirmOrder(c *fiber.Ctx) error {
	order, err := h.manager.ConfirmOrder(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	h.publisher.PublishOrderEvent("confirmed", order)
	return c.JSON(order)
}

// HandleCancelOrder cancels a pending or confirmed order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	order, err := h.manager.CancelOrder(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	h.publisher.PublishOrderEvent("cancelled", order)
	return c.JSON(order)
}

// HandleCompleteOrder moves a confirmed order to completed.
func (h *OrderHandler) HandleCompleteOrder(c *fiber.Ctx) error {
	order, err := h.manager.CompleteOrder(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	h.publisher.PublishOrderEvent("completed", order)
	return c.JSON(order)
}

// HandleGetRevenue returns the summed total of all completed orders.
func (h *OrderHandler) HandleGetRevenue(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"revenue": h.manager.GetTotalRevenue(),
	})
}

// HandleDeleteOrder removes an order from the registry.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.manager.DeleteOrder(id) {
		return domainError(c, &models.NotFoundError{Kind: "order", ID: id})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleClearOrders empties the order registry.
func (h *OrderHandler) HandleClearOrders(c *fiber.Ctx) error {
	h.manager.ClearAllOrders()
	return c.SendStatus(fiber.StatusNoContent)
}
