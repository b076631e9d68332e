// Package orders manages the order registry and the order status state
// machine.
package orders

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dessertshop/internal/cart"
	"dessertshop/internal/models"
)

// Manager owns the order registry. Orders are stored by value; every
// status transition replaces the stored order under the same id, so a
// previously returned Order is never mutated behind the caller's back.
//
// Allowed transitions:
//
//	pending   --confirm--> confirmed
//	confirmed --complete-> completed
//	pending | confirmed --cancel--> cancelled
//
// cancelled and completed are terminal.
type Manager struct {
	mu      sync.RWMutex
	orders  map[string]models.Order
	counter int
	logger  zerolog.Logger
}

// NewManager creates a Manager with an empty registry.
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		orders:  make(map[string]models.Order),
		counter: 1,
		logger:  logger.With().Str("component", "orders").Logger(),
	}
}

// generateOrderID produces an id unique within the process lifetime. The
// counter keeps ids distinct even when two orders share a timestamp.
// Caller holds m.mu.
func (m *Manager) generateOrderID() string {
	id := fmt.Sprintf("ORDER-%d-%d", time.Now().UnixMilli(), m.counter)
	m.counter++
	return id
}

// CreateOrder snapshots the cart into a new pending order. The snapshot is
// independent: mutating the cart afterwards does not change the order.
func (m *Manager) CreateOrder(c *cart.Cart, currency models.Currency, taxRate float64) (models.Order, error) {
	if c.IsEmpty() {
		return models.Order{}, &models.InvalidStateError{Reason: "cannot create order from empty cart"}
	}
	if currency == "" {
		currency = models.CurrencyUSD
	}
	if !models.ValidCurrency(currency) {
		return models.Order{}, models.NewValidationError("unsupported currency: %s", currency)
	}

	subtotal := c.Subtotal()
	tax := models.Round2(subtotal * taxRate)
	total := models.Round2(subtotal + tax)

	order := models.Order{
		Details: models.OrderDetails{
			Items:    c.Items(),
			Subtotal: subtotal,
			Tax:      tax,
			Total:    total,
			Currency: currency,
		},
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	order.ID = m.generateOrderID()
	m.orders[order.ID] = order
	m.mu.Unlock()

	m.logger.Info().
		Str("order_id", order.ID).
		Float64("total", order.Details.Total).
		Str("currency", string(currency)).
		Msg("order created")
	return order, nil
}

// ConfirmOrder moves a pending order to confirmed and stamps ConfirmedAt.
func (m *Manager) ConfirmOrder(orderID string) (models.Order, error) {
	return m.transition(orderID, models.StatusConfirmed, func(order *models.Order) error {
		if order.Status != models.StatusPending {
			return &models.InvalidTransitionError{
				OrderID: orderID,
				From:    order.Status,
				To:      models.StatusConfirmed,
			}
		}
		now := time.Now()
		order.Status = models.StatusConfirmed
		order.ConfirmedAt = &now
		return nil
	})
}

// CancelOrder cancels a pending or confirmed order. Completed orders
// cannot be cancelled.
func (m *Manager) CancelOrder(orderID string) (models.Order, error) {
	return m.transition(orderID, models.StatusCancelled, func(order *models.Order) error {
		if order.Status == models.StatusCompleted || order.Status == models.StatusCancelled {
			return &models.InvalidTransitionError{
				OrderID: orderID,
				From:    order.Status,
				To:      models.StatusCancelled,
			}
		}
		order.Status = models.StatusCancelled
		return nil
	})
}

// CompleteOrder moves a confirmed order to completed.
func (m *Manager) CompleteOrder(orderID string) (models.Order, error) {
	return m.transition(orderID, models.StatusCompleted, func(order *models.Order) error {
		if order.Status != models.StatusConfirmed {
			return &models.InvalidTransitionError{
				OrderID: orderID,
				From:    order.Status,
				To:      models.StatusCompleted,
			}
		}
		order.Status = models.StatusCompleted
		return nil
	})
}

// transition applies a status change to the stored order and replaces the
// registry entry on success.
func (m *Manager) transition(orderID string, to models.OrderStatus, apply func(*models.Order) error) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, exists := m.orders[orderID]
	if !exists {
		return models.Order{}, &models.NotFoundError{Kind: "order", ID: orderID}
	}

	from := order.Status
	if err := apply(&order); err != nil {
		return models.Order{}, err
	}
	m.orders[orderID] = order

	m.logger.Info().
		Str("order_id", orderID).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("order status changed")
	return order, nil
}

// GetOrder returns the order with the given id, if present.
func (m *Manager) GetOrder(orderID string) (models.Order, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, exists := m.orders[orderID]
	return order, exists
}

// GetAllOrders returns a snapshot of every order in the registry.
func (m *Manager) GetAllOrders() []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Order, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, order)
	}
	return out
}

// GetOrdersByStatus returns every order currently in the given status.
func (m *Manager) GetOrdersByStatus(status models.OrderStatus) []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Order
	for _, order := range m.orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out
}

// GetTotalRevenue sums the totals of all completed orders.
func (m *Manager) GetTotalRevenue() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var revenue float64
	for _, order := range m.orders {
		if order.Status == models.StatusCompleted {
			revenue += order.Details.Total
		}
	}
	return revenue
}

// DeleteOrder removes an order from the registry, reporting whether it was
// present.
func (m *Manager) DeleteOrder(orderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.orders[orderID]
	if exists {
		delete(m.orders, orderID)
	}
	return exists
}

// ClearAllOrders empties the registry.
func (m *Manager) ClearAllOrders() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = make(map[string]models.Order)
}
