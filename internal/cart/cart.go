// Package cart implements the shopping cart: an id-keyed collection of
// dessert lines with synchronous change notifications. A parallel set of
// pure functions over []models.CartItem lives in functional.go for callers
// that prefer immutable-state composition.
package cart

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dessertshop/internal/models"
)

// Cart is a mutable shopping cart. One line is kept per dessert id, in
// insertion order. Mutations are guarded by an RWMutex so the cart can be
// shared across goroutines; events are emitted after the lock is released,
// so subscribers may re-query the cart from inside a callback.
type Cart struct {
	mu        sync.RWMutex
	items     map[string]models.CartItem
	order     []string // dessert ids in insertion order
	subs      map[int]models.CartEventCallback
	nextSubID int
	logger    zerolog.Logger
}

// New creates an empty cart.
func New(logger zerolog.Logger) *Cart {
	return &Cart{
		items:  make(map[string]models.CartItem),
		subs:   make(map[int]models.CartEventCallback),
		logger: logger.With().Str("component", "cart").Logger(),
	}
}

// Subscribe registers a callback for cart events and returns an
// unsubscribe function. Callbacks are invoked synchronously, after the
// state change that produced the event has been committed.
func (c *Cart) Subscribe(callback models.CartEventCallback) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = callback
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// emit delivers an event to every subscriber. A panicking subscriber is
// reported and skipped; it never blocks delivery to the rest.
func (c *Cart) emit(event models.CartEvent) {
	c.mu.RLock()
	callbacks := make([]models.CartEventCallback, 0, len(c.subs))
	for _, cb := range c.subs {
		callbacks = append(callbacks, cb)
	}
	c.mu.RUnlock()

	for _, cb := range callbacks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error().
						Interface("panic", r).
						Str("event_type", string(event.Type)).
						Msg("cart event subscriber panicked")
				}
			}()
			cb(event)
		}()
	}
}

// AddItem adds a dessert to the cart. If a line for the dessert already
// exists, the quantities are merged onto one line and the original AddedAt
// is kept. Emits ITEM_ADDED with the resulting line.
func (c *Cart) AddItem(dessert models.Dessert, quantity int) error {
	if quantity <= 0 {
		return models.NewValidationError("quantity must be greater than 0")
	}
	if !dessert.InStock {
		return models.NewValidationError("dessert %s is not in stock", dessert.ID)
	}

	c.mu.Lock()
	item, exists := c.items[dessert.ID]
	if exists {
		item.Quantity += quantity
	} else {
		item = models.CartItem{
			Dessert:  dessert,
			Quantity: quantity,
			AddedAt:  time.Now(),
		}
		c.order = append(c.order, dessert.ID)
	}
	c.items[dessert.ID] = item
	c.mu.Unlock()

	c.emit(models.CartEvent{Type: models.EventItemAdded, Item: &item})
	return nil
}

// RemoveItem deletes the line for the given dessert id and emits
// ITEM_REMOVED. Removing an absent id is a no-op: no event, no error.
func (c *Cart) RemoveItem(dessertID string) {
	c.mu.Lock()
	if _, exists := c.items[dessertID]; !exists {
		c.mu.Unlock()
		return
	}
	c.removeLocked(dessertID)
	c.mu.Unlock()

	c.emit(models.CartEvent{Type: models.EventItemRemoved, DessertID: dessertID})
}

// removeLocked deletes a line that is known to exist. Caller holds c.mu.
func (c *Cart) removeLocked(dessertID string) {
	delete(c.items, dessertID)
	for i, id := range c.order {
		if id == dessertID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity replaces the quantity of an existing line and emits
// QUANTITY_UPDATED. A quantity of 0 removes the line instead.
func (c *Cart) UpdateQuantity(dessertID string, quantity int) error {
	if quantity < 0 {
		return models.NewValidationError("quantity cannot be negative")
	}
	if quantity == 0 {
		c.RemoveItem(dessertID)
		return nil
	}

	c.mu.Lock()
	item, exists := c.items[dessertID]
	if !exists {
		c.mu.Unlock()
		return &models.NotFoundError{Kind: "cart item", ID: dessertID}
	}
	item.Quantity = quantity
	c.items[dessertID] = item
	c.mu.Unlock()

	c.emit(models.CartEvent{
		Type:      models.EventQuantityUpdated,
		DessertID: dessertID,
		Quantity:  quantity,
	})
	return nil
}

// IncrementQuantity raises the quantity of an existing line by one.
func (c *Cart) IncrementQuantity(dessertID string) error {
	c.mu.RLock()
	item, exists := c.items[dessertID]
	c.mu.RUnlock()
	if !exists {
		return &models.NotFoundError{Kind: "cart item", ID: dessertID}
	}
	return c.UpdateQuantity(dessertID, item.Quantity+1)
}

// DecrementQuantity lowers the quantity of an existing line by one,
// flooring at zero. Decrementing a quantity-1 line removes it.
func (c *Cart) DecrementQuantity(dessertID string) error {
	c.mu.RLock()
	item, exists := c.items[dessertID]
	c.mu.RUnlock()
	if !exists {
		return &models.NotFoundError{Kind: "cart item", ID: dessertID}
	}
	quantity := item.Quantity - 1
	if quantity < 0 {
		quantity = 0
	}
	return c.UpdateQuantity(dessertID, quantity)
}

// Subtotal returns the pre-tax sum over all lines, rounded to two decimals.
func (c *Cart) Subtotal() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var subtotal float64
	for _, item := range c.items {
		subtotal += item.Dessert.Price * float64(item.Quantity)
	}
	return models.Round2(subtotal)
}

// Total returns the cart total with tax applied at the given rate.
func (c *Cart) Total(taxRate float64) float64 {
	subtotal := c.Subtotal()
	return models.Round2(subtotal + subtotal*taxRate)
}

// ItemCount returns the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Items returns a snapshot of all lines in insertion order. The returned
// slice is independent of cart state; mutating it does not touch the cart.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CartItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Item returns the line for the given dessert id, if present.
func (c *Cart) Item(dessertID string) (models.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, exists := c.items[dessertID]
	return item, exists
}

// HasItem reports whether a line exists for the given dessert id.
func (c *Cart) HasItem(dessertID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.items[dessertID]
	return exists
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items) == 0
}

// Clear removes every line and emits CART_CLEARED, even when the cart was
// already empty.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = make(map[string]models.CartItem)
	c.order = nil
	c.mu.Unlock()

	c.emit(models.CartEvent{Type: models.EventCartCleared})
}

// LoadItems replaces the entire cart contents with the given lines, keyed
// by each line's dessert id. On duplicate ids the last line wins but the
// first occurrence keeps its position. Emits CART_LOADED. Used to restore
// externally persisted state.
func (c *Cart) LoadItems(items []models.CartItem) {
	c.mu.Lock()
	c.items = make(map[string]models.CartItem, len(items))
	c.order = nil
	for _, item := range items {
		if _, exists := c.items[item.Dessert.ID]; !exists {
			c.order = append(c.order, item.Dessert.ID)
		}
		c.items[item.Dessert.ID] = item
	}
	c.mu.Unlock()

	loaded := make([]models.CartItem, len(items))
	copy(loaded, items)
	c.emit(models.CartEvent{Type: models.EventCartLoaded, Items: loaded})
}
