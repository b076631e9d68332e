package cart

import (
	"time"

	"dessertshop/internal/models"
)

// The functions below are a stateless formulation of the cart operations
// for reducer-style callers: each works directly on a []models.CartItem,
// never mutates its input, and returns a fresh slice. Validation and
// rounding rules are identical to the Cart methods.

// Totals holds the computed amounts for a sequence of cart lines.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

func indexOf(items []models.CartItem, dessertID string) int {
	for i, item := range items {
		if item.Dessert.ID == dessertID {
			return i
		}
	}
	return -1
}

// AddToCart returns a new sequence with the dessert added. An existing line
// for the same dessert is merged (quantities summed, AddedAt kept).
func AddToCart(items []models.CartItem, dessert models.Dessert, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return nil, models.NewValidationError("quantity must be greater than 0")
	}
	if !dessert.InStock {
		return nil, models.NewValidationError("dessert %s is not in stock", dessert.ID)
	}

	if i := indexOf(items, dessert.ID); i >= 0 {
		out := cloneItems(items)
		out[i].Quantity += quantity
		return out, nil
	}

	out := cloneItems(items)
	return append(out, models.CartItem{
		Dessert:  dessert,
		Quantity: quantity,
		AddedAt:  time.Now(),
	}), nil
}

// RemoveFromCart returns a new sequence without the line for the given
// dessert id. Removing an absent id returns an equal sequence.
func RemoveFromCart(items []models.CartItem, dessertID string) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Dessert.ID != dessertID {
			out = append(out, item)
		}
	}
	return out
}

// UpdateQuantity returns a new sequence with the line's quantity replaced.
// A quantity of 0 removes the line.
func UpdateQuantity(items []models.CartItem, dessertID string, quantity int) ([]models.CartItem, error) {
	if quantity < 0 {
		return nil, models.NewValidationError("quantity cannot be negative")
	}
	if quantity == 0 {
		return RemoveFromCart(items, dessertID), nil
	}

	i := indexOf(items, dessertID)
	if i == -1 {
		return nil, &models.NotFoundError{Kind: "cart item", ID: dessertID}
	}

	out := cloneItems(items)
	out[i].Quantity = quantity
	return out, nil
}

// IncrementQuantity returns a new sequence with the line's quantity raised
// by one.
func IncrementQuantity(items []models.CartItem, dessertID string) ([]models.CartItem, error) {
	i := indexOf(items, dessertID)
	if i == -1 {
		return nil, &models.NotFoundError{Kind: "cart item", ID: dessertID}
	}
	return UpdateQuantity(items, dessertID, items[i].Quantity+1)
}

// DecrementQuantity returns a new sequence with the line's quantity lowered
// by one, flooring at zero. A quantity-1 line is removed.
func DecrementQuantity(items []models.CartItem, dessertID string) ([]models.CartItem, error) {
	i := indexOf(items, dessertID)
	if i == -1 {
		return nil, &models.NotFoundError{Kind: "cart item", ID: dessertID}
	}
	quantity := items[i].Quantity - 1
	if quantity < 0 {
		quantity = 0
	}
	return UpdateQuantity(items, dessertID, quantity)
}

// CalculateTotal computes subtotal, tax, and total for the sequence, each
// rounded to two decimals.
func CalculateTotal(items []models.CartItem, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Dessert.Price * float64(item.Quantity)
	}
	tax := subtotal * taxRate
	return Totals{
		Subtotal: models.Round2(subtotal),
		Tax:      models.Round2(tax),
		Total:    models.Round2(subtotal + tax),
	}
}

// ItemCount returns the sum of quantities over the sequence.
func ItemCount(items []models.CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the sequence holds no lines.
func IsEmpty(items []models.CartItem) bool {
	return len(items) == 0
}

// FindItem returns the line for the given dessert id, if present.
func FindItem(items []models.CartItem, dessertID string) (models.CartItem, bool) {
	if i := indexOf(items, dessertID); i >= 0 {
		return items[i], true
	}
	return models.CartItem{}, false
}
