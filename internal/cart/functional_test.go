package cart_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dessertshop/internal/cart"
	"dessertshop/internal/models"
)

func lines() []models.CartItem {
	return []models.CartItem{
		{Dessert: waffle(), Quantity: 2, AddedAt: time.Now()},
		{Dessert: tiramisu(), Quantity: 1, AddedAt: time.Now()},
	}
}

func TestAddToCart(t *testing.T) {
	items := lines()

	updated, err := cart.AddToCart(items, waffle(), 3)
	require.NoError(t, err)

	// Merged onto the existing line, original AddedAt kept.
	require.Len(t, updated, 2)
	assert.Equal(t, 5, updated[0].Quantity)
	assert.Equal(t, items[0].AddedAt, updated[0].AddedAt)

	// The input sequence was not modified.
	assert.Equal(t, 2, items[0].Quantity)

	brownie := models.Dessert{ID: "salted-caramel-brownie", Price: 5.50, InStock: true}
	updated, err = cart.AddToCart(updated, brownie, 1)
	require.NoError(t, err)
	require.Len(t, updated, 3)
	assert.Equal(t, "salted-caramel-brownie", updated[2].Dessert.ID)
}

func TestAddToCart_Validation(t *testing.T) {
	var validationErr *models.ValidationError

	_, err := cart.AddToCart(nil, waffle(), 0)
	require.ErrorAs(t, err, &validationErr)

	outOfStock := waffle()
	outOfStock.InStock = false
	_, err = cart.AddToCart(nil, outOfStock, 1)
	require.ErrorAs(t, err, &validationErr)
}

func TestRemoveFromCart(t *testing.T) {
	items := lines()

	updated := cart.RemoveFromCart(items, "waffle-berries")
	require.Len(t, updated, 1)
	assert.Equal(t, "tiramisu", updated[0].Dessert.ID)
	assert.Len(t, items, 2)

	// Absent id: equal sequence back.
	assert.Equal(t, updated, cart.RemoveFromCart(updated, "missing"))
}

func TestFunctionalUpdateQuantity(t *testing.T) {
	items := lines()

	updated, err := cart.UpdateQuantity(items, "tiramisu", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated[1].Quantity)
	assert.Equal(t, 1, items[1].Quantity)

	// Zero removes the line.
	updated, err = cart.UpdateQuantity(items, "tiramisu", 0)
	require.NoError(t, err)
	require.Len(t, updated, 1)

	var validationErr *models.ValidationError
	_, err = cart.UpdateQuantity(items, "tiramisu", -1)
	require.ErrorAs(t, err, &validationErr)

	var notFoundErr *models.NotFoundError
	_, err = cart.UpdateQuantity(items, "missing", 2)
	require.ErrorAs(t, err, &notFoundErr)
}

func TestFunctionalIncrementDecrement(t *testing.T) {
	items := lines()

	updated, err := cart.IncrementQuantity(items, "tiramisu")
	require.NoError(t, err)
	assert.Equal(t, 2, updated[1].Quantity)

	updated, err = cart.DecrementQuantity(updated, "tiramisu")
	require.NoError(t, err)
	assert.Equal(t, 1, updated[1].Quantity)

	// Decrementing a quantity-1 line removes it.
	updated, err = cart.DecrementQuantity(updated, "tiramisu")
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "waffle-berries", updated[0].Dessert.ID)

	var notFoundErr *models.NotFoundError
	_, err = cart.IncrementQuantity(updated, "tiramisu")
	require.ErrorAs(t, err, &notFoundErr)
	_, err = cart.DecrementQuantity(updated, "tiramisu")
	require.ErrorAs(t, err, &notFoundErr)
}

func TestCalculateTotal(t *testing.T) {
	items := lines() // 2 x 6.50 + 1 x 5.50 = 18.50

	totals := cart.CalculateTotal(items, 0)
	assert.Equal(t, cart.Totals{Subtotal: 18.50, Tax: 0, Total: 18.50}, totals)

	totals = cart.CalculateTotal(items, 0.1)
	assert.Equal(t, 18.50, totals.Subtotal)
	assert.Equal(t, 1.85, totals.Tax)
	assert.Equal(t, 20.35, totals.Total)

	assert.Equal(t, cart.Totals{}, cart.CalculateTotal(nil, 0.1))
}

func TestItemCountAndIsEmpty(t *testing.T) {
	assert.True(t, cart.IsEmpty(nil))
	assert.Equal(t, 0, cart.ItemCount(nil))

	items := lines()
	assert.False(t, cart.IsEmpty(items))
	assert.Equal(t, 3, cart.ItemCount(items))
}

func TestFindItem(t *testing.T) {
	items := lines()

	item, found := cart.FindItem(items, "tiramisu")
	require.True(t, found)
	assert.Equal(t, "tiramisu", item.Dessert.ID)

	_, found = cart.FindItem(items, "missing")
	assert.False(t, found)
}

// The functional surface must stay behaviorally identical to the Cart for
// every shared operation.
func TestFunctionalMatchesCart(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddItem(waffle(), 2))
	require.NoError(t, c.AddItem(tiramisu(), 1))
	require.NoError(t, c.AddItem(waffle(), 1))

	items, err := cart.AddToCart(nil, waffle(), 2)
	require.NoError(t, err)
	items, err = cart.AddToCart(items, tiramisu(), 1)
	require.NoError(t, err)
	items, err = cart.AddToCart(items, waffle(), 1)
	require.NoError(t, err)

	assert.Equal(t, c.Subtotal(), cart.CalculateTotal(items, 0).Subtotal)
	assert.Equal(t, c.Total(0.25), cart.CalculateTotal(items, 0.25).Total)
	assert.Equal(t, c.ItemCount(), cart.ItemCount(items))
	assert.Equal(t, c.IsEmpty(), cart.IsEmpty(items))
}
