package orders_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dessertshop/internal/cart"
	"dessertshop/internal/models"
	"dessertshop/internal/orders"
)

func newManager() *orders.Manager {
	return orders.NewManager(zerolog.Nop())
}

func cartWith(t *testing.T, desserts ...models.Dessert) *cart.Cart {
	t.Helper()
	c := cart.New(zerolog.Nop())
	for _, d := range desserts {
		require.NoError(t, c.AddItem(d, 1))
	}
	return c
}

func meringuePie() models.Dessert {
	return models.Dessert{
		ID:       "meringue-pie",
		Name:     "Lemon Meringue Pie",
		Category: models.CategoryPie,
		Price:    5.00,
		InStock:  true,
	}
}

func baklava() models.Dessert {
	return models.Dessert{
		ID:       "baklava",
		Name:     "Pistachio Baklava",
		Category: models.CategoryBaklava,
		Price:    4.00,
		InStock:  true,
	}
}

func TestManager_CreateOrder(t *testing.T) {
	m := newManager()
	c := cartWith(t, meringuePie(), baklava())
	require.NoError(t, c.UpdateQuantity("meringue-pie", 2)) // subtotal 14.00

	order, err := m.CreateOrder(c, models.CurrencyUSD, 0.1)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.CurrencyUSD, order.Details.Currency)
	assert.Equal(t, 14.00, order.Details.Subtotal)
	assert.Equal(t, 1.40, order.Details.Tax)
	assert.Equal(t, 15.40, order.Details.Total)
	assert.Len(t, order.Details.Items, 2)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Nil(t, order.ConfirmedAt)

	stored, found := m.GetOrder(order.ID)
	require.True(t, found)
	assert.Equal(t, order, stored)
}

func TestManager_CreateOrder_EmptyCart(t *testing.T) {
	m := newManager()
	c := cart.New(zerolog.Nop())

	var stateErr *models.InvalidStateError
	_, err := m.CreateOrder(c, models.CurrencyUSD, 0)
	require.ErrorAs(t, err, &stateErr)
}

func TestManager_CreateOrder_TaxRounding(t *testing.T) {
	m := newManager()
	c := cartWith(t, meringuePie())
	require.NoError(t, c.UpdateQuantity("meringue-pie", 2)) // subtotal 10.00

	order, err := m.CreateOrder(c, models.CurrencyUSD, 0.1)
	require.NoError(t, err)

	assert.Equal(t, 10.00, order.Details.Subtotal)
	assert.Equal(t, 1.00, order.Details.Tax)
	assert.Equal(t, 11.00, order.Details.Total)
}

func TestManager_CreateOrder_DefaultsAndCurrency(t *testing.T) {
	m := newManager()

	order, err := m.CreateOrder(cartWith(t, baklava()), "", 0)
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyUSD, order.Details.Currency)

	var validationErr *models.ValidationError
	_, err = m.CreateOrder(cartWith(t, baklava()), "JPY", 0)
	require.ErrorAs(t, err, &validationErr)
}

func TestManager_CreateOrder_SnapshotsCart(t *testing.T) {
	m := newManager()
	c := cartWith(t, meringuePie())

	order, err := m.CreateOrder(c, models.CurrencyEUR, 0)
	require.NoError(t, err)

	// Mutating the cart afterwards must not change the order details.
	require.NoError(t, c.AddItem(baklava(), 3))
	require.NoError(t, c.UpdateQuantity("meringue-pie", 10))
	c.Clear()

	stored, _ := m.GetOrder(order.ID)
	assert.Equal(t, 5.00, stored.Details.Subtotal)
	require.Len(t, stored.Details.Items, 1)
	assert.Equal(t, 1, stored.Details.Items[0].Quantity)
}

func TestManager_OrderIDsUnique(t *testing.T) {
	m := newManager()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := m.CreateOrder(cartWith(t, baklava()), models.CurrencyUSD, 0)
		require.NoError(t, err)
		assert.False(t, seen[order.ID], "duplicate order id %s", order.ID)
		seen[order.ID] = true
	}
}

func TestManager_ConfirmOrder(t *testing.T) {
	m := newManager()
	order, err := m.CreateOrder(cartWith(t, baklava()), models.CurrencyUSD, 0)
	require.NoError(t, err)

	confirmed, err := m.ConfirmOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	// The originally returned order value is untouched.
	assert.Equal(t, models.StatusPending, order.Status)

	var transitionErr *models.InvalidTransitionError
	_, err = m.ConfirmOrder(order.ID)
	require.ErrorAs(t, err, &transitionErr)

	var notFoundErr *models.NotFoundError
	_, err = m.ConfirmOrder("ORDER-0-0")
	require.ErrorAs(t, err, &notFoundErr)
}

func TestManager_CompleteOrder(t *testing.T) {
	m := newManager()
	order, err := m.CreateOrder(cartWith(t, baklava()), models.CurrencyUSD, 0)
	require.NoError(t, err)

	// pending orders cannot be completed directly.
	var transitionErr *models.InvalidTransitionError
	_, err = m.CompleteOrder(order.ID)
	require.ErrorAs(t, err, &transitionErr)

	_, err = m.ConfirmOrder(order.ID)
	require.NoError(t, err)

	completed, err := m.CompleteOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)

	// completed is terminal.
	_, err = m.ConfirmOrder(order.ID)
	require.ErrorAs(t, err, &transitionErr)
	_, err = m.CancelOrder(order.ID)
	require.ErrorAs(t, err, &transitionErr)
	_, err = m.CompleteOrder(order.ID)
	require.ErrorAs(t, err, &transitionErr)
}

func TestManager_CancelOrder(t *testing.T) {
	m := newManager()

	// Cancel from pending.
	pending, err := m.CreateOrder(cartWith(t, baklava()), models.CurrencyUSD, 0)
	require.NoError(t, err)
	cancelled, err := m.CancelOrder(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// Cancel from confirmed.
	confirmedOrder, err := m.CreateOrder(cartWith(t, meringuePie()), models.CurrencyUSD, 0)
	require.NoError(t, err)
	_, err = m.ConfirmOrder(confirmedOrder.ID)
	require.NoError(t, err)
	_, err = m.CancelOrder(confirmedOrder.ID)
	require.NoError(t, err)

	// cancelled is terminal: no re-cancel, no confirm.
	var transitionErr *models.InvalidTransitionError
	_, err = m.CancelOrder(pending.ID)
	require.ErrorAs(t, err, &transitionErr)
	_, err = m.ConfirmOrder(pending.ID)
	require.ErrorAs(t, err, &transitionErr)

	var notFoundErr *models.NotFoundError
	_, err = m.CancelOrder("ORDER-0-0")
	require.ErrorAs(t, err, &notFoundErr)
}

func TestManager_GetOrdersByStatus(t *testing.T) {
	m := newManager()

	first, err := m.CreateOrder(cartWith(t, baklava()), models.CurrencyUSD, 0)
	require.NoError(t, err)
	second, err := m.CreateOrder(cartWith(t, meringuePie()), models.CurrencyUSD, 0)
	require.NoError(t, err)

	_, err = m.ConfirmOrder(first.ID)
	require.NoError(t, err)

	pending := m.GetOrdersByStatus(models.StatusPending)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	confirmed := m.GetOrdersByStatus(models.StatusConfirmed)
	require.Len(t, confirmed, 1)
	assert.Equal(t, first.ID, confirmed[0].ID)

	assert.Empty(t, m.GetOrdersByStatus(models.StatusCompleted))
	assert.Len(t, m.GetAllOrders(), 2)
}

func TestManager_GetTotalRevenue(t *testing.T) {
	m := newManager()

	// Completed: 4.00.
	done, err := m.CreateOrder(cartWith(t, baklava()), models.CurrencyUSD, 0)
	require.NoError(t, err)
	_, err = m.ConfirmOrder(done.ID)
	require.NoError(t, err)
	_, err = m.CompleteOrder(done.ID)
	require.NoError(t, err)

	// Confirmed but not completed: must not count.
	open, err := m.CreateOrder(cartWith(t, meringuePie()), models.CurrencyUSD, 0)
	require.NoError(t, err)
	_, err = m.ConfirmOrder(open.ID)
	require.NoError(t, err)

	// Cancelled: must not count.
	dropped, err := m.CreateOrder(cartWith(t, meringuePie()), models.CurrencyUSD, 0)
	require.NoError(t, err)
	_, err = m.CancelOrder(dropped.ID)
	require.NoError(t, err)

	assert.Equal(t, 4.00, m.GetTotalRevenue())
}

func TestManager_DeleteAndClear(t *testing.T) {
	m := newManager()

	order, err := m.CreateOrder(cartWith(t, baklava()), models.CurrencyUSD, 0)
	require.NoError(t, err)

	assert.True(t, m.DeleteOrder(order.ID))
	assert.False(t, m.DeleteOrder(order.ID))

	_, err = m.CreateOrder(cartWith(t, baklava()), models.CurrencyUSD, 0)
	require.NoError(t, err)
	m.ClearAllOrders()
	assert.Empty(t, m.GetAllOrders())
	assert.Equal(t, 0.0, m.GetTotalRevenue())
}
