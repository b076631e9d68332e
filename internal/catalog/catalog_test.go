package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dessertshop/internal/catalog"
	"dessertshop/internal/models"
)

func TestDesserts(t *testing.T) {
	desserts := catalog.Desserts()
	require.Len(t, desserts, 9)

	seen := make(map[string]bool)
	for _, d := range desserts {
		assert.False(t, seen[d.ID], "duplicate dessert id %s", d.ID)
		seen[d.ID] = true
		assert.NotEmpty(t, d.Name)
		assert.Greater(t, d.Price, 0.0)
	}

	// Mutating the returned slice must not affect the catalog.
	desserts[0].Price = 0
	fresh := catalog.Desserts()
	assert.Equal(t, 6.50, fresh[0].Price)
}

func TestByID(t *testing.T) {
	dessert, found := catalog.ByID("tiramisu")
	require.True(t, found)
	assert.Equal(t, "Classic Tiramisu", dessert.Name)
	assert.Equal(t, 5.50, dessert.Price)
	assert.True(t, dessert.InStock)

	_, found = catalog.ByID("ice-cream")
	assert.False(t, found)
}

func TestByCategory(t *testing.T) {
	pies := catalog.ByCategory(models.CategoryPie)
	require.Len(t, pies, 1)
	assert.Equal(t, "meringue-pie", pies[0].ID)

	assert.Empty(t, catalog.ByCategory("Gelato"))
}
