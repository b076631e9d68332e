// Package catalog holds the static dessert catalog. It is leaf data: no
// mutation, no business logic beyond lookup.
package catalog

import "dessertshop/internal/models"

var desserts = []models.Dessert{
	{
		ID:          "waffle-berries",
		Name:        "Waffle with Berries",
		Category:    models.CategoryWaffle,
		Price:       6.50,
		Image:       "/assets/image-waffle-desktop.jpg",
		Description: "Delicious waffle topped with fresh berries",
		InStock:     true,
	},
	{
		ID:          "creme-brulee",
		Name:        "Vanilla Bean Crème Brûlée",
		Category:    models.CategoryCremeBrulee,
		Price:       7.00,
		Image:       "/assets/image-creme-brulee-desktop.jpg",
		Description: "Classic vanilla bean crème brûlée",
		InStock:     true,
	},
	{
		ID:          "macaron-mix",
		Name:        "Macaron Mix of Five",
		Category:    models.CategoryMacaron,
		Price:       8.00,
		Image:       "/assets/image-macaron-desktop.jpg",
		Description: "Assorted macaron flavors",
		InStock:     true,
	},
	{
		ID:          "tiramisu",
		Name:        "Classic Tiramisu",
		Category:    models.CategoryTiramisu,
		Price:       5.50,
		Image:       "/assets/image-tiramisu-desktop.jpg",
		Description: "Traditional Italian tiramisu",
		InStock:     true,
	},
	{
		ID:          "baklava",
		Name:        "Pistachio Baklava",
		Category:    models.CategoryBaklava,
		Price:       4.00,
		Image:       "/assets/image-baklava-desktop.jpg",
		Description: "Sweet pistachio baklava",
		InStock:     true,
	},
	{
		ID:          "meringue-pie",
		Name:        "Lemon Meringue Pie",
		Category:    models.CategoryPie,
		Price:       5.00,
		Image:       "/assets/image-meringue-desktop.jpg",
		Description: "Tangy lemon meringue pie",
		InStock:     true,
	},
	{
		ID:          "red-velvet-cake",
		Name:        "Red Velvet Cake",
		Category:    models.CategoryCake,
		Price:       4.50,
		Image:       "/assets/image-cake-desktop.jpg",
		Description: "Rich red velvet cake",
		InStock:     true,
	},
	{
		ID:          "salted-caramel-brownie",
		Name:        "Salted Caramel Brownie",
		Category:    models.CategoryBrownie,
		Price:       5.50,
		Image:       "/assets/image-brownie-desktop.jpg",
		Description: "Decadent salted caramel brownie",
		InStock:     true,
	},
	{
		ID:          "vanilla-panna-cotta",
		Name:        "Vanilla Panna Cotta",
		Category:    models.CategoryPannaCotta,
		Price:       6.50,
		Image:       "/assets/image-panna-cotta-desktop.jpg",
		Description: "Creamy vanilla panna cotta",
		InStock:     true,
	},
}

// Desserts returns a copy of the full catalog.
func Desserts() []models.Dessert {
	out := make([]models.Dessert, len(desserts))
	copy(out, desserts)
	return out
}

// ByID looks up a dessert by its id.
func ByID(id string) (models.Dessert, bool) {
	for _, d := range desserts {
		if d.ID == id {
			return d, true
		}
	}
	return models.Dessert{}, false
}

// ByCategory returns all desserts in the given category.
func ByCategory(category models.DessertCategory) []models.Dessert {
	var out []models.Dessert
	for _, d := range desserts {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}
