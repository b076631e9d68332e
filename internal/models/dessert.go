package models

// DessertCategory enumerates the dessert categories sold by the shop.
type DessertCategory string

const (
	CategoryWaffle      DessertCategory = "Waffle"
	CategoryCremeBrulee DessertCategory = "Crème Brûlée"
	CategoryMacaron     DessertCategory = "Macaron"
	CategoryTiramisu    DessertCategory = "Tiramisu"
	CategoryBaklava     DessertCategory = "Baklava"
	CategoryPie         DessertCategory = "Pie"
	CategoryCake        DessertCategory = "Cake"
	CategoryBrownie     DessertCategory = "Brownie"
	CategoryPannaCotta  DessertCategory = "Panna Cotta"
)

// Dessert represents a purchasable item in the catalog. Desserts are
// immutable once loaded; carts and orders copy them by value.
type Dessert struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    DessertCategory `json:"category"`
	Price       float64         `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description,omitempty"`
	InStock     bool            `json:"in_stock"`
}
