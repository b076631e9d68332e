package models

import "time"

// CartItem represents a single line in a cart: one dessert, its quantity,
// and when it was first added. The dessert is held by value so copying a
// CartItem yields a fully independent snapshot.
type CartItem struct {
	Dessert  Dessert   `json:"dessert"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// CartEventType discriminates the cart event variants.
type CartEventType string

const (
	EventItemAdded       CartEventType = "ITEM_ADDED"
	EventItemRemoved     CartEventType = "ITEM_REMOVED"
	EventQuantityUpdated CartEventType = "QUANTITY_UPDATED"
	EventCartCleared     CartEventType = "CART_CLEARED"
	EventCartLoaded      CartEventType = "CART_LOADED"
)

// CartEvent is a tagged union delivered to cart subscribers. Which payload
// fields are set depends on Type:
//
//	ITEM_ADDED       — Item (the resulting line)
//	ITEM_REMOVED     — DessertID
//	QUANTITY_UPDATED — DessertID, Quantity
//	CART_CLEARED     — no payload
//	CART_LOADED      — Items
type CartEvent struct {
	Type      CartEventType `json:"type"`
	Item      *CartItem     `json:"item,omitempty"`
	DessertID string        `json:"dessert_id,omitempty"`
	Quantity  int           `json:"quantity,omitempty"`
	Items     []CartItem    `json:"items,omitempty"`
}

// CartEventCallback receives cart events synchronously, within the mutating
// call that produced them.
type CartEventCallback func(event CartEvent)
