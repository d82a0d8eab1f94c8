package models

// CartSchemaVersion tags persisted cart records. Records carrying any
// other version are discarded and reinitialized on load, which also
// covers the one-shot purge of legacy carts that still stored full
// product snapshots instead of references.
const CartSchemaVersion = 2

// CartLine references a product by id. Quantity is kept between 1 and
// the product's stock; prices are never stored, they are joined against
// the live catalog when the cart is rendered.
type CartLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantite"`
}

// CartItemView is a cart line joined with its catalog product.
type CartItemView struct {
	Product   Product `json:"produit"`
	Quantity  int     `json:"quantite"`
	LineTotal float64 `json:"prixTotal"`
}

// CartView is the rendered cart: joined lines plus derived totals.
type CartView struct {
	Items []CartItemView `json:"items"`
	Total float64        `json:"total"`
	Count int            `json:"count"`
}
