package domain

// Cart is the server-owned cart aggregate. It is replaced wholesale after
// every mutation; the client never patches it field by field.
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal string     `json:"subtotal"`
}

// CartItem is a single line in the cart. UnitPrice is the server-quoted price
// at the time the item was added.
type CartItem struct {
	ID        int64   `json:"id"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	UnitPrice string  `json:"unit_price"`
}

// UpsertItemRequest adds a product to the cart or updates its quantity.
type UpsertItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
