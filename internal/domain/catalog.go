// Package domain holds the data model exchanged with the storefront API.
// Every record here is server-owned; the client keeps cached copies only and
// never writes derived values back.
package domain

// Product is a catalog entry. Price is an opaque decimal string; the server
// is authoritative for all monetary values.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	ImageURL    string `json:"image_url"`
}
