package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/storelab/shopfront/internal/domain"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.TokenResponse, error) {
	var out domain.TokenResponse
	err := c.Do(ctx, http.MethodPost, "/auth/register", RequestOptions{Body: req}, &out)
	return out, err
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error) {
	var out domain.TokenResponse
	err := c.Do(ctx, http.MethodPost, "/auth/login", RequestOptions{Body: req}, &out)
	return out, err
}

// ListProducts returns the catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := c.Do(ctx, http.MethodGet, "/products", RequestOptions{}, &out)
	return out, err
}

// GetProduct returns one catalog entry.
func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var out domain.Product
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), RequestOptions{}, &out)
	return out, err
}

// GetCart returns the current cart.
func (c *Client) GetCart(ctx context.Context) (domain.Cart, error) {
	var out domain.Cart
	err := c.Do(ctx, http.MethodGet, "/cart", RequestOptions{RequiresAuth: true}, &out)
	return out, err
}

// UpsertCartItem adds a product or updates its quantity and returns the
// resulting cart.
func (c *Client) UpsertCartItem(ctx context.Context, req domain.UpsertItemRequest) (domain.Cart, error) {
	var out domain.Cart
	err := c.Do(ctx, http.MethodPost, "/cart/items", RequestOptions{Body: req, RequiresAuth: true}, &out)
	return out, err
}

// RemoveCartItem deletes one cart line and returns the resulting cart.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID int64) (domain.Cart, error) {
	var out domain.Cart
	err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d", cartItemID), RequestOptions{RequiresAuth: true}, &out)
	return out, err
}

// ClearCart empties the cart and returns the resulting (empty) cart.
func (c *Client) ClearCart(ctx context.Context) (domain.Cart, error) {
	var out domain.Cart
	err := c.Do(ctx, http.MethodDelete, "/cart", RequestOptions{RequiresAuth: true}, &out)
	return out, err
}

// Checkout places an order from the current cart.
func (c *Client) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Order, error) {
	var out domain.Order
	err := c.Do(ctx, http.MethodPost, "/checkout", RequestOptions{Body: req, RequiresAuth: true}, &out)
	return out, err
}

// ListOrders returns the caller's order history.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := c.Do(ctx, http.MethodGet, "/orders", RequestOptions{RequiresAuth: true}, &out)
	return out, err
}

// GetOrder returns one order.
func (c *Client) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var out domain.Order
	err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), RequestOptions{RequiresAuth: true}, &out)
	return out, err
}
