package api_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storelab/shopfront/internal/api"
	"github.com/storelab/shopfront/internal/apitest"
	"github.com/storelab/shopfront/internal/domain"
	"github.com/storelab/shopfront/internal/session"
)

// newBackedClient wires a real client and session store to the in-memory API.
func newBackedClient(t *testing.T) (*api.Client, *session.Store, *apitest.Server) {
	t.Helper()
	backend := apitest.NewServer()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	sessions := session.NewStore(nil)
	client, err := api.New(api.Config{BaseURL: srv.URL, TokenSource: sessions})
	require.NoError(t, err)
	client.SubscribeUnauthorized(sessions)
	return client, sessions, backend
}

func TestFullShoppingRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, sessions, backend := newBackedClient(t)

	mugID := backend.SeedProduct(domain.Product{Name: "Mug", Description: "A mug", Price: "9.50", Currency: "USD"})
	shirtID := backend.SeedProduct(domain.Product{Name: "Shirt", Price: "25.00", Currency: "USD"})

	products, err := client.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	mug, err := client.GetProduct(ctx, mugID)
	require.NoError(t, err)
	require.Equal(t, "Mug", mug.Name)

	res, err := client.Register(ctx, domain.RegisterRequest{Email: "carol@example.com", Password: "password123"})
	require.NoError(t, err)
	sessions.SetToken(res.AccessToken)

	cart, err := client.UpsertCartItem(ctx, domain.UpsertItemRequest{ProductID: mugID, Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, "19.00", cart.Subtotal)

	cart, err = client.UpsertCartItem(ctx, domain.UpsertItemRequest{ProductID: shirtID, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, "44.00", cart.Subtotal)

	// Upsert on the same product replaces the quantity, not adds to it.
	cart, err = client.UpsertCartItem(ctx, domain.UpsertItemRequest{ProductID: mugID, Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, "34.50", cart.Subtotal)

	order, err := client.Checkout(ctx, domain.CheckoutRequest{IdempotencyKey: "key-1"})
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusConfirmed, order.Status)
	require.Equal(t, "34.50", order.TotalAmount)
	require.Len(t, order.Items, 2)

	// Replaying the same idempotency key returns the same order.
	replay, err := client.Checkout(ctx, domain.CheckoutRequest{IdempotencyKey: "key-1"})
	require.NoError(t, err)
	require.Equal(t, order.ID, replay.ID)

	cart, err = client.GetCart(ctx)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, "0.00", cart.Subtotal)

	orders, err := client.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got, err := client.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.TotalAmount, got.TotalAmount)
}

func TestCheckoutEmptyCartRejectedByServer(t *testing.T) {
	ctx := context.Background()
	client, sessions, _ := newBackedClient(t)

	res, err := client.Register(ctx, domain.RegisterRequest{Email: "dave@example.com", Password: "password123"})
	require.NoError(t, err)
	sessions.SetToken(res.AccessToken)

	_, err = client.Checkout(ctx, domain.CheckoutRequest{})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
	require.Equal(t, "Cart is empty", apiErr.Message)
}

func TestAnonymousCartAccessClearsNothingButFailsWith401(t *testing.T) {
	ctx := context.Background()
	client, sessions, _ := newBackedClient(t)

	_, err := client.GetCart(ctx)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
	require.Equal(t, "Not authenticated", apiErr.Message)
	require.False(t, sessions.Authenticated())
}
