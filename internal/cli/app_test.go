package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/storelab/shopfront/internal/api"
	"github.com/storelab/shopfront/internal/apitest"
	"github.com/storelab/shopfront/internal/cart"
	"github.com/storelab/shopfront/internal/cli"
	"github.com/storelab/shopfront/internal/domain"
	"github.com/storelab/shopfront/internal/session"
)

func apitestProduct(name, price string) domain.Product {
	return domain.Product{Name: name, Price: price, Currency: "USD"}
}

type fixture struct {
	app      *cli.App
	backend  *apitest.Server
	sessions *session.Store
	out      *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := apitest.NewServer()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	sessions := session.NewStore(nil)
	client, err := api.New(api.Config{BaseURL: srv.URL, TokenSource: sessions})
	require.NoError(t, err)
	client.SubscribeUnauthorized(sessions)

	out := &bytes.Buffer{}
	app := &cli.App{
		API:     client,
		Session: sessions,
		Cart:    cart.NewStore(client, sessions),
		Out:     out,
		Log:     zerolog.Nop(),
	}
	return &fixture{app: app, backend: backend, sessions: sessions, out: out}
}

func (f *fixture) run(t *testing.T, args ...string) error {
	t.Helper()
	f.out.Reset() // each attempt starts with a clean slate
	return f.app.Run(context.Background(), args)
}

func TestLoginMakesProtectedCommandsReachable(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedUser("alice@example.com", "password123", "Alice")

	err := f.run(t, "cart")
	var loginErr *cli.LoginRequiredError
	require.ErrorAs(t, err, &loginErr)
	require.Equal(t, "cart", loginErr.Command)

	require.NoError(t, f.run(t, "login", "-email", "alice@example.com", "-password", "password123"))
	require.True(t, f.sessions.Authenticated())

	require.NoError(t, f.run(t, "cart"))
	require.Contains(t, f.out.String(), "Your cart is empty.")
}

func TestLoginFailureRendersServerMessage(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedUser("alice@example.com", "password123", "Alice")

	err := f.run(t, "login", "-email", "alice@example.com", "-password", "wrong")
	require.Error(t, err)
	require.Equal(t, "Invalid email or password", cli.Message(err))
	require.False(t, f.sessions.Authenticated())
}

func TestRegisterLogsIn(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run(t, "register", "-email", "bob@example.com", "-password", "longenough", "-name", "Bob"))
	require.True(t, f.sessions.Authenticated())
}

func TestRegisterValidationMessagesJoined(t *testing.T) {
	f := newFixture(t)
	err := f.run(t, "register", "-email", "nope", "-password", "short")
	require.Error(t, err)
	require.Equal(t,
		"value is not a valid email address, password must be at least 8 characters",
		cli.Message(err))
}

func TestCartAddCheckoutShowsOrderDetail(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedProduct(apitestProduct("Mug", "9.50"))
	f.backend.SeedUser("alice@example.com", "password123", "Alice")
	require.NoError(t, f.run(t, "login", "-email", "alice@example.com", "-password", "password123"))

	require.NoError(t, f.run(t, "cart", "add", "-product", "1", "-quantity", "2"))
	require.Contains(t, f.out.String(), "2 item(s)")
	require.Contains(t, f.out.String(), "19.00")

	require.NoError(t, f.run(t, "checkout"))
	output := f.out.String()
	require.Contains(t, output, "order 3 placed")
	require.Contains(t, output, "Mug")
	require.Contains(t, output, "Total: $19.00")

	// The cart was consumed by the checkout.
	require.NoError(t, f.run(t, "cart"))
	require.Contains(t, f.out.String(), "Your cart is empty.")
}

func TestCheckoutWithEmptyCartIsNeverSent(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedUser("alice@example.com", "password123", "Alice")
	require.NoError(t, f.run(t, "login", "-email", "alice@example.com", "-password", "password123"))

	require.NoError(t, f.run(t, "checkout"))
	require.Contains(t, f.out.String(), "your cart is empty")

	require.NoError(t, f.run(t, "orders"))
	require.Contains(t, f.out.String(), "No orders yet.")
}

func TestRevokedTokenClearsSession(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedUser("alice@example.com", "password123", "Alice")
	require.NoError(t, f.run(t, "login", "-email", "alice@example.com", "-password", "password123"))

	f.backend.RevokeToken(f.sessions.Token())

	err := f.run(t, "cart")
	require.Error(t, err)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 401, apiErr.StatusCode)
	// The 401 observer already cleared the session before the error surfaced.
	require.False(t, f.sessions.Authenticated())
}

func TestRemoveAndClear(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedProduct(apitestProduct("Mug", "9.50"))
	f.backend.SeedProduct(apitestProduct("Shirt", "25.00"))
	f.backend.SeedUser("alice@example.com", "password123", "Alice")
	require.NoError(t, f.run(t, "login", "-email", "alice@example.com", "-password", "password123"))

	require.NoError(t, f.run(t, "cart", "add", "-product", "1"))
	require.NoError(t, f.run(t, "cart", "add", "-product", "2"))

	require.NoError(t, f.run(t, "cart"))
	lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
	require.Len(t, lines, 4) // header, two items, summary

	require.NoError(t, f.run(t, "cart", "remove", "3"))
	require.NoError(t, f.run(t, "cart", "clear"))
	require.NoError(t, f.run(t, "cart"))
	require.Contains(t, f.out.String(), "Your cart is empty.")
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)
	require.Error(t, f.run(t, "frobnicate"))
}
