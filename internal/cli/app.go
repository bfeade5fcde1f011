// Package cli is the storefront's terminal surface. Each command is a pure
// consumer of the API client and the session/cart stores: it issues the calls
// it needs, renders the resulting state, and reports failures for the current
// attempt only.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/storelab/shopfront/internal/api"
	"github.com/storelab/shopfront/internal/cart"
	"github.com/storelab/shopfront/internal/session"
)

// LoginRequiredError is returned when a protected command runs without an
// authenticated session. Command remembers what the user was trying to do so
// the hint can send them back after logging in.
type LoginRequiredError struct {
	Command string
}

func (e *LoginRequiredError) Error() string {
	return fmt.Sprintf("login required for %q: run `shopfront login`, then retry `shopfront %s`", e.Command, e.Command)
}

// App wires the commands to their dependencies. Construct one per process
// and pass it by reference.
type App struct {
	API     *api.Client
	Session *session.Store
	Cart    *cart.Store
	Out     io.Writer
	Log     zerolog.Logger
}

// Run dispatches a command line. Args excludes the program name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "products":
		return a.runProducts(ctx)
	case "product":
		return a.runProduct(ctx, rest)
	case "register":
		return a.runRegister(ctx, rest)
	case "login":
		return a.runLogin(ctx, rest)
	case "logout":
		return a.runLogout()
	case "cart":
		return a.runCart(ctx, rest)
	case "checkout":
		return a.runCheckout(ctx)
	case "orders":
		return a.runOrders(ctx)
	case "order":
		return a.runOrder(ctx, rest)
	case "completion":
		return a.runCompletion(rest)
	case "help":
		a.usage()
		return nil
	default:
		return fmt.Errorf("cli: unknown command %q (try `shopfront help`)", cmd)
	}
}

// requireLogin gates protected commands. The check is client-side courtesy
// only; the server rejects unauthenticated calls regardless.
func (a *App) requireLogin(command string) error {
	if !a.Session.Authenticated() {
		return &LoginRequiredError{Command: command}
	}
	return nil
}

// Message extracts the user-facing text from a command failure. API errors
// render their normalized message; everything else renders verbatim.
func Message(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func (a *App) usage() {
	fmt.Fprint(a.Out, `shopfront - storefront client

Usage:
  shopfront products                       list the catalog
  shopfront product <id> [-quantity n]     show a product; optionally add it to the cart
  shopfront register -email .. -password .. [-name ..]
  shopfront login -email .. -password ..
  shopfront logout
  shopfront cart                           show the cart
  shopfront cart add -product <id> [-quantity n]
  shopfront cart remove <item-id>
  shopfront cart clear
  shopfront checkout                       place an order from the cart
  shopfront orders                         list order history
  shopfront order <id>                     show one order
  shopfront completion [bash|zsh]          print a shell completion script
`)
}
