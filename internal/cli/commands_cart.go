package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/storelab/shopfront/internal/domain"
)

func (a *App) runCart(ctx context.Context, args []string) error {
	if err := a.requireLogin("cart"); err != nil {
		return err
	}

	if len(args) == 0 {
		return a.showCart(ctx)
	}

	switch args[0] {
	case "add":
		return a.runCartAdd(ctx, args[1:])
	case "remove":
		return a.runCartRemove(ctx, args[1:])
	case "clear":
		if _, err := a.Cart.Clear(ctx); err != nil {
			return err
		}
		success(a.Out, "cart cleared")
		return nil
	default:
		return fmt.Errorf("cli: unknown cart subcommand %q", args[0])
	}
}

func (a *App) showCart(ctx context.Context) error {
	if err := a.Cart.Refresh(ctx); err != nil {
		return err
	}
	snapshot := a.Cart.Snapshot()
	if snapshot == nil || len(snapshot.Items) == 0 {
		fmt.Fprintln(a.Out, "Your cart is empty.")
		return nil
	}

	currency := snapshot.Items[0].Product.Currency
	tw := tabwriter.NewWriter(a.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tQTY\tUNIT")
	for _, item := range snapshot.Items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
			item.ID, item.Product.Name, item.Quantity, FormatMoney(item.UnitPrice, item.Product.Currency))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "%d item(s), subtotal %s\n", a.Cart.ItemsCount(), FormatMoney(a.Cart.Subtotal(), currency))
	return nil
}

func (a *App) runCartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	productID := fs.Int64("product", 0, "product id")
	quantity := fs.Int("quantity", 1, "quantity (minimum 1)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID == 0 {
		return fmt.Errorf("cli: -product is required")
	}

	qty := *quantity
	if qty < 1 {
		qty = 1
	}
	if _, err := a.Cart.AddOrUpdateItem(ctx, *productID, qty); err != nil {
		return err
	}
	success(a.Out, fmt.Sprintf("cart updated: %d item(s), subtotal %s",
		a.Cart.ItemsCount(), FormatMoney(a.Cart.Subtotal(), "")))
	return nil
}

func (a *App) runCartRemove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("cli: cart item id is required")
	}
	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("cli: invalid cart item id %q", args[0])
	}
	if _, err := a.Cart.RemoveItem(ctx, itemID); err != nil {
		return err
	}
	success(a.Out, fmt.Sprintf("item removed: %d item(s) left", a.Cart.ItemsCount()))
	return nil
}

func (a *App) runCheckout(ctx context.Context) error {
	if err := a.requireLogin("checkout"); err != nil {
		return err
	}
	if err := a.Cart.Refresh(ctx); err != nil {
		return err
	}
	// An empty cart never reaches the server; the action is disabled here.
	if a.Cart.ItemsCount() == 0 {
		failure(a.Out, "your cart is empty, nothing to check out")
		return nil
	}

	order, err := a.API.Checkout(ctx, domain.CheckoutRequest{IdempotencyKey: uuid.NewString()})
	if err != nil {
		return err
	}
	if err := a.Cart.Refresh(ctx); err != nil {
		a.Log.Warn().Err(err).Msg("cart refresh after checkout failed")
	}

	success(a.Out, fmt.Sprintf("order %d placed", order.ID))
	return a.renderOrder(order)
}
