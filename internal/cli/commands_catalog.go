package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"
)

func (a *App) runProducts(ctx context.Context) error {
	products, err := a.API.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(a.Out, "No products available.")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDESCRIPTION")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Name, FormatMoney(p.Price, p.Currency), truncate(p.Description, 60))
	}
	return tw.Flush()
}

func (a *App) runProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("product", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	quantity := fs.Int("quantity", 0, "add this many to the cart after showing the product")
	if len(args) == 0 {
		return fmt.Errorf("cli: product id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("cli: invalid product id %q", args[0])
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	product, err := a.API.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Out, Colorize(product.Name, ColorBold))
	if product.Description != "" {
		fmt.Fprintln(a.Out, product.Description)
	}
	fmt.Fprintf(a.Out, "Price: %s\n", FormatMoney(product.Price, product.Currency))
	if product.ImageURL != "" {
		fmt.Fprintf(a.Out, "Image: %s\n", product.ImageURL)
	}

	if *quantity == 0 {
		return nil
	}
	if err := a.requireLogin("product"); err != nil {
		return err
	}
	// Quantity is coerced here; the cart store does not re-validate.
	qty := *quantity
	if qty < 1 {
		qty = 1
	}
	if _, err := a.Cart.AddOrUpdateItem(ctx, product.ID, qty); err != nil {
		return err
	}
	success(a.Out, fmt.Sprintf("cart updated: %d in cart, subtotal %s",
		a.Cart.ItemsCount(), FormatMoney(a.Cart.Subtotal(), product.Currency)))
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
