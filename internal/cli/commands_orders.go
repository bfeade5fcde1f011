package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/storelab/shopfront/internal/domain"
)

func (a *App) runOrders(ctx context.Context) error {
	if err := a.requireLogin("orders"); err != nil {
		return err
	}
	orders, err := a.API.ListOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.Out, "No orders yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			o.ID, o.Status, FormatMoney(o.TotalAmount, o.Currency), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *App) runOrder(ctx context.Context, args []string) error {
	if err := a.requireLogin("order"); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("cli: order id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("cli: invalid order id %q", args[0])
	}

	order, err := a.API.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	return a.renderOrder(order)
}

func (a *App) renderOrder(order domain.Order) error {
	fmt.Fprintf(a.Out, "Order %d  %s\n", order.ID, Colorize(string(order.Status), ColorCyan))
	fmt.Fprintf(a.Out, "Placed: %s\n", order.CreatedAt.Format("2006-01-02 15:04"))

	tw := tabwriter.NewWriter(a.Out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tQTY\tUNIT")
	for _, item := range order.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", item.ProductName, item.Quantity, FormatMoney(item.UnitPrice, order.Currency))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Total: %s\n", FormatMoney(order.TotalAmount, order.Currency))
	return nil
}
