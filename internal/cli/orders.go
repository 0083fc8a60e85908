package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/internal/orders"
	"github.com/angelmondragon/storefront-sync/internal/theme"
)

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Orders.Load(ctx); err != nil {
				// Partial loads still render what arrived.
				app.Log.Warn(app.Log.WithField(ctx, "error", err.Error()), "orders loaded partially")
			}

			list := app.Orders.UserOrders()
			if all, _ := cmd.Flags().GetBool("all"); all {
				list = app.Orders.AllOrders()
			}

			if payment, _ := cmd.Flags().GetString("payment"); payment != "" {
				list = orders.ByPaymentMethod(list, payment)
			}
			if cmd.Flags().Changed("delivered") {
				delivered, _ := cmd.Flags().GetBool("delivered")
				list = orders.ByDeliveryStatus(list, delivered)
			}
			if query, _ := cmd.Flags().GetString("search"); query != "" {
				list = orders.Search(list, query)
			}

			styles := app.Theme.Styles()
			out := cmd.OutOrStdout()
			for _, order := range list {
				printOrderLine(cmd, styles, order)
			}
			fmt.Fprintf(out, "%s\n", styles.Label.Render(fmt.Sprintf("%d orders", len(list))))
			return nil
		}),
	}
	cmd.Flags().Bool("all", false, "List every order, not just yours")
	cmd.Flags().String("payment", "", "Filter by payment method (card or cash)")
	cmd.Flags().Bool("delivered", false, "Filter by delivery status")
	cmd.Flags().String("search", "", "Search customer, order id, product, or brand")
	return cmd
}

func printOrderLine(cmd *cobra.Command, styles theme.Styles, order api.Order) {
	status := "pending"
	if order.IsDelivered {
		status = "delivered"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-6s %-10s %s\n",
		styles.Label.Render(order.ID),
		order.CreatedAt.Format("2006-01-02"),
		order.PaymentMethodType,
		status,
		styles.Accent.Render(order.TotalOrderPrice.StringFixed(2)))
}
