package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/storefront-sync/internal/api"
)

func newCheckoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out the active cart",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Cart.Refresh(ctx); err != nil {
				return err
			}
			snapshot := app.Cart.Snapshot()

			addr := api.ShippingAddress{}
			addr.Details, _ = cmd.Flags().GetString("details")
			addr.Phone, _ = cmd.Flags().GetString("phone")
			addr.City, _ = cmd.Flags().GetString("city")
			cash, _ := cmd.Flags().GetBool("cash")
			returnURL, _ := cmd.Flags().GetString("return-url")

			out := cmd.OutOrStdout()
			styles := app.Theme.Styles()
			if cash {
				order, err := app.Checkout.PlaceCashOrder(ctx, snapshot.CartID, addr)
				if err != nil {
					return err
				}
				// The server empties the cart; re-sync the snapshot.
				if err := app.Cart.Refresh(ctx); err != nil {
					app.Log.Warn(app.Log.WithField(ctx, "error", err.Error()), "cart refresh after checkout failed")
				}
				fmt.Fprintf(out, "%s %s, total %s\n",
					styles.Label.Render("order placed:"), order.ID,
					styles.Accent.Render(order.TotalOrderPrice.StringFixed(2)))
				return nil
			}

			url, err := app.Checkout.CreateSession(ctx, snapshot.CartID, returnURL, addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", styles.Label.Render("complete payment at"), styles.Accent.Render(url))
			return nil
		}),
	}
	cmd.Flags().Bool("cash", false, "Place a cash-on-delivery order instead of a payment session")
	cmd.Flags().String("return-url", "http://localhost:3000", "Where the payment page returns to")
	cmd.Flags().String("details", "", "Street address")
	cmd.Flags().String("phone", "", "Contact phone number")
	cmd.Flags().String("city", "", "City")
	return cmd
}
