package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(
		newCartShowCmd(),
		newCartAddCmd(),
		newCartSetCmd(),
		newCartRemoveCmd(),
	)
	return cmd
}

func newCartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the synchronized cart",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Cart.Refresh(ctx); err != nil {
				return err
			}

			snapshot := app.Cart.Snapshot()
			styles := app.Theme.Styles()
			out := cmd.OutOrStdout()
			if len(snapshot.Items) == 0 {
				fmt.Fprintln(out, "cart is empty")
				return nil
			}
			for _, item := range snapshot.Items {
				fmt.Fprintf(out, "%s  %-40s x%-3d %s\n",
					styles.Label.Render(item.ProductID), item.Title, item.Quantity,
					styles.Accent.Render(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2)))
			}
			fmt.Fprintf(out, "%s %s (%d items)\n",
				styles.Label.Render("total"), styles.Title.Render(snapshot.TotalPrice.StringFixed(2)), snapshot.ItemCount)
			return nil
		}),
	}
}

func newCartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Cart.AddItem(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added, cart now holds %d items\n", app.Cart.ItemCount())
			return nil
		}),
	}
}

func newCartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %q", args[1])
			}
			if err := app.Cart.SetItemQuantity(ctx, args[0], quantity); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cart now holds %d items\n", app.Cart.ItemCount())
			return nil
		}),
	}
}

func newCartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Cart.RemoveItem(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed, cart now holds %d items\n", app.Cart.ItemCount())
			return nil
		}),
	}
}
