package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newWishlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the wishlist",
	}
	cmd.AddCommand(
		newWishlistShowCmd(),
		newWishlistAddCmd(),
		newWishlistRemoveCmd(),
	)
	return cmd
}

func newWishlistShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the synchronized wishlist",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Wishlist.Refresh(ctx); err != nil {
				return err
			}

			styles := app.Theme.Styles()
			items := app.Wishlist.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "wishlist is empty")
				return nil
			}
			for _, p := range items {
				printProductLine(cmd, styles, p)
			}
			return nil
		}),
	}
}

func newWishlistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Wishlist.Add(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added, wishlist holds %d products\n", app.Wishlist.Len())
			return nil
		}),
	}
}

func newWishlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.RequireSession(); err != nil {
				return err
			}
			if err := app.Wishlist.Remove(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed, wishlist holds %d products\n", app.Wishlist.Len())
			return nil
		}),
	}
}
