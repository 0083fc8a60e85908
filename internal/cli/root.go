package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var Version = "dev"

// NewRootCmd assembles the storefront command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront shopping client",
		Long:         "storefront keeps a local, synchronized view of a shopper's cart, wishlist, orders, and the product catalog.",
		SilenceUsage: true,
		Version:      Version,
	}

	cmd.AddCommand(
		newLoginCmd(),
		newSignupCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProductsCmd(),
		newProductCmd(),
		newCategoriesCmd(),
		newBrandsCmd(),
		newBrandCmd(),
		newCartCmd(),
		newWishlistCmd(),
		newOrdersCmd(),
		newCheckoutCmd(),
		newThemeCmd(),
	)
	return cmd
}

// withApp builds the dependency graph, runs the handler, and tears down.
func withApp(run func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := NewApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()
		return run(cmd.Context(), app, cmd, args)
	}
}
