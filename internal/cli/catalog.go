package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/internal/theme"
)

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			brandID, _ := cmd.Flags().GetString("brand")

			var (
				products []api.Product
				err      error
			)
			if brandID != "" {
				products, err = app.Catalog.ProductsByBrand(ctx, brandID)
			} else {
				products, err = app.Catalog.Products(ctx)
			}
			if err != nil {
				return err
			}

			styles := app.Theme.Styles()
			for _, p := range products {
				printProductLine(cmd, styles, p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", styles.Label.Render(fmt.Sprintf("%d products", len(products))))
			return nil
		}),
	}
	cmd.Flags().String("brand", "", "Only products of this brand id")
	return cmd
}

func newProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			product, err := app.Catalog.Product(ctx, args[0])
			if err != nil {
				return err
			}
			styles := app.Theme.Styles()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.Title.Render(product.Title))
			fmt.Fprintf(out, "%s %s\n", styles.Label.Render("price"), product.Price.StringFixed(2))
			fmt.Fprintf(out, "%s %s / %s\n", styles.Label.Render("brand"), product.Brand.Name, product.Category.Name)
			if product.Description != "" {
				fmt.Fprintln(out, product.Description)
			}
			return nil
		}),
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			categories, err := app.Catalog.Categories(ctx)
			if err != nil {
				return err
			}
			styles := app.Theme.Styles()
			for _, c := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", styles.Label.Render(c.ID), c.Name)
			}
			return nil
		}),
	}
}

func newBrandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List catalog brands",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			brands, err := app.Catalog.Brands(ctx)
			if err != nil {
				return err
			}
			styles := app.Theme.Styles()
			for _, b := range brands {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", styles.Label.Render(b.ID), b.Name)
			}
			return nil
		}),
	}
}

func newBrandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brand <id>",
		Short: "Show a single brand",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			brand, err := app.Catalog.Brand(ctx, args[0])
			if err != nil {
				return err
			}
			styles := app.Theme.Styles()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", styles.Title.Render(brand.Name), brand.Slug)
			return nil
		}),
	}
}

func printProductLine(cmd *cobra.Command, styles theme.Styles, p api.Product) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %-40s %s\n",
		styles.Label.Render(p.ID), p.Title, styles.Accent.Render(p.Price.StringFixed(2)))
}
