package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between light and dark output",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if app.Theme.Toggle() {
				fmt.Fprintln(cmd.OutOrStdout(), "dark mode on")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "dark mode off")
			}
			return nil
		}),
	}
}
