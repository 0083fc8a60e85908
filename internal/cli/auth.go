package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/storefront-sync/internal/session"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			sess, err := app.Auth.SignIn(ctx, session.SignInCredentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			styles := app.Theme.Styles()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				styles.Label.Render("signed in as"), styles.Accent.Render(sess.DisplayName))
			return nil
		}),
	}
	cmd.Flags().StringP("email", "e", "", "Account email")
	cmd.Flags().StringP("password", "p", "", "Account password")
	return cmd
}

func newSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			phone, _ := cmd.Flags().GetString("phone")

			sess, err := app.Auth.SignUp(ctx, session.SignUpDetails{
				Name:       name,
				Email:      email,
				Password:   password,
				RePassword: password,
				Phone:      phone,
			})
			if err != nil {
				return err
			}
			styles := app.Theme.Styles()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				styles.Label.Render("welcome,"), styles.Accent.Render(sess.DisplayName))
			return nil
		}),
	}
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().StringP("email", "e", "", "Account email")
	cmd.Flags().StringP("password", "p", "", "Account password")
	cmd.Flags().String("phone", "", "Mobile phone number")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			app.Session.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: withApp(func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			sess := app.Session.Current()
			if !sess.Active() {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.DisplayName)
			return nil
		}),
	}
}
