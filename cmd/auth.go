package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pinkpantherking/calassist/internal/calendar"
	"github.com/pinkpantherking/calassist/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth [auth-code]",
		Short: "Authorize access to Google Calendar",
		Long: `Auth runs the OAuth out-of-band flow. Without arguments it prints the
authorization URL; open it, grant access, and re-run with the code Google
shows you:

  calassist auth
  calassist auth 4/0AeaYSH...

Use --account to keep tokens for several Google accounts side by side.
The OAuth client credentials come from the GOOGLE_OAUTH_CLIENT_ID and
GOOGLE_OAUTH_CLIENT_SECRET environment variables (a .env file works).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			if len(args) == 0 {
				if calendar.HasTokenForAccount(account) {
					fmt.Printf("Account %q is already authorized. Continuing will replace its token.\n\n", account)
				}
				fmt.Println("Open this URL, grant calendar access, then re-run with the code:")
				fmt.Printf("\n  %s\n\n", google.GetAuthURL())
				fmt.Printf("  calassist auth --account %s <code>\n", account)
				return nil
			}

			if err := google.SaveTokenForAccount(cmd.Context(), account, args[0]); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}
			fmt.Printf("Token saved for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account identifier")

	return cmd
}
