package commands

import (
	"context"
	"fmt"
	"frsmenu/lib/scrapers/frs"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Checks that the configured credentials can log in.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := checkCredentials(cmd.Context(), loadConfig())
		defer client.Http.GetClient().CloseIdleConnections()
		fmt.Printf("ورود موفق (%d کوکی)\n", len(client.Cookies()))
	},
}

// checkCredentials logs in on a client without the cookie file, since a
// seeded session proves nothing about the credentials.
func checkCredentials(ctx context.Context, cfg Config) *frs.Client {
	cfg.CookiesFile = ""
	client := newClient(ctx, cfg)
	authenticate(ctx, client, cfg)
	return client
}
