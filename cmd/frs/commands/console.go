package commands

import (
	"context"
	"errors"
	"frsmenu/internal/console"
	"frsmenu/lib/jalali"
	"frsmenu/lib/menu"
	"frsmenu/lib/serviceutil"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(consoleCmd)
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Browses the menu week by week in an interactive console.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, cfg := connect(ctx)

		nav := menu.NewNavigator(client, jalali.WeekBase(jalali.Now()))
		err := console.Loop(ctx, stdin, os.Stdout, nav)

		path := cfg.CookiesFile
		if path == "" {
			path = defaultCookiesFile
		}
		dumpCookies(client, path)

		if err != nil && !errors.Is(err, context.Canceled) {
			serviceutil.Fatal("console stopped", err)
		}
	},
}
