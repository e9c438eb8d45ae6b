package commands

import (
	"fmt"
	"frsmenu/internal/tui"
	"frsmenu/lib/jalali"
	"frsmenu/lib/menu"
	"frsmenu/lib/serviceutil"
	"frsmenu/lib/telemetry"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Opens the full screen menu browser.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		client := newClient(ctx, cfg)

		opts := tui.Options{
			Navigator: menu.NewNavigator(client, jalali.WeekBase(jalali.Now())),
			Username:  cfg.Username,
		}
		switch {
		case cfg.Username != "" && cfg.Password != "":
			login(ctx, client, cfg)
		case sessionValid(ctx, client):
		default:
			opts.Login = client.Login
		}

		// log lines would tear the alt screen
		if !verbose {
			telemetry.InitSlogTo(io.Discard, false)
		}

		message, err := tui.Run(ctx, opts)
		telemetry.InitSlog(verbose)
		if err != nil {
			serviceutil.Fatal("terminal ui failed", err)
		}
		if message != "" {
			fmt.Fprintln(os.Stderr, message)
			os.Exit(1)
		}

		if cfg.CookiesFile != "" {
			dumpCookies(client, cfg.CookiesFile)
		}
	},
}
