package commands

import (
	"github.com/spf13/cobra"
)

var cookiesOut string

func init() {
	cookiesCmd.Flags().StringVarP(&cookiesOut, "out", "o", "", "Where to write the cookies (default: --cookies, cookies_file or cookies.txt).")
	rootCmd.AddCommand(cookiesCmd)
}

var cookiesCmd = &cobra.Command{
	Use:   "cookies [--out <path>]",
	Short: "Logs in and saves the session cookies in Netscape format.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg := connect(cmd.Context())

		path := cookiesOut
		if path == "" {
			path = cfg.CookiesFile
		}
		if path == "" {
			path = defaultCookiesFile
		}
		dumpCookies(client, path)
	},
}
