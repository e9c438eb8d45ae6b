package commands

import (
	"context"
	"frsmenu/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	baseUrlFlag string
	insecure    bool
	cookiesFlag string
	dumpHttp    string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "frs",
	Short: "frs shows the weekly menu of the university food reservation portal.",
	Long: `frs logs into the food reservation portal (frs.modares.ac.ir) and shows
the weekly menu as a table, an interactive console or a full screen UI.

Credentials come from config.json5 (username, password) or the
FRS_USERNAME / FRS_PASSWORD environment variables and are prompted for
when missing.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose || dumpHttp != "")
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "config.json5", "The config file to read, a <name>.local.json5 next to it takes priority.")
	flags.StringVar(&baseUrlFlag, "base-url", "", "The portal to connect to (default https://frs.modares.ac.ir).")
	flags.BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification.")
	flags.StringVar(&cookiesFlag, "cookies", "", "A Netscape cookie file to reuse the session from.")
	flags.StringVar(&dumpHttp, "dump-http", "", "Write every HTTP request and response to files under this directory.")
	flags.Lookup("dump-http").NoOptDefVal = ".frs/http"
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
