package commands

import (
	"encoding/json"
	"frsmenu/internal/console"
	"frsmenu/lib/jalali"
	"frsmenu/lib/serviceutil"
	"os"

	"github.com/spf13/cobra"
)

var (
	weekOffset int
	weekJson   bool
)

func init() {
	weekCmd.Flags().IntVar(&weekOffset, "offset", 0, "Weeks away from the current one, negative for past weeks.")
	weekCmd.Flags().BoolVar(&weekJson, "json", false, "Print the raw menu JSON instead of a table.")
	rootCmd.AddCommand(weekCmd)
}

var weekCmd = &cobra.Command{
	Use:   "week [--offset <n>] [--json]",
	Short: "Prints the menu of one week.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, _ := connect(ctx)

		days, err := client.WeekMenu(ctx, jalali.WeekBase(jalali.Now()), weekOffset)
		if err != nil {
			serviceutil.Fatal("failed to fetch menu", err)
		}

		if weekJson {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			err = encoder.Encode(days)
			if err != nil {
				serviceutil.Fatal("failed to write menu", err)
			}
			return
		}
		console.RenderWeek(os.Stdout, days, weekOffset)
	},
}
