package commands

import (
	"fmt"
	"frsmenu/internal/console"
	"frsmenu/lib/jalali"
	"frsmenu/lib/menu"
	"frsmenu/lib/serviceutil"
	"os"

	"github.com/spf13/cobra"
)

var dayOffset int

func init() {
	dayCmd.Flags().IntVar(&dayOffset, "offset", 0, "The week the day is in, relative to the current one.")
	rootCmd.AddCommand(dayCmd)
}

var dayCmd = &cobra.Command{
	Use:   "day <yyyy/mm/dd> [--offset <n>]",
	Short: "Prints the meals of one day with their reservation status.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, _ := connect(ctx)

		days, err := client.WeekMenu(ctx, jalali.WeekBase(jalali.Now()), dayOffset)
		if err != nil {
			serviceutil.Fatal("failed to fetch menu", err)
		}

		day, ok := menu.FindDay(days, args[0])
		if !ok {
			serviceutil.Fatal(
				"day not found",
				fmt.Errorf("%s is not in the week %s, try --offset", args[0], menu.WeekTitle(days, dayOffset)),
			)
		}
		console.RenderDetails(os.Stdout, day)
	},
}
