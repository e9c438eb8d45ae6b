package commands

import (
	"fmt"
	"frsmenu/lib/jalali"
	"frsmenu/lib/menu"
	"frsmenu/lib/scrapers/frs"
	"frsmenu/lib/serviceutil"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	searchWeeks     int
	searchThreshold float64
)

func init() {
	searchCmd.Flags().IntVar(&searchWeeks, "weeks", 4, "How many weeks to search, starting from the current one.")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", menu.DefaultSearchThreshold, "Minimum similarity (0-1) for a fuzzy match.")
	rootCmd.AddCommand(searchCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var searchCmd = &cobra.Command{
	Use:   "search <food> [--weeks <n>]",
	Short: "Finds the days a food is served on.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client, _ := connect(ctx)
		query := strings.Join(args, " ")

		base := jalali.WeekBase(jalali.Now())
		var days []frs.Day
		for offset := 0; offset < searchWeeks; offset++ {
			week, err := client.WeekMenu(ctx, base, offset)
			if err != nil {
				serviceutil.Fatal(fmt.Sprintf("failed to fetch week %d", offset), err)
			}
			days = append(days, week...)
		}
		slog.Debug("searching", "query", query, "days", len(days))

		matches := menu.Search(days, query, searchThreshold)
		if len(matches) == 0 {
			fmt.Printf("«%s» در %d هفته آینده پیدا نشد\n", query, searchWeeks)
			return
		}

		t := newTable()
		t.AppendHeader(table.Row{"تاریخ", "روز", "وعده", "غذا", "قیمت", "شباهت"})
		for _, m := range matches {
			t.AppendRow(table.Row{
				m.Day.DayDate,
				m.Day.DayTitle,
				m.Meal,
				m.Food.FoodName,
				menu.FormatPrice(menu.FirstPrice(m.Food)),
				fmt.Sprintf("%.0f%%", m.Score*100),
			})
		}
		t.Render()
	},
}
