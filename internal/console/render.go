package console

import (
	"fmt"
	"frsmenu/lib/menu"
	"frsmenu/lib/scrapers/frs"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

const mealColumnWidth = 48

var (
	colorTitle    = text.Colors{text.Bold, text.FgMagenta}
	colorHeader   = text.Colors{text.Bold, text.FgCyan}
	colorReserved = text.Colors{text.Bold, text.FgGreen}
	colorOpen     = text.Colors{text.FgYellow}
	colorMeal     = text.Colors{text.Bold, text.FgCyan}
	colorError    = text.Colors{text.Bold, text.FgRed}
)

// slot colors for cells that are not reserved
var slotColors = map[string]text.Colors{
	menu.Breakfast: {text.FgWhite},
	menu.Lunch:     {text.FgYellow},
	menu.Dinner:    {text.FgCyan},
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type painter bool

func (p painter) paint(colors text.Colors, s string) string {
	if !p {
		return s
	}
	return colors.Sprint(s)
}

func (p painter) cell(slot string, c menu.Cell) string {
	var colors text.Colors
	switch c.Kind {
	case menu.CellReserved:
		colors = colorReserved
	case menu.CellOptions:
		colors = slotColors[slot]
	}
	if c.Inactive {
		colors = append(text.Colors{text.Faint}, colors...)
	}
	if len(colors) == 0 {
		return c.Text
	}
	return p.paint(colors, c.Text)
}

func rule(title string) string {
	line := strings.Repeat("─", 8)
	return fmt.Sprintf("%s %s %s", line, title, line)
}

// RenderWeek writes the week table, its title and the navigation legend.
func RenderWeek(w io.Writer, days []frs.Day, offset int) {
	p := painter(shouldColorize(w))

	fmt.Fprintln(w, p.paint(colorTitle, rule(menu.WeekTitle(days, offset))))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleDouble)
	if p {
		tw.Style().Color.Header = colorHeader
	}
	tw.Style().Format.Header = text.FormatDefault

	header := table.Row{"روز", "تاریخ"}
	for _, slot := range menu.Slots {
		header = append(header, slot)
	}
	tw.AppendHeader(header)

	for _, row := range menu.Rows(days) {
		r := table.Row{p.paint(text.Colors{text.Bold}, row.Title), row.Date}
		for i, c := range row.Cells {
			r = append(r, p.cell(menu.Slots[i], c))
		}
		tw.AppendRow(r)
	}

	configs := []table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	}
	for i := range menu.Slots {
		configs = append(configs, table.ColumnConfig{
			Number:           i + 3,
			Align:            text.AlignRight,
			AlignHeader:      text.AlignCenter,
			WidthMax:         mealColumnWidth,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}
	tw.SetColumnConfigs(configs)
	tw.Render()

	renderLegend(w, p)
}

type legendKey struct {
	key    string
	label  string
	colors text.Colors
}

var legend = []legendKey{
	{"p", "قبلی", text.Colors{text.Bold, text.FgWhite, text.BgBlue}},
	{"c", "جاری", text.Colors{text.Bold, text.FgWhite, text.BgMagenta}},
	{"n", "بعدی", text.Colors{text.Bold, text.FgWhite, text.BgBlue}},
	{"q", "خروج", text.Colors{text.Bold, text.FgWhite, text.BgRed}},
	{"d <تاریخ>", "جزئیات", text.Colors{text.Bold, text.FgWhite, text.BgHiBlack}},
}

func renderLegend(w io.Writer, p painter) {
	keys := make([]string, len(legend))
	for i, k := range legend {
		keys[i] = p.paint(k.colors, fmt.Sprintf(" [%s] %s ", k.key, k.label))
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("ناوبری")
	tw.AppendRow(table.Row{strings.Join(keys, " ")})
	tw.Render()
}

// RenderDetails writes every meal of the day with its reservation status.
func RenderDetails(w io.Writer, day frs.Day) {
	p := painter(shouldColorize(w))

	fmt.Fprintln(w, p.paint(colorTitle, menu.DetailTitle(day)))
	fmt.Fprintln(w)

	details := menu.Details(day)
	if len(details) == 0 {
		fmt.Fprintln(w, p.paint(text.Colors{text.Faint}, "برای این روز غذایی تعریف نشده است"))
		return
	}

	for _, d := range details {
		status := p.paint(colorOpen, d.Status)
		if d.Reserved {
			status = p.paint(colorReserved, d.Status)
		}
		fmt.Fprintf(w, "%s %s\n", p.paint(colorMeal, d.Meal), status)
		for _, line := range d.Lines {
			fmt.Fprintf(w, "   %s\n", line)
		}
		fmt.Fprintln(w)
	}
}

func renderError(w io.Writer, message string, err error) {
	p := painter(shouldColorize(w))
	fmt.Fprintln(w, p.paint(colorError, fmt.Sprintf("%s: %v", message, err)))
}
