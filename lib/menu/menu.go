// Package menu turns the portal's weekly menu into what the front-ends
// display: one row per day, one cell per meal slot, and a detail listing
// per day.
package menu

import (
	"fmt"
	"frsmenu/lib/scrapers/frs"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	Breakfast = "صبحانه"
	Lunch     = "ناهار"
	Dinner    = "شام"
)

// Slots are the meal columns of the week table, in display order.
var Slots = []string{Breakfast, Lunch, Dinner}

const (
	Free        = "رایگان"
	Toman       = "تومان"
	EmptyCell   = "—"
	StatusTaken = "رزرو شده"
	StatusOpen  = "قابل رزرو"
)

// Persian thousands separator
const groupSeparator = "٬"

func FormatPrice(p float64) string {
	if p == 0 {
		return Free
	}
	grouped := humanize.Comma(int64(p))
	grouped = strings.ReplaceAll(grouped, ",", groupSeparator)
	return grouped + " " + Toman
}

// ShortName drops the side dishes, which the portal appends with '+'.
func ShortName(food string) string {
	name, _, _ := strings.Cut(food, "+")
	return strings.TrimSpace(name)
}

func FirstPrice(food frs.Food) float64 {
	if len(food.SelfMenu) == 0 {
		return 0
	}
	return food.SelfMenu[0].Price
}

func FindMeal(day frs.Day, slot string) (frs.Meal, bool) {
	for _, meal := range day.Meals {
		if strings.TrimSpace(meal.MealName) == slot {
			return meal, true
		}
	}
	return frs.Meal{}, false
}

func Reserved(meal frs.Meal) (frs.Reservation, bool) {
	if len(meal.LastReserved) == 0 {
		return frs.Reservation{}, false
	}
	return meal.LastReserved[0], true
}

func FindDay(days []frs.Day, date string) (frs.Day, bool) {
	date = strings.TrimSpace(date)
	for _, day := range days {
		if day.DayDate == date {
			return day, true
		}
	}
	return frs.Day{}, false
}

type CellKind int

const (
	CellEmpty CellKind = iota
	CellReserved
	CellOptions
)

type Cell struct {
	Text     string
	Kind     CellKind
	Inactive bool
}

func NewCell(day frs.Day, slot string) Cell {
	cell := Cell{
		Text:     EmptyCell,
		Kind:     CellEmpty,
		Inactive: day.Inactive(),
	}

	meal, ok := FindMeal(day, slot)
	if !ok || len(meal.FoodMenu) == 0 {
		return cell
	}

	if r, ok := Reserved(meal); ok {
		cell.Text = fmt.Sprintf("● %s (%s)", r.FoodName, r.SelfName)
		cell.Kind = CellReserved
		return cell
	}

	options := make([]string, len(meal.FoodMenu))
	for i, food := range meal.FoodMenu {
		options[i] = fmt.Sprintf("%s (%s)", ShortName(food.FoodName), FormatPrice(FirstPrice(food)))
	}
	cell.Text = strings.Join(options, " | ")
	cell.Kind = CellOptions
	return cell
}

type Row struct {
	Title string
	Date  string
	// one per entry of Slots
	Cells []Cell
}

func NewRow(day frs.Day) Row {
	cells := make([]Cell, len(Slots))
	for i, slot := range Slots {
		cells[i] = NewCell(day, slot)
	}
	return Row{
		Title: day.DayTitle,
		Date:  day.DayDate,
		Cells: cells,
	}
}

func Rows(days []frs.Day) []Row {
	rows := make([]Row, len(days))
	for i, day := range days {
		rows[i] = NewRow(day)
	}
	return rows
}

const titlePrefix = "منوی غذا"

func WeekTitle(days []frs.Day, offset int) string {
	if len(days) == 0 {
		return titlePrefix
	}
	title := fmt.Sprintf(
		"%s — هفته %s تا %s",
		titlePrefix, days[0].DayDate, days[len(days)-1].DayDate,
	)
	if offset != 0 {
		title += fmt.Sprintf(" (%+d هفته)", offset)
	}
	return title
}

type MealDetail struct {
	Meal     string
	Reserved bool
	Status   string
	Lines    []string
}

func DetailTitle(day frs.Day) string {
	return fmt.Sprintf("جزئیات روز %s — %s", day.DayTitle, day.DayDate)
}

// Details lists every meal of the day that has either a menu or a
// reservation.
func Details(day frs.Day) []MealDetail {
	var details []MealDetail
	for _, meal := range day.Meals {
		if len(meal.FoodMenu) == 0 && len(meal.LastReserved) == 0 {
			continue
		}

		detail := MealDetail{Meal: meal.MealName, Status: StatusOpen}
		if r, ok := Reserved(meal); ok {
			detail.Reserved = true
			detail.Status = StatusTaken
			detail.Lines = []string{fmt.Sprintf("→ %s (%s)", r.FoodName, r.SelfName)}
			details = append(details, detail)
			continue
		}

		for _, food := range meal.FoodMenu {
			detail.Lines = append(
				detail.Lines,
				fmt.Sprintf("• %s — %s", food.FoodName, FormatPrice(FirstPrice(food))),
			)
		}
		details = append(details, detail)
	}
	return details
}
