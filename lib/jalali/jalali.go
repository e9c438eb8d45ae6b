// Package jalali does the little calendar work the reservation portal needs:
// weeks start on Saturday and dates are written in the Solar Hijri calendar.
package jalali

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

var tehran *time.Location

func init() {
	var err error
	tehran, err = time.LoadLocation("Asia/Tehran")
	if err != nil {
		tehran = time.FixedZone("IRST", 3*60*60+30*60)
	}
}

// Tehran returns the portal's timezone.
func Tehran() *time.Location {
	return tehran
}

// Now returns the current time in Tehran, so that "today" matches the
// portal's idea of today regardless of where the CLI runs.
func Now() time.Time {
	return time.Now().In(tehran)
}

// Saturday returns midnight of the most recent Saturday on or before t, in
// t's location.
func Saturday(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	sinceSaturday := (int(t.Weekday()) + 1) % 7
	return midnight.AddDate(0, 0, -sinceSaturday)
}

// Format renders t as a Jalali date "YYYY/MM/DD".
func Format(t time.Time) string {
	pt := ptime.New(t)
	return fmt.Sprintf("%04d/%02d/%02d", pt.Year(), int(pt.Month()), pt.Day())
}

// WeekBase is the `lastdate` the menu API expects for the week containing
// now.
func WeekBase(now time.Time) string {
	return Format(Saturday(now))
}
