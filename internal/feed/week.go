package feed

import (
	"fmt"
	"time"
)

// WeekLabel formats t as "YYYY-Www" with Monday-based week numbers: days before the
// year's first Monday fall in week 00.
func WeekLabel(t time.Time) string {
	mondayOffset := (int(t.Weekday()) + 6) % 7
	week := (t.YearDay() - 1 + 7 - mondayOffset) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}
