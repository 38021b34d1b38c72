package stats

import (
	"time"

	"github.com/limbo/healthlog/pkg/entity"
)

// DayStart returns local midnight of the day containing t.
func DayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// addDays moves by calendar days. Add(24h) would drift across DST transitions.
func addDays(day time.Time, n int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, day.Location())
}

// WeekStart returns local midnight of the Monday starting the week of t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := DayStart(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return addDays(day, -offset)
}

func MonthStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// PeriodStart returns the first local day of the g-period containing t.
func PeriodStart(t time.Time, g entity.Granularity, loc *time.Location) time.Time {
	switch g {
	case entity.Week:
		return WeekStart(t, loc)
	case entity.Month:
		return MonthStart(t, loc)
	default:
		return DayStart(t, loc)
	}
}

// shift moves a period start by n periods.
func shift(start time.Time, g entity.Granularity, n int) time.Time {
	switch g {
	case entity.Week:
		return addDays(start, 7*n)
	case entity.Month:
		return time.Date(start.Year(), start.Month()+time.Month(n), 1, 0, 0, 0, 0, start.Location())
	default:
		return addDays(start, n)
	}
}

func dateKey(t time.Time) string {
	return t.Format(entity.DateLayout)
}
