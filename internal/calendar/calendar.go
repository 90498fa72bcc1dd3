package calendar

import "time"

// WeekStart selects which weekday opens a calendar week
type WeekStart string

const (
	Monday WeekStart = "monday"
	Sunday WeekStart = "sunday"
)

// ParseWeekStart converts a config string to a WeekStart, defaulting to Monday
func ParseWeekStart(s string) WeekStart {
	if s == string(Sunday) {
		return Sunday
	}
	return Monday
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last second (23:59:59) of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// AddDays moves t by n calendar days, keeping the wall clock time
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of calendar days from a to b.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	// Normalize through UTC dates so DST transitions don't skew the count.
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// StartOfWeek returns midnight of the first day of t's week
func StartOfWeek(t time.Time, ws WeekStart) time.Time {
	day := StartOfDay(t)
	offset := weekdayOffset(day.Weekday(), ws)
	return AddDays(day, -offset)
}

// StartOfMonth returns midnight of the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns every day of t's month at midnight
func DaysInMonth(t time.Time) []time.Time {
	first := StartOfMonth(t)
	var days []time.Time
	for d := first; d.Month() == first.Month(); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// DaysInWeek returns the seven days of t's week
func DaysInWeek(t time.Time, ws WeekStart) []time.Time {
	start := StartOfWeek(t, ws)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}

// MonthGrid lays out t's month as rows of seven cells. Cells before the
// first day and after the last day are nil.
func MonthGrid(t time.Time, ws WeekStart) [][]*time.Time {
	days := DaysInMonth(t)
	offset := weekdayOffset(days[0].Weekday(), ws)

	cells := make([]*time.Time, offset, offset+len(days)+6)
	for i := range days {
		cells = append(cells, &days[i])
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	rows := make([][]*time.Time, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		rows = append(rows, cells[i:i+7])
	}
	return rows
}

func weekdayOffset(wd time.Weekday, ws WeekStart) int {
	if ws == Sunday {
		return int(wd)
	}
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// IsWeekend reports whether t is a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
