package calendar

import "time"

// Mainland China statutory holidays. 2026 dates are provisional until
// the State Council notice is published.
var holidays = map[string]struct{}{
	// 2025
	"2025-01-01": {},
	"2025-01-28": {}, "2025-01-29": {}, "2025-01-30": {}, "2025-01-31": {},
	"2025-02-01": {}, "2025-02-02": {}, "2025-02-03": {}, "2025-02-04": {},
	"2025-04-04": {}, "2025-04-05": {}, "2025-04-06": {},
	"2025-05-01": {}, "2025-05-02": {}, "2025-05-03": {}, "2025-05-04": {}, "2025-05-05": {},
	"2025-05-31": {}, "2025-06-01": {}, "2025-06-02": {},
	"2025-10-01": {}, "2025-10-02": {}, "2025-10-03": {}, "2025-10-04": {},
	"2025-10-05": {}, "2025-10-06": {}, "2025-10-07": {}, "2025-10-08": {},

	// 2026
	"2026-01-01": {}, "2026-01-02": {}, "2026-01-03": {},
	"2026-02-14": {}, "2026-02-15": {}, "2026-02-16": {}, "2026-02-17": {},
	"2026-02-18": {}, "2026-02-19": {}, "2026-02-20": {},
	"2026-04-04": {}, "2026-04-05": {}, "2026-04-06": {},
	"2026-05-01": {}, "2026-05-02": {}, "2026-05-03": {},
	"2026-06-19": {}, "2026-06-20": {}, "2026-06-21": {},
	"2026-09-25": {}, "2026-09-26": {}, "2026-09-27": {},
	"2026-10-01": {}, "2026-10-02": {}, "2026-10-03": {}, "2026-10-04": {},
	"2026-10-05": {}, "2026-10-06": {}, "2026-10-07": {},
}

// Weekend days that are official make-up workdays (调休).
var workdayOverrides = map[string]struct{}{
	"2025-01-26": {},
	"2025-02-08": {},
	"2025-04-27": {},
	"2025-09-28": {},
	"2025-10-11": {},

	"2026-01-04": {},
	"2026-02-07": {},
	"2026-02-21": {},
}

const dateKey = "2006-01-02"

// IsHoliday reports whether t is a statutory holiday
func IsHoliday(t time.Time) bool {
	_, ok := holidays[t.Format(dateKey)]
	return ok
}

// IsWorkdayOverride reports whether t is a weekend day that must be worked
func IsWorkdayOverride(t time.Time) bool {
	_, ok := workdayOverrides[t.Format(dateKey)]
	return ok
}

// IsRestDay reports whether t is a day off: a holiday or a weekend that is
// not a make-up workday.
func IsRestDay(t time.Time) bool {
	if IsWorkdayOverride(t) {
		return false
	}
	return IsHoliday(t) || IsWeekend(t)
}
