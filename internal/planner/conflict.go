package planner

import "github.com/teemow/weekplanner/internal/week"

// Conflicts reports whether the time ranges of a and b collide.
//
// Events with the same start and end days compare their HHMM times directly.
// Everything else is compared at day granularity, with ends that fall before
// their start moved into the following week, and then refined at the day
// where one event ends and the other starts.
func Conflicts(a, b Event) bool {
	aStartDay, aEndDay := a.start.Day(), a.end.Day()
	bStartDay, bEndDay := b.start.Day(), b.end.Day()

	aStartTime, aEndTime := a.start.HHMM(), a.end.HHMM()
	bStartTime, bEndTime := b.start.HHMM(), b.end.HHMM()

	if aStartDay == bStartDay && aEndDay == bEndDay {
		return aEndTime > bStartTime && bEndTime > aStartTime
	}

	aStart, aEnd := spanDays(aStartDay, aEndDay, aStartTime, aEndTime)
	bStart, bEnd := spanDays(bStartDay, bEndDay, bStartTime, bEndTime)

	switch {
	case !(aEnd <= bStart || aStart >= bEnd):
		return true
	case aStartDay == bEndDay:
		return aStartTime < bEndTime
	case aEndDay == bStartDay:
		return aEndTime > bStartTime
	default:
		return false
	}
}

// spanDays returns start and end day ordinals with the end shifted into the
// following week where needed.
func spanDays(startDay, endDay week.Day, startTime, endTime int) (int, int) {
	start, end := startDay.Ordinal(), endDay.Ordinal()
	if end < start {
		end += week.DaysPerWeek
	}
	if end == start && endTime < startTime {
		end += week.DaysPerWeek
	}
	return start, end
}
