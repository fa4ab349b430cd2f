// Package week models points in a repeating seven day week.
//
// A Clock pairs a Day with a minute of that day. Clocks flatten to an
// absolute week-minute (day ordinal * 1440 + minute of day) in the range
// [0, 10079], which is the axis used by the interval and scheduling
// packages.
//
//	c, err := week.NewClock(week.Tuesday, "0930")
//	if err != nil {
//	    return err
//	}
//	c.WeekMinute() // 3450
package week
