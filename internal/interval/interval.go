package interval

import "fmt"

// Interval is a span of absolute week-minutes.
type Interval struct {
	Start int64
	End   int64
}

// New returns the interval [start, end).
func New(start, end int64) Interval {
	return Interval{Start: start, End: end}
}

// Overlaps reports whether either interval's start lies within the other's
// inclusive [Start, End] range.
func (i Interval) Overlaps(o Interval) bool {
	return (i.Start <= o.End && i.Start >= o.Start) ||
		(o.Start <= i.End && o.Start >= i.Start)
}

// Len returns End - Start.
func (i Interval) Len() int64 {
	return i.End - i.Start
}

// String formats the interval as "[start, end)".
func (i Interval) String() string {
	return fmt.Sprintf("[%d, %d)", i.Start, i.End)
}
