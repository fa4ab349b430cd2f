package interval

import "github.com/teemow/weekplanner/internal/week"

// Span is anything with a start and an end point in the week, such as a
// planner event.
type Span interface {
	Start() week.Clock
	End() week.Clock
}

// FromSpan converts a span into an interval on the week-minute axis.
//
// A same-day span whose end precedes its start wraps around the whole week
// and gets one week added to its end. Spans across different days are taken
// as-is, even when the end falls before the start.
func FromSpan(s Span) Interval {
	start, end := s.Start(), s.End()
	return FromClocks(start, end)
}

// FromClocks is FromSpan for a bare pair of clocks.
func FromClocks(start, end week.Clock) Interval {
	s := start.WeekMinute()
	e := end.WeekMinute()

	if start.Day() == end.Day() && s > e {
		return Interval{Start: s, End: e + week.MinutesPerWeek}
	}
	return Interval{Start: s, End: e}
}

// FromSpans converts every span, preserving order.
func FromSpans[S Span](spans []S) []Interval {
	out := make([]Interval, 0, len(spans))
	for _, s := range spans {
		out = append(out, FromSpan(s))
	}
	return out
}
