package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/weekplanner/internal/week"
)

func TestConflicts(t *testing.T) {
	tuesdayMeeting := mustEvent(t, "a", week.Tuesday, "0950", week.Tuesday, "1130", "u")
	lateMonday := mustEvent(t, "late", week.Monday, "2300", week.Tuesday, "0100", "u")
	weekend := mustEvent(t, "weekend", week.Friday, "1000", week.Monday, "1000", "u")
	fullWeek := mustEvent(t, "wrap", week.Tuesday, "2200", week.Tuesday, "0600", "u")

	tests := []struct {
		name string
		a, b Event
		want bool
	}{
		{
			name: "same day touching",
			a:    tuesdayMeeting,
			b:    mustEvent(t, "b", week.Tuesday, "0900", week.Tuesday, "0950", "u"),
			want: false,
		},
		{
			name: "same day overlapping",
			a:    tuesdayMeeting,
			b:    mustEvent(t, "b", week.Tuesday, "0900", week.Tuesday, "1030", "u"),
			want: true,
		},
		{
			name: "same day contained",
			a:    tuesdayMeeting,
			b:    mustEvent(t, "b", week.Tuesday, "1000", week.Tuesday, "1100", "u"),
			want: true,
		},
		{
			name: "different days",
			a:    tuesdayMeeting,
			b:    mustEvent(t, "b", week.Wednesday, "0950", week.Wednesday, "1130", "u"),
			want: false,
		},
		{
			name: "overnight end overlaps next morning",
			a:    lateMonday,
			b:    mustEvent(t, "b", week.Tuesday, "0030", week.Tuesday, "0200", "u"),
			want: true,
		},
		{
			name: "overnight end touches next morning",
			a:    lateMonday,
			b:    mustEvent(t, "b", week.Tuesday, "0100", week.Tuesday, "0200", "u"),
			want: false,
		},
		{
			name: "start day matches other end day",
			a:    mustEvent(t, "b", week.Tuesday, "0030", week.Tuesday, "0200", "u"),
			b:    lateMonday,
			want: true,
		},
		{
			name: "multi day covers a whole day",
			a:    mustEvent(t, "b", week.Monday, "1000", week.Wednesday, "1000", "u"),
			b:    mustEvent(t, "c", week.Tuesday, "1200", week.Tuesday, "1300", "u"),
			want: true,
		},
		{
			name: "wrapping event covers saturday",
			a:    weekend,
			b:    mustEvent(t, "b", week.Saturday, "1200", week.Saturday, "1300", "u"),
			want: true,
		},
		{
			name: "wrapping event misses wednesday",
			a:    weekend,
			b:    mustEvent(t, "b", week.Wednesday, "1200", week.Wednesday, "1300", "u"),
			want: false,
		},
		{
			name: "same day wrap spans the week",
			a:    fullWeek,
			b:    mustEvent(t, "b", week.Thursday, "1000", week.Thursday, "1100", "u"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(tt.a, tt.b))
		})
	}
}
