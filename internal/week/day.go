package week

import (
	"fmt"
	"strings"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
	DaysPerWeek    = 7
	MinutesPerWeek = DaysPerWeek * MinutesPerDay
)

// Day is a day of the week. Its ordinal drives all week arithmetic.
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [DaysPerWeek]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// Days returns every day in ordinal order.
func Days() []Day {
	return []Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// Valid reports whether d is one of the seven days.
func (d Day) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// Ordinal returns the day's position in the week, Sunday being 0.
func (d Day) Ordinal() int {
	return int(d)
}

// Next returns the following day, wrapping Saturday to Sunday.
func (d Day) Next() Day {
	return Day((int(d) + 1) % DaysPerWeek)
}

// String returns the English day name, e.g. "Monday".
func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay parses a full English day name, ignoring case and surrounding space.
func ParseDay(name string) (Day, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("day: %w", ErrNullArgument)
	}
	for i, n := range dayNames {
		if strings.EqualFold(n, name) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, name)
}

// DayFromOrdinal maps any integer onto the week, so 7 is Sunday and -1 is Saturday.
func DayFromOrdinal(n int) Day {
	n %= DaysPerWeek
	if n < 0 {
		n += DaysPerWeek
	}
	return Day(n)
}
