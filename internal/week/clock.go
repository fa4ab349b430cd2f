package week

import (
	"fmt"
)

// Clock is an immutable point in the week.
type Clock struct {
	day    Day
	minute int
}

// NewClock builds a Clock from a day and a 4-digit 24-hour time such as "0930".
func NewClock(day Day, hhmm string) (Clock, error) {
	if hhmm == "" {
		return Clock{}, fmt.Errorf("time: %w", ErrNullArgument)
	}
	if !day.Valid() {
		return Clock{}, fmt.Errorf("%w: %d", ErrInvalidDay, int(day))
	}
	minute, err := parseHHMM(hhmm)
	if err != nil {
		return Clock{}, err
	}
	return Clock{day: day, minute: minute}, nil
}

// MustClock is like NewClock but panics on error. Intended for tests and constants.
func MustClock(day Day, hhmm string) Clock {
	c, err := NewClock(day, hhmm)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClock parses a day name and a 4-digit time.
func ParseClock(day, hhmm string) (Clock, error) {
	d, err := ParseDay(day)
	if err != nil {
		return Clock{}, err
	}
	return NewClock(d, hhmm)
}

// FromWeekMinute converts an absolute week-minute back into a Clock.
// Values outside [0, MinutesPerWeek) are folded into the week.
func FromWeekMinute(m int64) Clock {
	m %= MinutesPerWeek
	if m < 0 {
		m += MinutesPerWeek
	}
	return Clock{
		day:    Day(m / MinutesPerDay),
		minute: int(m % MinutesPerDay),
	}
}

func parseHHMM(s string) (int, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: %q must be 4 digits", ErrInvalidTime, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q must be 4 digits", ErrInvalidTime, s)
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[2]-'0')*10 + int(s[3]-'0')
	if hours > 23 {
		return 0, fmt.Errorf("%w: hours %02d out of range", ErrInvalidTime, hours)
	}
	if minutes > 59 {
		return 0, fmt.Errorf("%w: minutes %02d out of range", ErrInvalidTime, minutes)
	}
	return hours*MinutesPerHour + minutes, nil
}

// Day returns the day of the week.
func (c Clock) Day() Day {
	return c.day
}

// TotalMinutesInDay returns hours*60+minutes.
func (c Clock) TotalMinutesInDay() int {
	return c.minute
}

// WeekOrdinal returns the ordinal of the clock's day.
func (c Clock) WeekOrdinal() int {
	return c.day.Ordinal()
}

// WeekMinute returns the absolute minute offset within the week.
func (c Clock) WeekMinute() int64 {
	return int64(c.day.Ordinal())*MinutesPerDay + int64(c.minute)
}

// Time returns the 4-digit HHMM text.
func (c Clock) Time() string {
	return fmt.Sprintf("%02d%02d", c.minute/MinutesPerHour, c.minute%MinutesPerHour)
}

// HHMM returns the time of day as the integer HHMM, e.g. 930 for "0930".
func (c Clock) HHMM() int {
	return (c.minute/MinutesPerHour)*100 + c.minute%MinutesPerHour
}

// Add returns the clock advanced by the given number of minutes, wrapping
// around the end of the week.
func (c Clock) Add(minutes int64) Clock {
	days := minutes / MinutesPerDay
	rest := minutes % MinutesPerDay
	hours := rest / MinutesPerHour
	mins := rest % MinutesPerHour

	minute := int64(c.minute) + hours*MinutesPerHour + mins
	dayOrd := int64(c.day.Ordinal()) + days
	if minute >= MinutesPerDay {
		minute -= MinutesPerDay
		dayOrd++
	} else if minute < 0 {
		minute += MinutesPerDay
		dayOrd--
	}
	return Clock{day: DayFromOrdinal(int(dayOrd % DaysPerWeek)), minute: int(minute)}
}

// NextDayStart returns midnight of the following day.
func (c Clock) NextDayStart() Clock {
	return Clock{day: c.day.Next()}
}

// Equal reports whether both clocks denote the same point in the week.
func (c Clock) Equal(o Clock) bool {
	return c.day == o.day && c.minute == o.minute
}

// Before orders clocks by day ordinal and then minute of day.
func (c Clock) Before(o Clock) bool {
	return c.WeekMinute() < o.WeekMinute()
}

// String formats the clock as "Day: HHMM".
func (c Clock) String() string {
	return c.day.String() + ": " + c.Time()
}
