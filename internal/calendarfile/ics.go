package calendarfile

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/week"
)

const (
	icsProductID = "-//teemow//weekplanner//EN"

	propOnline ical.ComponentProperty = "X-WEEKPLANNER-ONLINE"
)

// ReferenceWeek is the Sunday 00:00 UTC that week clocks are anchored on when
// written as iCalendar timestamps.
var ReferenceWeek = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("weekplanner.teemow.github.com"))

// EventUID returns the stable iCalendar UID of an event in a user's schedule.
func EventUID(userID, eventName string) string {
	return uuid.NewSHA1(uidNamespace, []byte(userID+"\x00"+eventName)).String()
}

// EncodeICS writes doc as an iCalendar file.
func EncodeICS(w io.Writer, doc Document) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(doc.UserID)

	stamp := ReferenceWeek
	for _, ev := range doc.Events {
		start, end := referenceTimes(ev)

		ve := cal.AddEvent(EventUID(doc.UserID, ev.Name()))
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(start)
		ve.SetEndAt(end)
		ve.SetSummary(ev.Name())
		ve.SetLocation(ev.Location())
		ve.SetProperty(propOnline, strings.ToUpper(fmt.Sprint(ev.Online())))
		ve.SetOrganizer(ev.Host())
		for _, id := range ev.Invitees() {
			ve.AddAttendee(id)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// DecodeICS reads an iCalendar file. Timestamps are mapped back onto the week
// by weekday and time of day.
func DecodeICS(r io.Reader) (Document, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var userID string
	for _, p := range cal.CalendarProperties {
		if p.IANAToken == string(ical.PropertyXWRCalName) {
			userID = p.Value
		}
	}

	events := make([]planner.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, err := decodeVEvent(ve)
		if err != nil {
			return Document{}, err
		}
		events = append(events, ev)
	}

	// Calendars without a name belong to the host of their first event.
	if strings.TrimSpace(userID) == "" && len(events) > 0 {
		userID = events[0].Host()
	}
	if strings.TrimSpace(userID) == "" {
		return Document{}, fmt.Errorf("%w: missing calendar name", ErrMalformed)
	}
	return Document{UserID: strings.TrimSpace(userID), Events: events}, nil
}

func decodeVEvent(ve *ical.VEvent) (planner.Event, error) {
	name := propValue(ve, ical.ComponentPropertySummary)

	start, err := ve.GetStartAt()
	if err != nil {
		return planner.Event{}, fmt.Errorf("%w: event %q: %w", ErrMalformed, name, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return planner.Event{}, fmt.Errorf("%w: event %q: %w", ErrMalformed, name, err)
	}

	var invitees []string
	for _, p := range ve.GetProperties(ical.ComponentPropertyAttendee) {
		invitees = append(invitees, calAddress(p.Value))
	}
	if organizer := calAddress(propValue(ve, ical.ComponentPropertyOrganizer)); organizer != "" {
		invitees = hostFirst(organizer, invitees)
	}

	online := strings.EqualFold(propValue(ve, propOnline), "true")

	ev, err := planner.NewEvent(name, propValue(ve, ical.ComponentPropertyLocation), online,
		clockAt(start), clockAt(end), invitees)
	if err != nil {
		return planner.Event{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return ev, nil
}

// referenceTimes places ev on the reference week. Ends at or before the start
// fall into the following week.
func referenceTimes(ev planner.Event) (time.Time, time.Time) {
	s := ev.Start().WeekMinute()
	e := ev.End().WeekMinute()
	if e <= s {
		e += week.MinutesPerWeek
	}
	return ReferenceWeek.Add(time.Duration(s) * time.Minute),
		ReferenceWeek.Add(time.Duration(e) * time.Minute)
}

func clockAt(t time.Time) week.Clock {
	m := int64(t.Weekday())*week.MinutesPerDay + int64(t.Hour()*week.MinutesPerHour+t.Minute())
	return week.FromWeekMinute(m)
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	p := ve.GetProperty(prop)
	if p == nil {
		return ""
	}
	return p.Value
}

func calAddress(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= len("mailto:") && strings.EqualFold(v[:len("mailto:")], "mailto:") {
		v = v[len("mailto:"):]
	}
	return strings.TrimSpace(v)
}

func hostFirst(host string, invitees []string) []string {
	out := make([]string, 0, len(invitees)+1)
	out = append(out, host)
	for _, id := range invitees {
		if id != host {
			out = append(out, id)
		}
	}
	return out
}
