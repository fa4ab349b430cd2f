package calendarfile

import (
	"fmt"
	"strings"

	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/week"
)

// Document is one user's schedule as stored on disk.
type Document struct {
	UserID string
	Events []planner.Event
}

// FromUser snapshots a planner user.
func FromUser(u planner.User) Document {
	return Document{UserID: u.ID, Events: u.Events}
}

// Import registers the document's owner in p with its events.
func (d Document) Import(p *planner.Planner) error {
	return p.ImportUser(d.UserID, d.Events)
}

// record is the codec-neutral shape of an event shared by the XML and YAML
// encodings.
type record struct {
	Name     string   `yaml:"name"`
	StartDay string   `yaml:"start_day"`
	Start    string   `yaml:"start"`
	EndDay   string   `yaml:"end_day"`
	End      string   `yaml:"end"`
	Online   bool     `yaml:"online"`
	Location string   `yaml:"location"`
	Invitees []string `yaml:"invitees,flow"`
}

func toRecord(ev planner.Event) record {
	return record{
		Name:     ev.Name(),
		StartDay: ev.Start().Day().String(),
		Start:    ev.Start().Time(),
		EndDay:   ev.End().Day().String(),
		End:      ev.End().Time(),
		Online:   ev.Online(),
		Location: ev.Location(),
		Invitees: ev.Invitees(),
	}
}

func (r record) event() (planner.Event, error) {
	start, err := week.ParseClock(r.StartDay, r.Start)
	if err != nil {
		return planner.Event{}, fmt.Errorf("%w: event %q start: %w", ErrMalformed, r.Name, err)
	}
	end, err := week.ParseClock(r.EndDay, r.End)
	if err != nil {
		return planner.Event{}, fmt.Errorf("%w: event %q end: %w", ErrMalformed, r.Name, err)
	}

	invitees := make([]string, 0, len(r.Invitees))
	for _, id := range r.Invitees {
		invitees = append(invitees, strings.TrimSpace(id))
	}

	ev, err := planner.NewEvent(r.Name, r.Location, r.Online, start, end, invitees)
	if err != nil {
		return planner.Event{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return ev, nil
}

func documentFromRecords(userID string, records []record) (Document, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Document{}, fmt.Errorf("%w: missing user id", ErrMalformed)
	}

	doc := Document{UserID: userID, Events: make([]planner.Event, 0, len(records))}
	for _, r := range records {
		ev, err := r.event()
		if err != nil {
			return Document{}, err
		}
		doc.Events = append(doc.Events, ev)
	}
	return doc, nil
}
