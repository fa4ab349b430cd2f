package calendarfile

import (
	"encoding/xml"
	"fmt"
	"io"
)

type xmlSchedule struct {
	XMLName xml.Name   `xml:"schedule"`
	ID      string     `xml:"id,attr"`
	Events  []xmlEvent `xml:"event"`
}

type xmlEvent struct {
	Name     string      `xml:"name"`
	Time     xmlTime     `xml:"time"`
	Location xmlLocation `xml:"location"`
	Users    []string    `xml:"users>uid"`
}

type xmlTime struct {
	StartDay string `xml:"start-day"`
	Start    string `xml:"start"`
	EndDay   string `xml:"end-day"`
	End      string `xml:"end"`
}

type xmlLocation struct {
	Online bool   `xml:"online"`
	Place  string `xml:"place"`
}

// EncodeXML writes doc as a <schedule> document.
func EncodeXML(w io.Writer, doc Document) error {
	out := xmlSchedule{ID: doc.UserID, Events: make([]xmlEvent, 0, len(doc.Events))}
	for _, ev := range doc.Events {
		r := toRecord(ev)
		out.Events = append(out.Events, xmlEvent{
			Name:     r.Name,
			Time:     xmlTime{StartDay: r.StartDay, Start: r.Start, EndDay: r.EndDay, End: r.End},
			Location: xmlLocation{Online: r.Online, Place: r.Location},
			Users:    r.Invitees,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// DecodeXML reads a <schedule> document.
func DecodeXML(r io.Reader) (Document, error) {
	var in xmlSchedule
	if err := xml.NewDecoder(r).Decode(&in); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	records := make([]record, 0, len(in.Events))
	for _, e := range in.Events {
		records = append(records, record{
			Name:     e.Name,
			StartDay: e.Time.StartDay,
			Start:    e.Time.Start,
			EndDay:   e.Time.EndDay,
			End:      e.Time.End,
			Online:   e.Location.Online,
			Location: e.Location.Place,
			Invitees: e.Users,
		})
	}
	return documentFromRecords(in.ID, records)
}
