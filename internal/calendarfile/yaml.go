package calendarfile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlSchedule struct {
	User   string   `yaml:"user"`
	Events []record `yaml:"events"`
}

// EncodeYAML writes doc as YAML.
func EncodeYAML(w io.Writer, doc Document) error {
	out := yamlSchedule{User: doc.UserID, Events: make([]record, 0, len(doc.Events))}
	for _, ev := range doc.Events {
		out.Events = append(out.Events, toRecord(ev))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// DecodeYAML reads a YAML schedule.
func DecodeYAML(r io.Reader) (Document, error) {
	var in yamlSchedule
	if err := yaml.NewDecoder(r).Decode(&in); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return documentFromRecords(in.User, in.Events)
}
