package calendarfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names a schedule encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatXML, FormatYAML, FormatICS}
}

// ParseFormat parses a format name such as "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "xml":
		return FormatXML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ics", "ical", "ifb":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes doc to w in format f.
func Encode(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatXML:
		return EncodeXML(w, doc)
	case FormatYAML:
		return EncodeYAML(w, doc)
	case FormatICS:
		return EncodeICS(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Decode reads a document in format f from r.
func Decode(r io.Reader, f Format) (Document, error) {
	switch f {
	case FormatXML:
		return DecodeXML(r)
	case FormatYAML:
		return DecodeYAML(r)
	case FormatICS:
		return DecodeICS(r)
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Load reads the schedule at path using the codec for its extension.
func Load(path string) (Document, error) {
	if path == "" {
		return Document{}, errors.New("schedule path is empty")
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer file.Close()

	doc, err := Decode(file, f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path using the codec for its extension. The parent
// directory is created if needed and the file ends up with mode 0600.
func Save(path string, doc Document) error {
	if path == "" {
		return errors.New("schedule path is empty")
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, f, doc); err != nil {
		return err
	}
	return writeAtomic(path, buf.Bytes())
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".weekplanner-schedule-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
