package export

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/flavono123/nestform/internal/schema"
)

const indent = "  "

// Encode writes doc to w in the given format, newline terminated.
func Encode(w io.Writer, doc schema.Document, format Format) error {
	b, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func Marshal(doc schema.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(doc)
	case FormatYAML:
		return marshalYAML(doc)
	case FormatOpenAPI:
		return marshalJSON(OpenAPISchema(doc))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// MarshalSnapshot renders the raw draft for live display.
func MarshalSnapshot(snap schema.Snapshot) ([]byte, error) {
	return marshalJSON(snap)
}

func marshalJSON(v interface{}) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func marshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(len(indent))
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
