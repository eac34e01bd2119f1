package export

import (
	"errors"
	"strings"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatOpenAPI Format = "openapi"
)

var Formats = []Format{FormatJSON, FormatYAML, FormatOpenAPI}

var ErrUnknownFormat = errors.New("unknown output format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatOpenAPI:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", ErrUnknownFormat
}

func (f Format) String() string {
	return string(f)
}

// Ext is the conventional file extension for the format.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}
