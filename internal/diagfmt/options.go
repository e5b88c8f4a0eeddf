package diagfmt

import (
	"fmt"

	"str2table/internal/diag"
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Threshold hides diagnostics of lower severity.
	Threshold diag.Severity
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Threshold diag.Severity
	Max       int // обрезка вывода, не Bag
}

// Format is the diagnostics output style.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatShort
	FormatYAML
)

// ParseFormat accepts pretty, json, short or yaml.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "pretty", "":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "short":
		return FormatShort, nil
	case "yaml":
		return FormatYAML, nil
	}
	return FormatPretty, fmt.Errorf("unknown format: %s", s)
}
