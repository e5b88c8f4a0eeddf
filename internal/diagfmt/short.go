package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"str2table/internal/diag"
)

// Short prints one line per diagnostic:
// <ID> <SEV> <start>-<end>: <description> <reason>
func Short(w io.Writer, items []diag.Diagnostic, threshold diag.Severity) error {
	visible := lo.Filter(items, func(d diag.Diagnostic, _ int) bool { return d.Severity >= threshold })
	for _, d := range visible {
		loc := "-"
		if d.HasSpan {
			loc = d.Primary.String()
		}
		line := fmt.Sprintf("%s %s %s: %s", d.Code.ID(), d.Severity, loc, sanitizeMessage(d.Description))
		if d.Reason != "" {
			line += " " + sanitizeMessage(d.Reason)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func sanitizeMessage(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Write renders items in the given format.
func Write(w io.Writer, format Format, items []diag.Diagnostic, opts PrettyOpts) error {
	switch format {
	case FormatJSON:
		return JSON(w, items, JSONOpts{Threshold: opts.Threshold})
	case FormatShort:
		return Short(w, items, opts.Threshold)
	case FormatYAML:
		return YAML(w, items, JSONOpts{Threshold: opts.Threshold})
	default:
		return Pretty(w, items, opts)
	}
}
