package diag

import (
	"errors"
	"strings"

	"str2table/internal/source"
)

type Diagnostic struct {
	Severity    Severity
	Code        Code
	Description string
	Reason      string
	Attempt     string
	Hint        string
	Expr        string
	Fragment    string
	Primary     source.Span
	HasSpan     bool
}

// Message assembles the diagnostic text, or returns "" when the severity is
// below threshold.
func (d Diagnostic) Message(threshold Severity) string {
	if d.Severity < threshold {
		return ""
	}
	var b strings.Builder
	b.WriteString(d.Severity.Tag())
	b.WriteByte(' ')
	b.WriteString(d.Description)
	if d.Attempt != "" {
		b.WriteString("\nAttempted fixes:\n\t")
		b.WriteString(d.Attempt)
	}
	if d.Hint != "" {
		b.WriteString("\nHow to fix:\n\t")
		b.WriteString(d.Hint)
	}
	if d.Reason != "" {
		b.WriteString("\nCaused by:\n\t")
		b.WriteString(d.Reason)
	}
	return b.String()
}

// Error renders the full message regardless of threshold.
func (d Diagnostic) Error() string {
	return d.Message(SevWarning)
}

// As extracts a diagnostic from an error chain.
func As(err error) (*Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	var v Diagnostic
	if errors.As(err, &v) {
		return &v, true
	}
	return nil, false
}

// FromError wraps a plain error into a diagnostic of the given code.
// Errors that already carry a diagnostic are returned unchanged.
func FromError(code Code, err error) *Diagnostic {
	if d, ok := As(err); ok {
		return d
	}
	d := New(code).WithReason(err.Error())
	return &d
}
