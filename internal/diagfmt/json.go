package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"

	"str2table/internal/diag"
)

// LocationJSON points at the fragment of an expression a diagnostic is about.
type LocationJSON struct {
	Expr      string `json:"expr" yaml:"expr"`
	Fragment  string `json:"fragment" yaml:"fragment"`
	StartByte uint32 `json:"start_byte" yaml:"start_byte"`
	EndByte   uint32 `json:"end_byte" yaml:"end_byte"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity    string        `json:"severity" yaml:"severity"`
	Code        string        `json:"code" yaml:"code"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Reason      string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Attempt     string        `json:"attempt,omitempty" yaml:"attempt,omitempty"`
	Hint        string        `json:"hint,omitempty" yaml:"hint,omitempty"`
	Location    *LocationJSON `json:"location,omitempty" yaml:"location,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics"`
	Count       int              `json:"count" yaml:"count"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(items []diag.Diagnostic, opts JSONOpts) DiagnosticsOutput {
	diagnostics := make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		if d.Severity < opts.Threshold {
			continue
		}
		if opts.Max > 0 && len(diagnostics) >= opts.Max {
			break
		}
		dj := DiagnosticJSON{
			Severity:    d.Severity.String(),
			Code:        d.Code.ID(),
			Name:        d.Code.Name(),
			Description: d.Description,
			Reason:      d.Reason,
			Attempt:     d.Attempt,
			Hint:        d.Hint,
		}
		if d.HasSpan {
			dj.Location = &LocationJSON{
				Expr:      d.Expr,
				Fragment:  d.Fragment,
				StartByte: d.Primary.Start,
				EndByte:   d.Primary.End,
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, items []diag.Diagnostic, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(items, opts))
}

// YAML writes the same document as JSON in YAML form.
func YAML(w io.Writer, items []diag.Diagnostic, opts JSONOpts) error {
	return yaml.NewEncoder(w).Encode(BuildDiagnosticsOutput(items, opts))
}
