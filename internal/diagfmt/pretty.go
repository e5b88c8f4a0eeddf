// Package diagfmt renders diagnostics for people and for tools.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"str2table/internal/diag"
)

type styles struct {
	warning lipgloss.Style
	err     lipgloss.Style
	fatal   lipgloss.Style
	caret   lipgloss.Style
	plain   bool
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		fatal:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		caret:   r.NewStyle().Foreground(lipgloss.Color("2")),
		plain:   !color,
	}
}

func (s styles) tag(sev diag.Severity) string {
	if s.plain {
		return sev.Tag()
	}
	switch sev {
	case diag.SevWarning:
		return s.warning.Render(sev.Tag())
	case diag.SevFatal:
		return s.fatal.Render(sev.Tag())
	default:
		return s.err.Render(sev.Tag())
	}
}

func (s styles) underline(u string) string {
	if s.plain {
		return u
	}
	return s.caret.Render(u)
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает сообщение, затем выражение с
// подчёркиванием ^^^ под ошибочным фрагментом.
func Pretty(w io.Writer, items []diag.Diagnostic, opts PrettyOpts) error {
	st := newStyles(w, opts.Color)
	first := true
	for _, d := range items {
		msg := d.Message(opts.Threshold)
		if msg == "" {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false

		var b strings.Builder
		b.WriteString(st.tag(d.Severity))
		b.WriteString(strings.TrimPrefix(msg, d.Severity.Tag()))
		b.WriteByte('\n')
		if d.HasSpan && d.Expr != "" {
			fmt.Fprintf(&b, "  | %s\n", d.Expr)
			fmt.Fprintf(&b, "  | %s\n", st.underline(d.Primary.Underline(d.Expr)))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
