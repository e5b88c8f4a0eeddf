package table

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"str2table/internal/cell"
	"str2table/internal/diag"
	"str2table/internal/selector"
)

// Mode is how cells without a forced type are parsed.
type Mode uint8

const (
	// ModeAuto infers every cell.
	ModeAuto Mode = iota
	// ModeString keeps every cell as text.
	ModeString
)

func (m Mode) String() string {
	if m == ModeString {
		return "s"
	}
	return "a"
}

// ParseMode accepts "a" (auto) or "s" (string).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "auto", "":
		return ModeAuto, nil
	case "s", "string":
		return ModeString, nil
	default:
		return ModeAuto, fmt.Errorf("invalid parse mode %q (expected a|s)", s)
	}
}

// Options control Parse.
type Options struct {
	Separator string
	EndLine   string
	Mode      Mode
	// Force overrides the parse mode for the selected lines or columns.
	Force selector.ForceSelection
	// Jobs > 1 parses lines concurrently.
	Jobs     int
	Reporter diag.Reporter
	Logger   *zap.Logger
}

// DefaultOptions splits cells on spaces and lines on "\n".
func DefaultOptions() Options {
	return Options{Separator: " ", EndLine: "\n"}
}

// Parse splits text into lines and cells and types every cell. Empty cells
// and empty lines are dropped; indices count the kept ones from 0.
func Parse(ctx context.Context, text string, opts Options) (*Table, error) {
	if opts.Separator == "" {
		d := diag.New(diag.ArgWrongFormat).WithReason("The separator is empty.")
		return nil, &d
	}
	if opts.EndLine == "" {
		d := diag.New(diag.ArgWrongFormat).WithReason("The end of line is empty.")
		return nil, &d
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	raw := splitLines(text, opts.EndLine)
	lines := make([]Line, len(raw))
	warnings := make([][]*diag.ReportBuilder, len(raw))

	jobs := max(opts.Jobs, 1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, l := range raw {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines[i], warnings[i] = parseLine(i, l, opts, reporter)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}

	// порядок строк сохраняется
	for _, ws := range warnings {
		for _, w := range ws {
			w.Emit()
		}
	}
	logger.Debug("table parsed",
		zap.Int("lines", len(lines)),
		zap.Int("jobs", jobs),
		zap.String("mode", opts.Mode.String()),
		zap.String("force", opts.Force.String()),
	)
	return New(lines), nil
}

// splitLines returns the trimmed non-empty lines. When endLine has no line
// feed, line feeds and carriage returns inside text are not meaningful and
// are removed first.
func splitLines(text, endLine string) []string {
	if !strings.Contains(endLine, "\n") {
		text = strings.ReplaceAll(text, "\n", "")
		if !strings.Contains(endLine, "\r") {
			text = strings.ReplaceAll(text, "\r", "")
		}
	}
	var out []string
	for _, l := range strings.Split(text, endLine) {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func splitCells(line, sep string) []string {
	var out []string
	for _, c := range strings.Split(line, sep) {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// parseLine types the cells of line i. Fallback warnings are built but not
// emitted so that the caller can report them in line order.
func parseLine(i int, line string, opts Options, r diag.Reporter) (Line, []*diag.ReportBuilder) {
	texts := splitCells(line, opts.Separator)
	out := make(Line, len(texts))
	var warnings []*diag.ReportBuilder
	for j, text := range texts {
		v, w := parseCell(i, j, text, opts, r)
		out[j] = Cell{Value: v}
		if w != nil {
			warnings = append(warnings, w)
		}
	}
	return out, warnings
}

func parseCell(i, j int, text string, opts Options, r diag.Reporter) (cell.Value, *diag.ReportBuilder) {
	at := index(i)
	if opts.Force.Axis == selector.AxisColumn {
		at = index(j)
	}
	ft, forced := opts.Force.Lookup(at)
	if !forced {
		if opts.Mode == ModeString {
			return cell.ForceString(text), nil
		}
		return cell.Infer(text), nil
	}

	var (
		v   cell.Value
		err error
	)
	switch ft {
	case selector.ForceString:
		return cell.ForceString(text), nil
	case selector.ForceInt:
		v, err = cell.ParseInt(text)
	case selector.ForceFloat:
		v, err = cell.ParseFloat(text)
	}
	if err == nil {
		return v, nil
	}
	code := diag.CellNotInteger
	if errors.Is(err, cell.ErrNotFloat) {
		code = diag.CellNotFloat
	}
	w := diag.ReportWarning(r, diag.CellForceFallback).
		WithReason(fmt.Sprintf("%s: cell %s at line %d, column %d.", code.Name(), err, i, j)).
		WithAttempt("The cell was parsed by automatic type inference instead.")
	return cell.Infer(text), w
}
