package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/samber/lo"

	"str2table/internal/selector"
	"str2table/internal/table"
)

// Settings are the raw string settings of one run. Selections are kept as
// expressions so that flags and config files merge the same way. An empty
// field is unset.
type Settings struct {
	Input          string
	Separator      string
	EndLine        string
	ParseMode      string
	ForceParse     string
	Export         string
	ExportColor    string
	ExportSubtable string
}

// Merge returns s with every set field of over applied on top.
func (s Settings) Merge(over Settings) Settings {
	pick := func(base, top string) string { return lo.Ternary(top != "", top, base) }
	return Settings{
		Input:          pick(s.Input, over.Input),
		Separator:      pick(s.Separator, over.Separator),
		EndLine:        pick(s.EndLine, over.EndLine),
		ParseMode:      pick(s.ParseMode, over.ParseMode),
		ForceParse:     pick(s.ForceParse, over.ForceParse),
		Export:         pick(s.Export, over.Export),
		ExportColor:    pick(s.ExportColor, over.ExportColor),
		ExportSubtable: pick(s.ExportSubtable, over.ExportSubtable),
	}
}

// Resolved holds validated settings with defaults applied.
type Resolved struct {
	Input     string
	Separator string
	EndLine   string
	Mode      table.Mode
	Force     selector.ForceSelection
	Export    string
	Color     selector.Selection[selector.Color]
	Subtable  selector.Selection[selector.Mark]
}

// Resolve applies defaults and parses every selection expression. The first
// failing expression is returned as its diagnostic.
func (s Settings) Resolve() (Resolved, error) {
	defaults := table.DefaultOptions()
	r := Resolved{
		Input:     s.Input,
		Separator: s.Separator,
		EndLine:   s.EndLine,
		Export:    s.Export,
	}
	if r.Separator == "" {
		r.Separator = defaults.Separator
	}
	if r.EndLine == "" {
		r.EndLine = defaults.EndLine
	}
	var err error
	if r.Mode, err = table.ParseMode(s.ParseMode); err != nil {
		return Resolved{}, err
	}
	if s.ForceParse != "" {
		if r.Force, err = selector.ParseForce(s.ForceParse); err != nil {
			return Resolved{}, err
		}
	}
	if s.ExportColor != "" {
		if r.Color, err = selector.ParseColor(s.ExportColor); err != nil {
			return Resolved{}, err
		}
	}
	if s.ExportSubtable != "" {
		if r.Subtable, err = selector.ParseSubtable(s.ExportSubtable); err != nil {
			return Resolved{}, err
		}
	}
	return r, nil
}

func (sec section) settings() (Settings, error) {
	s := Settings{
		Input:     sec.Input,
		Separator: sec.Separator,
		EndLine:   sec.EndLine,
		ParseMode: sec.ParseMode,
		Export:    sec.Export,
	}
	var err error
	if sec.ForceParse != nil {
		if s.ForceParse, err = rangeExpr("force_parse", sec.ForceParse, forceToken); err != nil {
			return Settings{}, err
		}
	}
	if sec.ExportColor != nil {
		if s.ExportColor, err = rangeExpr("export_color", sec.ExportColor, colorToken); err != nil {
			return Settings{}, err
		}
	}
	if sec.ExportSubtable != nil {
		s.ExportSubtable, err = indexExpr(sec.ExportSubtable)
		if err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

func forceToken(bounds string, axis selector.Axis, attr string) string {
	return bounds + string(axis.Letter()) + attr
}

// colorToken accepts a color letter or a full name such as "red" or "gray".
func colorToken(bounds string, axis selector.Axis, attr string) string {
	if c, ok := selector.ParseColorName(attr); ok && c != selector.Black {
		attr = string(c.Letter())
	}
	return bounds + attr + string(axis.Letter())
}

// rangeExpr turns [[start, end, "t"], ...] lists into one selector expression.
func rangeExpr(key string, lists *rangeLists, token func(string, selector.Axis, string) string) (string, error) {
	var parts []string
	for _, axis := range []selector.Axis{selector.AxisLine, selector.AxisColumn} {
		items := lists.Line
		if axis == selector.AxisColumn {
			items = lists.Column
		}
		for i, item := range items {
			if len(item) != 3 {
				return "", fmt.Errorf("%s.%s[%d]: expected [start, end, letter], got %d items", key, axis, i, len(item))
			}
			start, ok1 := item[0].(int64)
			end, ok2 := item[1].(int64)
			attr, ok3 := item[2].(string)
			if !ok1 || !ok2 || !ok3 || start < 0 || end < 0 {
				return "", fmt.Errorf("%s.%s[%d]: expected [start, end, letter], got %v", key, axis, i, item)
			}
			parts = append(parts, token(bounds(start, end), axis, attr))
		}
	}
	return strings.Join(parts, ","), nil
}

func bounds(start, end int64) string {
	if start == end {
		return strconv.FormatInt(start, 10)
	}
	return strconv.FormatInt(start, 10) + "-" + strconv.FormatInt(end, 10)
}

func indexExpr(lists *indexLists) (string, error) {
	var parts []string
	for _, axis := range []selector.Axis{selector.AxisLine, selector.AxisColumn} {
		items := lists.Line
		if axis == selector.AxisColumn {
			items = lists.Column
		}
		for i, idx := range items {
			if idx < 0 {
				return "", fmt.Errorf("export_subtable.%s[%d]: negative index %d", axis, i, idx)
			}
			parts = append(parts, strconv.FormatInt(idx, 10)+string(axis.Letter()))
		}
	}
	return strings.Join(parts, ","), nil
}

// Write encodes the resolved form of s as a TOML file with a single
// [default] section.
func Write(w io.Writer, s Settings) error {
	r, err := s.Resolve()
	if err != nil {
		return err
	}
	sec := section{
		Input:     r.Input,
		Separator: r.Separator,
		EndLine:   r.EndLine,
		ParseMode: r.Mode.String(),
		Export:    r.Export,
	}
	if !r.Force.Empty() {
		runs, err := rangeRuns(r.Force.Pairs, selector.ForceType.Letter)
		if err != nil {
			return err
		}
		sec.ForceParse = &rangeLists{Line: runs}
		if r.Force.Axis == selector.AxisColumn {
			sec.ForceParse = &rangeLists{Column: runs}
		}
	}
	if !r.Color.Empty() {
		lists := &rangeLists{}
		if lists.Line, err = rangeRuns(r.Color.Lines, selector.Color.Letter); err != nil {
			return err
		}
		if lists.Column, err = rangeRuns(r.Color.Columns, selector.Color.Letter); err != nil {
			return err
		}
		sec.ExportColor = lists
	}
	if !r.Subtable.Empty() {
		lists := &indexLists{}
		if lists.Line, err = indices(r.Subtable.Lines); err != nil {
			return err
		}
		if lists.Column, err = indices(r.Subtable.Columns); err != nil {
			return err
		}
		sec.ExportSubtable = lists
	}
	return toml.NewEncoder(w).Encode(map[string]section{DefaultSection: sec})
}

// rangeRuns folds pairs back into [start, end, "letter"] items. Attributes
// without a letter (Black) are skipped.
func rangeRuns[A comparable](pairs []selector.Pair[A], letter func(A) byte) ([][]any, error) {
	var out [][]any
	for _, run := range selector.Runs(pairs) {
		l := letter(run.Attr)
		if l == 0 {
			continue
		}
		start, err := safecast.Conv[int64](run.Start)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", run.Start, err)
		}
		end, err := safecast.Conv[int64](run.End)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", run.End, err)
		}
		out = append(out, []any{start, end, string(l)})
	}
	return out, nil
}

func indices(pairs []selector.Pair[selector.Mark]) ([]int64, error) {
	var out []int64
	for _, p := range pairs {
		v, err := safecast.Conv[int64](p.Index)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", p.Index, err)
		}
		out = append(out, v)
	}
	return out, nil
}
