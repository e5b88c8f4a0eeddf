// Package table holds parsed tables and the operations applied to them
// before export: subtable extraction and coloring.
package table

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"str2table/internal/selector"
)

// Line is one row of cells. Lines may have different lengths.
type Line []Cell

// Table is an ordered list of lines.
type Table struct {
	lines []Line
}

func New(lines []Line) *Table {
	return &Table{lines: lines}
}

func (t *Table) Lines() []Line { return t.lines }

func (t *Table) Len() int { return len(t.lines) }

// Width is the length of the longest line.
func (t *Table) Width() int {
	w := 0
	for _, l := range t.lines {
		w = max(w, len(l))
	}
	return w
}

// Cell returns the cell at line i, column j.
func (t *Table) Cell(i, j int) (Cell, bool) {
	if i < 0 || i >= len(t.lines) || j < 0 || j >= len(t.lines[i]) {
		return Cell{}, false
	}
	return t.lines[i][j], true
}

// Rows renders every cell with render.
func (t *Table) Rows(render func(Cell) string) [][]string {
	out := make([][]string, len(t.lines))
	for i, l := range t.lines {
		row := make([]string, len(l))
		for j, c := range l {
			row[j] = render(c)
		}
		out[i] = row
	}
	return out
}

// Subtable keeps the intersection of the selected lines and columns. An axis
// without selections keeps everything; indices outside the table are ignored.
func (t *Table) Subtable(sel selector.Selection[selector.Mark]) *Table {
	lines := sel.Indices(selector.AxisLine)
	columns := sel.Indices(selector.AxisColumn)

	out := make([]Line, 0, len(t.lines))
	for i, l := range t.lines {
		if len(lines) > 0 && !contains(lines, i) {
			continue
		}
		if len(columns) == 0 {
			out = append(out, slices.Clone(l))
			continue
		}
		kept := make(Line, 0, len(columns))
		for j, c := range l {
			if contains(columns, j) {
				kept = append(kept, c)
			}
		}
		out = append(out, kept)
	}
	return New(out)
}

// Colorize returns a copy with colors applied. Column colors go first, so a
// line color wins where both apply.
func (t *Table) Colorize(sel selector.Selection[selector.Color]) *Table {
	out := make([]Line, len(t.lines))
	for i, l := range t.lines {
		line := slices.Clone(l)
		for j := range line {
			if c, ok := sel.Column(index(j)); ok {
				line[j].Color = c
			}
		}
		if c, ok := sel.Line(index(i)); ok {
			for j := range line {
				line[j].Color = c
			}
		}
		out[i] = line
	}
	return New(out)
}

func contains(sorted []uint, i int) bool {
	_, ok := slices.BinarySearch(sorted, index(i))
	return ok
}

func index(i int) uint {
	v, err := safecast.Conv[uint](i)
	if err != nil {
		panic(fmt.Errorf("negative table index: %w", err))
	}
	return v
}
