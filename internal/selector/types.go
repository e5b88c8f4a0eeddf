package selector

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Axis says whether a token addresses lines or columns.
type Axis uint8

const (
	AxisLine Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	switch a {
	case AxisLine:
		return "line"
	case AxisColumn:
		return "column"
	}
	return "unknown"
}

// Letter is the selector letter of the axis.
func (a Axis) Letter() byte {
	if a == AxisColumn {
		return 'c'
	}
	return 'l'
}

func axisFromLetter(b byte) (Axis, bool) {
	switch lower(b) {
	case 'l':
		return AxisLine, true
	case 'c':
		return AxisColumn, true
	}
	return 0, false
}

// ForceType is the type a line or column is forced to.
type ForceType uint8

const (
	ForceString ForceType = iota
	ForceInt
	ForceFloat
)

func (t ForceType) String() string {
	switch t {
	case ForceString:
		return "String"
	case ForceInt:
		return "Integer"
	case ForceFloat:
		return "Float"
	}
	return "Unknown"
}

// Letter is the selector letter of the force type.
func (t ForceType) Letter() byte {
	return "sif"[t%3]
}

// ForceTypeFromLetter decodes s, i or f in any case.
func ForceTypeFromLetter(b byte) (ForceType, bool) {
	switch lower(b) {
	case 's':
		return ForceString, true
	case 'i':
		return ForceInt, true
	case 'f':
		return ForceFloat, true
	}
	return 0, false
}

// Color is an output color. Black is the default and means "no color".
type Color uint8

const (
	Black Color = iota
	Red
	Green
	Blue
	Yellow
	Grey
	White
)

var colorNames = [...]string{"Black", "Red", "Green", "Blue", "Yellow", "Grey", "White"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "Unknown"
}

// Letter is the selector letter of the color; Black has none and returns 0.
func (c Color) Letter() byte {
	const letters = "\x00rgbyxw"
	if int(c) < len(letters) {
		return letters[c]
	}
	return 0
}

// ColorFromLetter decodes r, g, b, y, x (grey) or w in any case.
func ColorFromLetter(b byte) (Color, bool) {
	switch lower(b) {
	case 'r':
		return Red, true
	case 'g':
		return Green, true
	case 'b':
		return Blue, true
	case 'y':
		return Yellow, true
	case 'x':
		return Grey, true
	case 'w':
		return White, true
	}
	return Black, false
}

// ParseColorName accepts a color letter or a full color name.
func ParseColorName(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return ColorFromLetter(s[0])
	}
	for i, name := range colorNames {
		if strings.EqualFold(s, name) || (Color(i) == Grey && strings.EqualFold(s, "gray")) {
			return Color(i), true
		}
	}
	return Black, false
}

// Pair binds one index to an attribute.
type Pair[A comparable] struct {
	Index uint
	Attr  A
}

func (p Pair[A]) String() string {
	return fmt.Sprintf("%d:%v", p.Index, p.Attr)
}

// Selection holds the pairs addressed on each axis, sorted by index with unique indices.
type Selection[A comparable] struct {
	Lines   []Pair[A]
	Columns []Pair[A]
}

func (s Selection[A]) Empty() bool {
	return len(s.Lines) == 0 && len(s.Columns) == 0
}

// On returns the pairs of one axis.
func (s Selection[A]) On(axis Axis) []Pair[A] {
	if axis == AxisColumn {
		return s.Columns
	}
	return s.Lines
}

// Line looks up the attribute bound to a line index.
func (s Selection[A]) Line(idx uint) (A, bool) {
	return lookup(s.Lines, idx)
}

// Column looks up the attribute bound to a column index.
func (s Selection[A]) Column(idx uint) (A, bool) {
	return lookup(s.Columns, idx)
}

// Indices returns the bare indices of one axis.
func (s Selection[A]) Indices(axis Axis) []uint {
	pairs := s.On(axis)
	out := make([]uint, len(pairs))
	for i, p := range pairs {
		out[i] = p.Index
	}
	return out
}

// Mark is the attribute of subtable selections, which carry none.
type Mark struct{}

func (Mark) String() string { return "selected" }

// ForceSelection is a force-parse result: one axis for the whole expression.
type ForceSelection struct {
	Axis  Axis
	Pairs []Pair[ForceType]
}

func (f ForceSelection) Empty() bool { return len(f.Pairs) == 0 }

// Lookup returns the forced type for an index on the selection's axis.
func (f ForceSelection) Lookup(idx uint) (ForceType, bool) {
	return lookup(f.Pairs, idx)
}

func lookup[A comparable](pairs []Pair[A], idx uint) (A, bool) {
	i, ok := slices.BinarySearchFunc(pairs, idx, func(p Pair[A], target uint) int {
		return cmp.Compare(p.Index, target)
	})
	if !ok {
		var zero A
		return zero, false
	}
	return pairs[i].Attr, true
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
