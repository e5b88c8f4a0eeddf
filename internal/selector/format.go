package selector

import (
	"strconv"
	"strings"
)

// Run is a run of consecutive indices sharing one attribute.
type Run[A comparable] struct {
	Start uint
	End   uint
	Attr  A
}

// Runs folds sorted pairs into maximal runs of consecutive indices.
func Runs[A comparable](pairs []Pair[A]) []Run[A] {
	var out []Run[A]
	for _, p := range pairs {
		if n := len(out); n > 0 && out[n-1].Attr == p.Attr && out[n-1].End+1 == p.Index {
			out[n-1].End = p.Index
			continue
		}
		out = append(out, Run[A]{Start: p.Index, End: p.Index, Attr: p.Attr})
	}
	return out
}

func writeBounds(b *strings.Builder, start, end uint) {
	b.WriteString(strconv.FormatUint(uint64(start), 10))
	if end != start {
		b.WriteByte('-')
		b.WriteString(strconv.FormatUint(uint64(end), 10))
	}
}

// String renders the selection back into a canonical force-parse expression.
func (f ForceSelection) String() string {
	var b strings.Builder
	for i, r := range Runs(f.Pairs) {
		if i > 0 {
			b.WriteByte(',')
		}
		writeBounds(&b, r.Start, r.End)
		b.WriteByte(f.Axis.Letter())
		b.WriteByte(r.Attr.Letter())
	}
	return b.String()
}

// FormatSubtable renders a subtable selection as an expression, lines first.
func FormatSubtable(s Selection[Mark]) string {
	var parts []string
	for _, axis := range []Axis{AxisLine, AxisColumn} {
		for _, r := range Runs(s.On(axis)) {
			var b strings.Builder
			writeBounds(&b, r.Start, r.End)
			b.WriteByte(axis.Letter())
			parts = append(parts, b.String())
		}
	}
	return strings.Join(parts, ",")
}

// FormatColor renders a color selection as an expression, lines first.
// Black pairs have no letter and are skipped.
func FormatColor(s Selection[Color]) string {
	var parts []string
	for _, axis := range []Axis{AxisLine, AxisColumn} {
		for _, r := range Runs(s.On(axis)) {
			if r.Attr == Black {
				continue
			}
			var b strings.Builder
			writeBounds(&b, r.Start, r.End)
			b.WriteByte(r.Attr.Letter())
			b.WriteByte(axis.Letter())
			parts = append(parts, b.String())
		}
	}
	return strings.Join(parts, ",")
}
