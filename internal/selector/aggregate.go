package selector

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"str2table/internal/diag"
	"str2table/internal/source"
)

// maxExpand caps the number of indices one expression may expand to,
// duplicates included.
const maxExpand = 1_000_000

// Token is one comma separated unit of an expression.
type Token struct {
	Text string
	Span source.Span
}

// Tokens splits expr on commas. With trim set, surrounding whitespace is cut
// and the span shrinks to the remaining text.
func Tokens(expr string, trim bool) []Token {
	parts := strings.Split(expr, ",")
	out := make([]Token, 0, len(parts))
	off := 0
	for _, part := range parts {
		start, end := off, off+len(part)
		text := part
		if trim {
			left := strings.TrimLeft(part, " \t\r\n")
			start += len(part) - len(left)
			text = strings.TrimRight(left, " \t\r\n")
			end = start + len(text)
		}
		out = append(out, Token{Text: text, Span: source.SpanOf(start, end)})
		off += len(part) + 1
	}
	return out
}

type entry[A comparable] struct {
	pair Pair[A]
	span source.Span
}

type collector[A comparable] struct {
	g        *Grammar
	expr     string
	decode   func(byte) (A, bool)
	axis     Axis
	bound    bool
	expanded uint // pairs taken so far
	lines    []entry[A]
	columns  []entry[A]
}

func parse[A comparable](g *Grammar, expr string, decode func(byte) (A, bool)) (*collector[A], error) {
	r := &collector[A]{g: g, expr: expr, decode: decode}
	for _, tok := range Tokens(expr, g.trim) {
		if err := r.token(tok); err != nil {
			return nil, err
		}
	}
	if !r.bound {
		return nil, diag.NewKeywordMissing("line or column", expr, source.Whole(expr))
	}
	return r, nil
}

func (r *collector[A]) token(tok Token) error {
	cat := r.g.Classify(tok.Text)
	if !cat.WellFormed() {
		return r.malformed(cat, tok)
	}
	b, err := r.g.Extract(tok.Text)
	if err != nil {
		return diag.NewRangeError(diag.RangeOutOfRange, r.expr, tok.Span)
	}
	if n := b.Max() - b.Min(); n >= maxExpand || r.expanded+n+1 > maxExpand {
		return diag.NewRangeError(diag.RangeOutOfRange, r.expr, tok.Span)
	}

	if r.g.sharedAxis && r.bound && b.Axis != r.axis {
		d := diag.NewConflicts(r.expr, tok.Span, r.axis.String(), b.Axis.String()).
			WithHint("Force-parse can't use both axes in one expression, please use either line or column.")
		return &d
	}
	if !r.bound {
		r.axis, r.bound = b.Axis, true
	}

	attr, ok := r.decode(b.Attr)
	if !ok {
		return diag.NewKeywordMissing(r.g.attrKeyword, r.expr, tok.Span)
	}
	r.expanded += b.Max() - b.Min() + 1
	bucket := &r.lines
	if b.Axis == AxisColumn {
		bucket = &r.columns
	}
	for i := b.Min(); ; i++ {
		*bucket = append(*bucket, entry[A]{pair: Pair[A]{Index: i, Attr: attr}, span: tok.Span})
		if i == b.Max() {
			break
		}
	}
	return nil
}

func (r *collector[A]) malformed(cat Category, tok Token) error {
	switch cat {
	case CatLeftBad:
		return diag.NewRangeError(diag.RangeLeftSide, r.expr, tok.Span)
	case CatRightBad:
		return diag.NewRangeError(diag.RangeRightSide, r.expr, tok.Span)
	case CatBothBad:
		return diag.NewRangeError(diag.RangeBothSides, r.expr, tok.Span)
	case CatSingleBad:
		return diag.NewRangeError(diag.RangeSingleNumber, r.expr, tok.Span)
	case CatAttrMissing:
		return diag.NewKeywordMissing(r.g.attrKeyword, r.expr, tok.Span)
	case CatAxisMissing:
		return diag.NewKeywordMissing("line or column", r.expr, tok.Span)
	default:
		return diag.NewArgError(diag.ArgWrongFormat, r.expr, tok.Span, "has more than one error in it.")
	}
}

// settle sorts, drops exact duplicates and rejects an index bound to two attributes.
func settle[A comparable](expr string, axis Axis, es []entry[A]) ([]Pair[A], error) {
	slices.SortStableFunc(es, func(a, b entry[A]) int {
		return cmp.Compare(a.pair.Index, b.pair.Index)
	})
	es = slices.CompactFunc(es, func(a, b entry[A]) bool {
		return a.pair == b.pair
	})
	for i := 1; i < len(es); i++ {
		prev, cur := es[i-1].pair, es[i].pair
		if prev.Index == cur.Index {
			return nil, diag.NewConflicts(expr, es[i].span, describe(axis, prev), describe(axis, cur))
		}
	}
	if len(es) == 0 {
		return nil, nil
	}
	out := make([]Pair[A], len(es))
	for i, e := range es {
		out[i] = e.pair
	}
	return out, nil
}

func describe[A comparable](axis Axis, p Pair[A]) string {
	return fmt.Sprintf("%s %d: %v", axis, p.Index, p.Attr)
}

func (r *collector[A]) selection() (Selection[A], error) {
	lines, err := settle(r.expr, AxisLine, r.lines)
	if err != nil {
		return Selection[A]{}, err
	}
	columns, err := settle(r.expr, AxisColumn, r.columns)
	if err != nil {
		return Selection[A]{}, err
	}
	return Selection[A]{Lines: lines, Columns: columns}, nil
}

// ParseForce parses a force-parse expression such as "1-2li,4lf". All tokens
// must name the same axis.
func ParseForce(expr string) (ForceSelection, error) {
	r, err := parse(forceGrammar, expr, ForceTypeFromLetter)
	if err != nil {
		return ForceSelection{}, err
	}
	sel, err := r.selection()
	if err != nil {
		return ForceSelection{}, err
	}
	return ForceSelection{Axis: r.axis, Pairs: sel.On(r.axis)}, nil
}

// ParseSubtable parses a subtable expression such as "1-3l,2-4c,5l".
func ParseSubtable(expr string) (Selection[Mark], error) {
	r, err := parse(subtableGrammar, expr, func(byte) (Mark, bool) { return Mark{}, true })
	if err != nil {
		return Selection[Mark]{}, err
	}
	return r.selection()
}

// ParseColor parses a color expression such as "1rl,3gl,5bl,2-4yc".
func ParseColor(expr string) (Selection[Color], error) {
	r, err := parse(colorGrammar, expr, ColorFromLetter)
	if err != nil {
		return Selection[Color]{}, err
	}
	return r.selection()
}
