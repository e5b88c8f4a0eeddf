package selector

import (
	"regexp"
)

// Category is the shape a token was classified as.
type Category uint8

const (
	CatRange Category = iota
	CatSingle
	CatLeftBad
	CatRightBad
	CatBothBad
	CatSingleBad
	CatAttrMissing
	CatAxisMissing
	// CatUnclassified means no shape matched: the token has more than one error.
	CatUnclassified
)

func (c Category) String() string {
	switch c {
	case CatRange:
		return "range"
	case CatSingle:
		return "single"
	case CatLeftBad:
		return "bad left bound"
	case CatRightBad:
		return "bad right bound"
	case CatBothBad:
		return "bad bounds"
	case CatSingleBad:
		return "bad number"
	case CatAttrMissing:
		return "attribute missing"
	case CatAxisMissing:
		return "axis missing"
	case CatUnclassified:
		return "unclassified"
	}
	return "unknown"
}

// WellFormed reports whether the token can be extracted.
func (c Category) WellFormed() bool {
	return c == CatRange || c == CatSingle
}

type shape struct {
	cat Category
	re  *regexp.Regexp
}

// Grammar is one vocabulary of the selector language.
type Grammar struct {
	attrKeyword string
	trim        bool
	sharedAxis  bool
	shapes      []shape
}

// newGrammar builds a grammar. attrKeyword names the attribute letter in
// diagnostics; grammars without one use "".
func newGrammar(attrKeyword string, trim, sharedAxis bool, shapes ...shape) *Grammar {
	return &Grammar{attrKeyword: attrKeyword, trim: trim, sharedAxis: sharedAxis, shapes: shapes}
}

func mustShape(cat Category, pattern string) shape {
	return shape{cat: cat, re: regexp.MustCompile(`(?i)^` + pattern + `$`)}
}

// Shapes are listed from well-formed to most permissive; order is the tie-break.
var (
	forceGrammar = newGrammar("type", false, true,
		mustShape(CatRange, `(?P<start>\d+)-(?P<end>\d+)(?P<axis>[lc])(?P<attr>[sif])`),
		mustShape(CatSingle, `(?P<start>\d+)(?P<axis>[lc])(?P<attr>[sif])`),
		mustShape(CatLeftBad, `[^-]*-\d+[lc][sif]`),
		mustShape(CatRightBad, `\d+-[^-]*[lc][sif]`),
		mustShape(CatBothBad, `[^-]*-[^-]*[lc][sif]`),
		mustShape(CatSingleBad, `[^-]*[lc][sif]`),
		mustShape(CatAttrMissing, `\d+(-\d+)?[lc][^sif]?`),
		mustShape(CatAxisMissing, `\d+(-\d+)?[^lc]?[sif]`),
	)

	subtableGrammar = newGrammar("", true, false,
		mustShape(CatRange, `(?P<start>\d+)-(?P<end>\d+)(?P<axis>[lc])`),
		mustShape(CatSingle, `(?P<start>\d+)(?P<axis>[lc])`),
		mustShape(CatLeftBad, `[^-]*-\d+[lc]`),
		mustShape(CatRightBad, `\d+-[^-]*[lc]`),
		mustShape(CatBothBad, `[^-]*-[^-]*[lc]`),
		mustShape(CatSingleBad, `[^-]*[lc]`),
		mustShape(CatAxisMissing, `\d+(-\d+)?[^lc]?`),
	)

	colorGrammar = newGrammar("color", true, false,
		mustShape(CatRange, `(?P<start>\d+)-(?P<end>\d+)(?P<attr>[rgbyxw])(?P<axis>[lc])`),
		mustShape(CatSingle, `(?P<start>\d+)(?P<attr>[rgbyxw])(?P<axis>[lc])`),
		mustShape(CatLeftBad, `[^-]*-\d+[rgbyxw][lc]`),
		mustShape(CatRightBad, `\d+-[^-]*[rgbyxw][lc]`),
		mustShape(CatBothBad, `[^-]*-[^-]*[rgbyxw][lc]`),
		mustShape(CatSingleBad, `[^-]*[rgbyxw][lc]`),
		mustShape(CatAttrMissing, `\d+(-\d+)?[^rgbyxw]?[lc]`),
		mustShape(CatAxisMissing, `\d+(-\d+)?[rgbyxw][^lc]?`),
	)
)

// Classify returns the first shape that matches tok, or CatUnclassified.
func (g *Grammar) Classify(tok string) Category {
	cat, _ := g.classify(tok)
	return cat
}

func (g *Grammar) classify(tok string) (Category, *shape) {
	for i := range g.shapes {
		if g.shapes[i].re.MatchString(tok) {
			return g.shapes[i].cat, &g.shapes[i]
		}
	}
	return CatUnclassified, nil
}
