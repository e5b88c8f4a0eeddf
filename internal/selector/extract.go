package selector

import (
	"errors"
	"fmt"
	"strconv"

	"fortio.org/safecast"
)

var (
	// ErrNotWellFormed is returned by Extract for tokens outside CatRange and CatSingle.
	ErrNotWellFormed = errors.New("token is not well-formed")
	// ErrIndexOverflow is returned when a bound does not fit an index.
	ErrIndexOverflow = errors.New("index out of range")
)

// Bounds is the content of a well-formed token. Start may exceed End.
type Bounds struct {
	Start uint
	End   uint
	Axis  Axis
	Attr  byte // lower-case attribute letter, 0 when the grammar has none
}

func (b Bounds) Min() uint { return min(b.Start, b.End) }
func (b Bounds) Max() uint { return max(b.Start, b.End) }

// Extract decodes the bounds, axis and attribute letter of a well-formed token.
func (g *Grammar) Extract(tok string) (Bounds, error) {
	cat, sh := g.classify(tok)
	if !cat.WellFormed() {
		return Bounds{}, fmt.Errorf("%w: %q is %s", ErrNotWellFormed, tok, cat)
	}
	m := sh.re.FindStringSubmatch(tok)
	group := func(name string) string {
		if i := sh.re.SubexpIndex(name); i >= 0 {
			return m[i]
		}
		return ""
	}

	var b Bounds
	var err error
	if b.Start, err = parseIndex(group("start")); err != nil {
		return Bounds{}, err
	}
	b.End = b.Start
	if cat == CatRange {
		if b.End, err = parseIndex(group("end")); err != nil {
			return Bounds{}, err
		}
	}
	axis := group("axis")
	b.Axis, _ = axisFromLetter(axis[0])
	if attr := group("attr"); attr != "" {
		b.Attr = lower(attr[0])
	}
	return b, nil
}

func parseIndex(digits string) (uint, error) {
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrIndexOverflow, digits)
	}
	idx, err := safecast.Conv[uint](v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrIndexOverflow, digits)
	}
	return idx, nil
}
