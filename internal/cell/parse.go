package cell

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var ErrParse = errors.New("invalid numeric format")

var (
	floatLiteral   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	specialLiteral = regexp.MustCompile(`(?i)^([+-]?)(inf|infinity|nan)$`)
)

// parseInt accepts an optional sign, decimal digits or a 0x/0o/0b prefix.
// Underscores and leading-zero octal are not special.
func parseInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrParse
	}
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}

	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
			s = s[2:]
		case 'b', 'B':
			base = 2
			s = s[2:]
		case 'o', 'O':
			base = 8
			s = s[2:]
		default:
		}
	}
	if s == "" {
		return nil, ErrParse
	}
	for i := range len(s) {
		if !isDigit(s[i], base) {
			return nil, fmt.Errorf("%w: %q", ErrParse, s)
		}
	}

	out, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrParse, s)
	}
	if neg {
		out.Neg(out)
	}
	return out, nil
}

func isDigit(ch byte, base int) bool {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch-'0') < base
	case base == 16 && ch >= 'a' && ch <= 'f':
		return true
	case base == 16 && ch >= 'A' && ch <= 'F':
		return true
	default:
		return false
	}
}

// parseFloat accepts decimal literals with an optional exponent and the
// words inf, infinity and nan. Literals too large for bits become infinite.
func parseFloat(s string, bits int) (float64, error) {
	if m := specialLiteral.FindStringSubmatch(s); m != nil {
		switch {
		case strings.EqualFold(m[2], "nan"):
			return math.NaN(), nil
		case m[1] == "-":
			return math.Inf(-1), nil
		default:
			return math.Inf(1), nil
		}
	}
	if !floatLiteral.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	v, err := strconv.ParseFloat(s, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return v, nil
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// classify picks the precision a parsed float is stored with and returns the
// stored value.
func classify(s string, f64 float64) (float64, Width) {
	f32, err := parseFloat(s, 32)
	if err != nil || formatFloat(f32, 32) != formatFloat(f64, 64) {
		return f64, Wide
	}
	switch {
	case math.IsInf(f64, 0):
		return f64, Wide
	case math.IsNaN(f64):
		return f32, Narrow
	case f64 == 0:
		if hasNonZeroPart(s) {
			return f64, Wide
		}
		return f32, Narrow
	}
	return f32, Narrow
}

// hasNonZeroPart reports whether a literal that evaluated to zero still
// carries a non-zero mantissa or exponent part, as in 1e-400.
func hasNonZeroPart(s string) bool {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == 'e' || r == 'E'
	})
	for _, p := range parts {
		if v, err := parseFloat(p, 64); err == nil && v != 0 {
			return true
		}
	}
	return false
}
