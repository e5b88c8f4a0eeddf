package cell

import (
	"math"
	"math/big"
	"strconv"
)

// Kind is the fixed tag of a cell value.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	}
	return "unknown"
}

// Width is the precision a float is stored with.
type Width uint8

const (
	Narrow Width = iota // single precision
	Wide                // double precision
)

func (w Width) String() string {
	if w == Wide {
		return "wide"
	}
	return "narrow"
}

// Value is an immutable typed cell value.
type Value struct {
	kind  Kind
	text  string
	int   *big.Int
	float float64
	width Width
}

// FromText wraps s as a string value.
func FromText(s string) Value {
	return Value{kind: KindString, text: s}
}

// Kind reports which of string, integer or float v holds.
func (v Value) Kind() Kind { return v.kind }

// Text returns the raw text of a string value.
func (v Value) Text() string { return v.text }

// Int returns a copy of the integer, or nil for non-integers.
func (v Value) Int() *big.Int {
	if v.kind != KindInt {
		return nil
	}
	return new(big.Int).Set(v.int)
}

// Float returns the stored float and its width.
func (v Value) Float() (float64, Width) {
	return v.float, v.width
}

// Float64 returns the numeric value as rendered: narrow floats are widened
// from their shortest decimal form and integers are rounded. Strings give NaN.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindInt:
		f, _ := new(big.Float).SetInt(v.int).Float64()
		return f
	case KindFloat:
		if v.width == Wide || math.IsNaN(v.float) || math.IsInf(v.float, 0) {
			return v.float
		}
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return v.float
		}
		return f
	}
	return math.NaN()
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return v.int.String()
	case KindFloat:
		if v.width == Narrow {
			return formatFloat(v.float, 32)
		}
		return formatFloat(v.float, 64)
	}
	return v.text
}

// Debug renders the value with its kind, e.g. "123<int>".
func (v Value) Debug() string {
	return v.String() + "<" + v.kind.String() + ">"
}

// Equal reports whether both values have the same kind and rendering.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.int.Cmp(o.int) == 0
	case KindFloat:
		return v.width == o.width && v.String() == o.String()
	}
	return v.text == o.text
}
