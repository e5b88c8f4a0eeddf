package cell

import (
	"errors"
	"fmt"
)

var (
	ErrNotInteger = errors.New("can't be parsed as an integer")
	ErrNotFloat   = errors.New("can't be parsed as a float")
)

// Infer classifies s as an integer, a float or a string. Integers win over
// floats; floats take the narrowest width that renders identically.
func Infer(s string) Value {
	if i, err := parseInt(s); err == nil {
		return Value{kind: KindInt, int: i}
	}
	f, err := parseFloat(s, 64)
	if err != nil {
		return FromText(s)
	}
	return floatValue(s, f)
}

func floatValue(s string, f64 float64) Value {
	f, w := classify(s, f64)
	return Value{kind: KindFloat, float: f, width: w}
}

// ForceString always yields a string value.
func ForceString(s string) Value {
	return FromText(s)
}

// ParseInt is the strict integer conversion.
func ParseInt(s string) (Value, error) {
	i, err := parseInt(s)
	if err != nil {
		return Value{}, fmt.Errorf("%q %w", s, ErrNotInteger)
	}
	return Value{kind: KindInt, int: i}, nil
}

// ParseFloat is the strict float conversion.
func ParseFloat(s string) (Value, error) {
	f, err := parseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%q %w", s, ErrNotFloat)
	}
	return floatValue(s, f), nil
}

// ForceInt converts s to an integer, falling back to Infer.
func ForceInt(s string) Value {
	if v, err := ParseInt(s); err == nil {
		return v
	}
	return Infer(s)
}

// ForceFloat converts s to a float, falling back to Infer.
func ForceFloat(s string) Value {
	if v, err := ParseFloat(s); err == nil {
		return v
	}
	return Infer(s)
}
