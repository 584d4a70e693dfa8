package scicalc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// roundDigits is the number of decimal places results are rounded to.
const roundDigits = 12

// Number is the result of evaluating calculator input. The zero value is 0.
type Number struct {
	f        float64
	integral bool
}

// FromFloat64 rounds f to 12 decimal places and wraps it. f must be finite.
func FromFloat64(f float64) Number {
	if f != 0 && math.Abs(f) < 1e15 {
		// Larger values have no digits that far below the point.
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'f', roundDigits, 64), 64)
	}
	if f == 0 {
		// Also normalizes -0.
		f = 0
	}
	return Number{f: f, integral: f == math.Trunc(f)}
}

// numberOf converts an evaluation result to a rounded Number. Results which do
// not fit in a float64 are a DomainError.
func numberOf(x *big.Float) (Number, error) {
	f, _ := x.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, &DomainError{Reason: "result out of range"}
	}
	return FromFloat64(f), nil
}

// Float64 returns the rounded value.
func (n Number) Float64() float64 {
	return n.f
}

// IsInt returns whether the rounded value is an integer.
func (n Number) IsInt() bool {
	return n.integral
}

// Int returns the value as an integer, or nil if it is not integral.
func (n Number) Int() *big.Int {
	if !n.integral {
		return nil
	}
	r, _ := big.NewFloat(n.f).Int(nil)
	return r
}

// String formats n the way the calculator displays it. Integers are written
// out in full. Other values use the shortest text that reads back to the same
// float64, positional when the decimal exponent is in [-4, 16) and scientific
// otherwise.
func (n Number) String() string {
	if n.integral {
		return n.Int().String()
	}
	s := strconv.FormatFloat(n.f, 'e', -1, 64)
	k := strings.LastIndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[k+1:])
	if exp < -4 || exp >= 16 {
		// Go writes at least two exponent digits, as does the display.
		return s
	}
	return strconv.FormatFloat(n.f, 'f', -1, 64)
}
