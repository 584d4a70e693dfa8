package scicalc

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Mode selects the angle unit of trig functions.
type Mode int8

const (
	// Degrees makes sin, cos, and tan take degrees and asin, acos, and atan
	// return degrees.
	Degrees Mode = iota
	// Radians makes trig functions take and return radians.
	Radians
)

func (m Mode) String() string {
	switch m {
	case Degrees:
		return "DEG"
	case Radians:
		return "RAD"
	default:
		return fmt.Sprintf("Mode(%d)", int8(m))
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Degrees {
		return Radians
	}
	return Degrees
}

// ParseMode parses a mode name: deg, degree, degrees, rad, radian, or
// radians, in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "rad", "radian", "radians":
		return Radians, nil
	default:
		return Degrees, fmt.Errorf("unknown trig mode %q", s)
	}
}

// Namespace maps identifiers to the functions and constants they name.
type Namespace map[string]Func

// NewNamespace builds the calculator's function namespace with trig functions
// for the given mode. The result always has exactly the same identifiers:
//
//	sin cos tan asin acos atan
//	sqrt log ln log10 exp pow abs factorial fact
//	pi e
//
// log and ln are the natural logarithm, optionally with a base as a second
// argument. fact is factorial.
func NewNamespace(mode Mode) Namespace {
	natlog := logarithm{}
	fact := factorial{}
	return Namespace{
		"sin":  trig(math.Sin, mode),
		"cos":  trig(math.Cos, mode),
		"tan":  trig(math.Tan, mode),
		"asin": arctrig(math.Asin, mode),
		"acos": arctrig(math.Acos, mode),
		"atan": arctrig(math.Atan, mode),

		"sqrt":      Monadic((*big.Float).Sqrt),
		"log":       natlog,
		"ln":        natlog,
		"log10":     logarithm{base: 10},
		"exp":       Monadic(exp),
		"pow":       power{},
		"abs":       Monadic((*big.Float).Abs),
		"factorial": fact,
		"fact":      fact,

		// constants
		"pi": Niladic(bigfloat.Pi),
		"e": Niladic(func(out *big.Float) *big.Float {
			return bigfloat.Exp(out, one)
		}),
	}
}

// Names returns the identifiers in ns, sorted.
func (ns Namespace) Names() []string {
	r := make([]string, 0, len(ns))
	for k := range ns {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// trig wraps a trig function to take its argument in the mode's unit.
func trig(f func(float64) float64, mode Mode) Func {
	if mode == Degrees {
		return Float64(func(x float64) float64 { return f(x * degToRad) })
	}
	return Float64(f)
}

// arctrig wraps an inverse trig function to give its result in the mode's
// unit.
func arctrig(f func(float64) float64, mode Mode) Func {
	if mode == Degrees {
		return Float64(func(x float64) float64 { return f(x) * radToDeg })
	}
	return Float64(f)
}

// expLimit bounds arguments to exp beyond which the result is taken to be
// infinite or zero instead of computed.
const expLimit = 1e9

func exp(out, in *big.Float) *big.Float {
	x, _ := in.Float64()
	switch {
	case x > expLimit:
		return out.SetInf(false)
	case x < -expLimit:
		return out.SetInt64(0)
	}
	return bigfloat.Exp(out, in)
}
