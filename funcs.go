package scicalc

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals, or a constant. The function should
// set r to its result and should not use the value of r otherwise.
type Func interface {
	// Call evaluates the function. The function arguments are passed in
	// invoc, which has a length for which CanCall returned true. The
	// function must set r to its result and should not use the value of r
	// otherwise. Call may modify the elements of invoc.
	Call(ctx *Context, invoc []*big.Float, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// A Func for which CanCall(0) is true is a constant: it is named without
	// an argument list, e.g. "pi". Any other Func must be called with a
	// parenthesized list of arguments.
	CanCall(n int) bool
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, invoc []*big.Float, r *big.Float) (err error) {
	in := invoc[0]
	x := new(big.Float).Copy(in)
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if _, ok := p.(big.ErrNaN); !ok {
			panic(p)
		}
		err = &DomainError{X: x, Arg: 1}
	}()
	r.SetPrec(workprec)
	m.f(r, in)
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with a value of
// type big.ErrNaN.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	r.SetPrec(workprec)
	n.f(r)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

type float64fn struct {
	f func(float64) float64
}

func (m float64fn) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	x, _ := invoc[0].Float64()
	y := m.f(x)
	if math.IsNaN(y) {
		return &DomainError{X: new(big.Float).Copy(invoc[0]), Arg: 1}
	}
	r.SetPrec(workprec).SetFloat64(y)
	return nil
}

func (m float64fn) CanCall(n int) bool {
	return n == 1
}

// Float64 wraps a float64 function of one variable into a Func. The argument
// is rounded to the nearest float64. A NaN result is reported as a domain
// error.
func Float64(f func(float64) float64) Func {
	return float64fn{f}
}

// logarithm is the natural logarithm with an optional base argument, or the
// logarithm to a fixed base if base is non-zero.
type logarithm struct {
	base int64
}

func (l logarithm) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	x := invoc[0]
	if x.Sign() <= 0 {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1}
	}
	r.SetPrec(workprec)
	ln(r, x)
	var b *big.Float
	switch {
	case len(invoc) == 2:
		b = invoc[1]
		if b.Sign() <= 0 {
			return &DomainError{X: new(big.Float).Copy(b), Arg: 2}
		}
	case l.base != 0:
		b = new(big.Float).SetPrec(workprec).SetInt64(l.base)
	default:
		return nil
	}
	if b.Cmp(one) == 0 {
		return &DomainError{X: new(big.Float).Copy(b), Arg: 2, Reason: "division by zero"}
	}
	lb := ln(new(big.Float).SetPrec(workprec), b)
	r.Quo(r, lb)
	return nil
}

func (l logarithm) CanCall(n int) bool {
	if l.base != 0 {
		return n == 1
	}
	return n == 1 || n == 2
}

var one = big.NewFloat(1)

// ln sets z to the natural logarithm of x > 0 and returns z.
func ln(z, x *big.Float) *big.Float {
	if x.IsInf() {
		return z.SetInf(false)
	}
	return bigfloat.Log(z, x)
}

// maxFactorial is the largest argument to factorial. Anything larger is far
// outside the range of results the calculator can display.
const maxFactorial = 10000

type factorial struct{}

func (factorial) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	x := invoc[0]
	if x.Sign() < 0 || !x.IsInt() {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Reason: "factorial only defined for non-negative integers"}
	}
	n, _ := x.Int64()
	if n > maxFactorial {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Reason: "factorial argument too large"}
	}
	var p big.Int
	p.MulRange(1, n)
	r.SetPrec(workprec).SetInt(&p)
	return nil
}

func (factorial) CanCall(n int) bool {
	return n == 1
}

type power struct{}

func (power) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	r.SetPrec(workprec)
	return pow(r, invoc[0], invoc[1])
}

func (power) CanCall(n int) bool {
	return n == 2
}

// pow sets z to x**y. A negative base requires an integer exponent, and zero
// cannot be raised to a negative power.
func pow(z, x, y *big.Float) error {
	switch {
	case y.Sign() == 0:
		z.SetInt64(1)
		return nil
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Reason: "zero to a negative power"}
		}
		z.SetInt64(0)
		return nil
	case y.IsInt():
		return powint(z, x, y)
	case x.Sign() < 0:
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1}
	case x.IsInf() || y.IsInf():
		return pow64(z, x, y)
	}
	bigfloat.Pow(z, x, y)
	return nil
}

// powint sets z to x**y where y is an integer, by repeated squaring if y fits
// in an int64.
func powint(z, x, y *big.Float) error {
	n, acc := y.Int64()
	if acc != big.Exact {
		return pow64(z, x, y)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	b := new(big.Float).SetPrec(workprec).Set(x)
	t := new(big.Float).SetPrec(workprec).SetInt64(1)
	for n > 0 {
		if n&1 != 0 {
			t.Mul(t, b)
		}
		n >>= 1
		if n > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		t.Quo(new(big.Float).SetPrec(workprec).SetInt64(1), t)
	}
	z.Set(t)
	return nil
}

// pow64 sets z to x**y computed in float64, for operands which are infinite
// or exponents too large to square by.
func pow64(z, x, y *big.Float) error {
	a, _ := x.Float64()
	b, _ := y.Float64()
	f := math.Pow(a, b)
	if math.IsNaN(f) {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1}
	}
	z.SetFloat64(f)
	return nil
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain, or when a result is out of range. It unwraps
// to ErrDomain.
type DomainError struct {
	// X is the out-of-domain argument, if there is one.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
	// Reason describes the error if it is more specific than an argument
	// outside the domain.
	Reason string
}

func (err *DomainError) Error() string {
	var b strings.Builder
	switch {
	case err.Reason != "":
		if err.Func != "" {
			b.WriteString(err.Func + ": ")
		}
		b.WriteString(err.Reason)
	case err.X != nil:
		b.WriteString(err.X.Text('g', 10) + " outside domain")
		if err.Func != "" {
			b.WriteString(" of " + err.Func)
		}
	default:
		b.WriteString("math domain error")
		if err.Func != "" {
			b.WriteString(" in " + err.Func)
		}
	}
	if err.Arg > 0 {
		b.WriteString(" (argument " + strconv.Itoa(err.Arg) + ")")
	}
	return b.String()
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}
