package scicalc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// workprec is the precision in bits of every value during evaluation.
const workprec = 64

// Context is a context for evaluating expressions. It owns the trig mode and
// the function namespace built for that mode. It is not safe to use a Context
// concurrently.
type Context struct {
	stack []*big.Float
	ns    Namespace
	mode  Mode
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type modeopt Mode

func (modeopt) ctxOption() {}

// TrigMode sets the trig mode of the context.
func TrigMode(m Mode) ContextOption {
	return modeopt(m)
}

// NewContext creates a new evaluation context. If no mode is given, the
// default is Degrees.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{mode: Degrees}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		ns:    ctx.ns,
		mode:  ctx.mode,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case modeopt:
			n.mode = Mode(opt)
		default:
			panic("scicalc: unknown option type")
		}
	}
	// Namespaces are never modified after they are built, so they can be
	// shared between contexts with the same mode.
	if n.ns == nil || n.mode != ctx.mode {
		n.ns = NewNamespace(n.mode)
	}
	return &n
}

// Mode returns the context's trig mode.
func (ctx *Context) Mode() Mode {
	return ctx.mode
}

// SetMode sets the trig mode and rebuilds the namespace for it. The new
// namespace is complete before it replaces the old one. Returns ctx for
// chaining. Calling SetMode while the context is evaluating an expression
// panics.
func (ctx *Context) SetMode(m Mode) *Context {
	if len(ctx.stack) > 1 {
		panic("scicalc: SetMode on in-use context")
	}
	ns := NewNamespace(m)
	ctx.ns, ctx.mode = ns, m
	return ctx
}

// ToggleMode switches between Degrees and Radians and returns the new mode.
func (ctx *Context) ToggleMode() Mode {
	ctx.SetMode(ctx.mode.Toggle())
	return ctx.mode
}

// Names returns the identifiers available to expressions, sorted.
func (ctx *Context) Names() []string {
	return ctx.ns.Names()
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. an unknown identifier or an argument to a function is outside the
// function's domain, then the result is nil and ctx.Err returns the error.
// The result is not rounded; see Evaluate.
func (ctx *Context) Eval(e *Expr) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		// Don't reuse the previous result, since the caller may hold it.
		ctx.stack[0] = new(big.Float).SetPrec(workprec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("scicalc: Eval during Eval")
	}
	err := ctx.evalRoot(e.n)
	ctx.err = err
	if err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// evalRoot evaluates a tree, converting arithmetic that produces NaN into a
// DomainError.
func (ctx *Context) evalRoot(n *node) (err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		nan, ok := p.(big.ErrNaN)
		if !ok {
			panic(p)
		}
		err = &DomainError{Reason: nan.Error()}
	}()
	return n.eval(ctx)
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("scicalc: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("scicalc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error from the last expression evaluated with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Evaluate normalizes, parses, and evaluates calculator input and rounds the
// result.
func (ctx *Context) Evaluate(src string) (Number, error) {
	canon, err := Normalize(src)
	if err != nil {
		return Number{}, err
	}
	e, err := Parse(strings.NewReader(canon))
	if err != nil {
		return Number{}, err
	}
	r := ctx.Eval(e)
	if r == nil {
		return Number{}, ctx.err
	}
	return numberOf(r)
}

// Evaluate is a shortcut to evaluate calculator input with a new context.
func Evaluate(src string, opts ...ContextOption) (Number, error) {
	return NewContext(opts...).Evaluate(src)
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(workprec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(workprec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num parses number text.
func num(z *big.Float, s string) *big.Float {
	_, _, err := z.SetPrec(workprec).Parse(s, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// The exponent didn't fit, so the value is either infinite or, for a
		// negative exponent or zero mantissa, zero.
		mant, ex, _ := strings.Cut(strings.ToLower(s), "e")
		if strings.HasPrefix(ex, "-") || strings.Trim(mant, "0._") == "" {
			z.SetInt64(0)
		} else {
			z.SetInf(false)
		}
	default:
		panic("scicalc: invalid number: " + s + " (" + err.Error() + ")")
	}
	return z
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		num(ctx.push(), n.name)
	case nodeName:
		f := ctx.ns[n.name]
		if f == nil {
			return &NameError{Name: n.name, Col: n.pos}
		}
		if !f.CanCall(0) {
			return &CallError{Col: n.pos, Func: n.name, Bare: true}
		}
		if err := f.Call(ctx, nil, ctx.push()); err != nil {
			return err
		}
	case nodeCall:
		f := ctx.ns[n.name]
		if f == nil {
			return &NameError{Name: n.name, Col: n.pos}
		}
		// Constants are named, not called.
		if k := n.args(); k == 0 || !f.CanCall(k) {
			return &CallError{Col: n.pos, Func: n.name, Len: k}
		}
		r := ctx.push()
		k := len(ctx.stack)
		for l := n.right; l != nil; l = l.right {
			if err := l.left.eval(ctx); err != nil {
				return err
			}
		}
		invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
		if err := f.Call(ctx, invoc, r); err != nil {
			var de *DomainError
			if errors.As(err, &de) && de.Func == "" {
				de.Func = n.name
			}
			return err
		}
		ctx.stack = ctx.stack[:k]
	case nodeArg:
		panic("scicalc: eval on nodeArg")
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeNop:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
	default:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		return binary(n.kind, l, r)
	}
	return nil
}

// binary sets l to the result of the binary operator op applied to l and r.
func binary(op nodeKind, l, r *big.Float) error {
	switch op {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		if r.Sign() == 0 {
			return &DomainError{Func: "/", Reason: "division by zero"}
		}
		l.Quo(l, r)
	case nodeFloorDiv, nodeMod:
		if r.Sign() == 0 {
			return &DomainError{Func: strings.TrimSpace(binopText[op]), Reason: "division by zero"}
		}
		a, _ := l.Float64()
		b, _ := r.Float64()
		q, m := floordivmod(a, b)
		if op == nodeMod {
			q = m
		}
		if math.IsNaN(q) {
			return &DomainError{X: new(big.Float).Copy(l), Arg: 1, Func: strings.TrimSpace(binopText[op])}
		}
		l.SetFloat64(q)
	case nodePow:
		if err := pow(l, l, r); err != nil {
			var de *DomainError
			if errors.As(err, &de) {
				de.Func = "**"
			}
			return err
		}
	default:
		panic("scicalc: invalid AST node " + op.String())
	}
	return nil
}

// floordivmod computes the floored quotient and the modulus of a and b, with
// the modulus taking the sign of b.
func floordivmod(a, b float64) (q, m float64) {
	m = math.Mod(a, b)
	d := (a - m) / b
	if m != 0 {
		if (b < 0) != (m < 0) {
			m += b
			d--
		}
	} else {
		m = math.Copysign(0, b)
	}
	if d == 0 {
		return math.Copysign(0, a/b), m
	}
	q = math.Floor(d)
	if d-q > 0.5 {
		q++
	}
	return q, m
}

// NameError is an error from a lookup for an identifier that is missing from
// the function namespace. It implements InputError and unwraps to
// ErrUnknownIdentifier.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Col is the position of the name.
	Col int
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown identifier "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Unwrap() error {
	return ErrUnknownIdentifier
}
