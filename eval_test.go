package scicalc_test

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		mode scicalc.Mode
		want string
	}{
		{"num", "42", scicalc.Degrees, "42"},
		{"frac", "123456.789", scicalc.Degrees, "123456.789"},
		{"underscore", "1_000 + 1", scicalc.Degrees, "1001"},
		{"underflow-literal", "1e-99999999999999999999", scicalc.Degrees, "0"},
		{"underflow-literal-int", "1e-3000000000", scicalc.Degrees, "0"},
		{"underflow-small", "1e-400", scicalc.Degrees, "0"},
		{"zero-huge-exp", "0e99999999999999999999", scicalc.Degrees, "0"},
		{"zero-frac-huge-exp", "0.000e+99999999999999999999 + 2", scicalc.Degrees, "2"},
		{"nested", strings.Repeat("(", 500) + "1" + strings.Repeat(")", 500), scicalc.Degrees, "1"},
		{"long-sum", strings.Repeat("1+", 900) + "1", scicalc.Degrees, "901"},
		{"add", "1+2", scicalc.Degrees, "3"},
		{"prec", "2+3*4", scicalc.Degrees, "14"},
		{"parens", "(2+3)*4", scicalc.Degrees, "20"},
		{"div", "10/4", scicalc.Degrees, "2.5"},
		{"div-int", "10/5", scicalc.Degrees, "2"},
		{"third", "1/3", scicalc.Degrees, "0.333333333333"},
		{"two-thirds", "2/3", scicalc.Degrees, "0.666666666667"},
		{"float-sum", "0.1+0.2", scicalc.Degrees, "0.3"},
		{"caret", "2^3", scicalc.Degrees, "8"},
		{"starstar", "2**3", scicalc.Degrees, "8"},
		{"pow-right", "2^3^2", scicalc.Degrees, "512"},
		{"neg-pow", "-2^2", scicalc.Degrees, "-4"},
		{"pow-neg", "2^-1", scicalc.Degrees, "0.5"},
		{"pow-neg-int", "2^-10", scicalc.Degrees, "0.0009765625"},
		{"pow-frac", "2^0.5", scicalc.Degrees, "1.414213562373"},
		{"neg-base", "(-2)^3", scicalc.Degrees, "-8"},
		{"zero-zero", "0^0", scicalc.Degrees, "1"},
		{"factorial", "5!", scicalc.Degrees, "120"},
		{"factorial-zero", "0!", scicalc.Degrees, "1"},
		{"factorial-group", "(3+2)!", scicalc.Degrees, "120"},
		{"factorial-twice", "3!+4!", scicalc.Degrees, "30"},
		{"factorial-big", "20!", scicalc.Degrees, "2432902008176640000"},
		{"percent", "50%", scicalc.Degrees, "0.5"},
		{"percent-of", "200*10%", scicalc.Degrees, "20"},
		{"mod", "(7)%3", scicalc.Degrees, "1"},
		{"mod-neg", "(-7)%3", scicalc.Degrees, "2"},
		{"mod-negdiv", "(7)%(-3)", scicalc.Degrees, "-2"},
		{"mod-frac", "(5.5)%2", scicalc.Degrees, "1.5"},
		{"floordiv", "7//2", scicalc.Degrees, "3"},
		{"floordiv-neg", "-7//2", scicalc.Degrees, "-4"},
		{"floordiv-frac", "7.5//2", scicalc.Degrees, "3"},
		{"example", "5! + sin(30) - 2^3", scicalc.Degrees, "112.5"},

		{"sin-deg", "sin(90)", scicalc.Degrees, "1"},
		{"sin30-deg", "sin(30)", scicalc.Degrees, "0.5"},
		{"sin180-deg", "sin(180)", scicalc.Degrees, "0"},
		{"cos-deg", "cos(60)", scicalc.Degrees, "0.5"},
		{"cos90-deg", "cos(90)", scicalc.Degrees, "0"},
		{"tan-deg", "tan(45)", scicalc.Degrees, "1"},
		{"asin-deg", "asin(1)", scicalc.Degrees, "90"},
		{"asin-half-deg", "asin(0.5)", scicalc.Degrees, "30"},
		{"acos-deg", "acos(-1)", scicalc.Degrees, "180"},
		{"atan-deg", "atan(1)", scicalc.Degrees, "45"},
		{"sin-rad", "sin(pi/2)", scicalc.Radians, "1"},
		{"sin1-rad", "sin(1)", scicalc.Radians, "0.841470984808"},
		{"cos-rad", "cos(pi)", scicalc.Radians, "-1"},
		{"sinpi-rad", "sin(pi)", scicalc.Radians, "0"},
		{"asin-rad", "asin(1)", scicalc.Radians, "1.570796326795"},

		{"sqrt", "sqrt(16)", scicalc.Degrees, "4"},
		{"sqrt2", "sqrt(2)", scicalc.Degrees, "1.414213562373"},
		{"log", "log(10)", scicalc.Degrees, "2.302585092994"},
		{"log-e", "log(e)", scicalc.Degrees, "1"},
		{"log-base", "log(8, 2)", scicalc.Degrees, "3"},
		{"log-base10", "log(1000, 10)", scicalc.Degrees, "3"},
		{"ln", "ln(1)", scicalc.Degrees, "0"},
		{"ln-e2", "ln(e^2)", scicalc.Degrees, "2"},
		{"log10", "log10(1000)", scicalc.Degrees, "3"},
		{"log10-2", "log10(2)", scicalc.Degrees, "0.301029995664"},
		{"exp0", "exp(0)", scicalc.Degrees, "1"},
		{"exp1", "exp(1)", scicalc.Degrees, "2.718281828459"},
		{"pow", "pow(2, 10)", scicalc.Degrees, "1024"},
		{"abs", "abs(-3.5)", scicalc.Degrees, "3.5"},
		{"fact", "fact(4)", scicalc.Degrees, "24"},
		{"pi", "pi", scicalc.Degrees, "3.14159265359"},
		{"e", "e", scicalc.Degrees, "2.718281828459"},

		{"sci-small", "1e-5", scicalc.Degrees, "1e-05"},
		{"pos-small", "0.5e-3", scicalc.Degrees, "0.0005"},
		{"pos-small-frac", "1/7*1e-3", scicalc.Degrees, "0.000142857143"},
		{"tiny", "1e-13", scicalc.Degrees, "0"},
		{"big-int", "1.5e16", scicalc.Degrees, "15000000000000000"},
		{"bigger-int", "1e20", scicalc.Degrees, "100000000000000000000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := scicalc.Evaluate(c.src, scicalc.TrigMode(c.mode))
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if got := r.String(); got != c.want {
				t.Errorf("%q: want %s, got %s", c.src, c.want, got)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind scicalc.ErrorKind
		is   error
	}{
		{"dollar", "2 $ 3", scicalc.KindInvalidCharacter, scicalc.ErrInvalidCharacter},
		{"assign", "x = 1", scicalc.KindInvalidCharacter, scicalc.ErrInvalidCharacter},
		{"quote", "__import__('os')", scicalc.KindInvalidCharacter, scicalc.ErrInvalidCharacter},
		{"attr", "a.b", scicalc.KindSyntax, scicalc.ErrSyntax},

		{"empty", "", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"unbalanced-left", "(2+3", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"unbalanced-right", "2+3)", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"empty-operand", "2+", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"juxtapose", "2 3", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"implicit-mul", "2(3)", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"implicit-mul-name", "2pi", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"nested-factorial", "((2+3)+1)!", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"double-factorial", "5!!", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"percent-mod", "7 % 3", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"bare-func", "sin", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"call-const", "pi(1)", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"call-empty", "sin()", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"too-many", "sin(1, 2)", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"too-few", "pow(2)", scicalc.KindSyntax, scicalc.ErrSyntax},
		{"log10-base", "log10(8, 2)", scicalc.KindSyntax, scicalc.ErrSyntax},

		{"unknown-func", "foo(1)", scicalc.KindUnknownIdentifier, scicalc.ErrUnknownIdentifier},
		{"unknown-name", "x+1", scicalc.KindUnknownIdentifier, scicalc.ErrUnknownIdentifier},
		{"unknown-builtin", "print(1)", scicalc.KindUnknownIdentifier, scicalc.ErrUnknownIdentifier},
		{"unknown-dunder", "__builtins__", scicalc.KindUnknownIdentifier, scicalc.ErrUnknownIdentifier},
		{"unknown-module", "math", scicalc.KindUnknownIdentifier, scicalc.ErrUnknownIdentifier},

		{"div-zero", "1/0", scicalc.KindDomain, scicalc.ErrDomain},
		{"floordiv-zero", "1//0", scicalc.KindDomain, scicalc.ErrDomain},
		{"mod-zero", "(1)%0", scicalc.KindDomain, scicalc.ErrDomain},
		{"sqrt-neg", "sqrt(-1)", scicalc.KindDomain, scicalc.ErrDomain},
		{"log-zero", "log(0)", scicalc.KindDomain, scicalc.ErrDomain},
		{"log-neg", "ln(-1)", scicalc.KindDomain, scicalc.ErrDomain},
		{"log-base-one", "log(8, 1)", scicalc.KindDomain, scicalc.ErrDomain},
		{"log-base-neg", "log(8, -2)", scicalc.KindDomain, scicalc.ErrDomain},
		{"log10-zero", "log10(0)", scicalc.KindDomain, scicalc.ErrDomain},
		{"asin-big", "asin(2)", scicalc.KindDomain, scicalc.ErrDomain},
		{"acos-big", "acos(-1.5)", scicalc.KindDomain, scicalc.ErrDomain},
		{"factorial-neg", "(-5)!", scicalc.KindDomain, scicalc.ErrDomain},
		{"factorial-frac", "2.5!", scicalc.KindDomain, scicalc.ErrDomain},
		{"factorial-huge", "factorial(100000)", scicalc.KindDomain, scicalc.ErrDomain},
		{"zero-neg-pow", "0^-1", scicalc.KindDomain, scicalc.ErrDomain},
		{"neg-frac-pow", "(-8)^(1/3)", scicalc.KindDomain, scicalc.ErrDomain},
		{"overflow", "10^400", scicalc.KindDomain, scicalc.ErrDomain},
		{"overflow-literal", "1e400", scicalc.KindDomain, scicalc.ErrDomain},
		{"inf-minus-inf", "exp(2e9) - exp(2e9)", scicalc.KindDomain, scicalc.ErrDomain},
		{"exp-overflow", "exp(2e9)", scicalc.KindDomain, scicalc.ErrDomain},
		{"overflow-huge-exp", "1e99999999999999999999", scicalc.KindDomain, scicalc.ErrDomain},

		{"too-deep", strings.Repeat("(", 5e6) + "1" + strings.Repeat(")", 5e6), scicalc.KindSyntax, scicalc.ErrSyntax},
		{"too-long", strings.Repeat("1+", 5000) + "1", scicalc.KindSyntax, scicalc.ErrSyntax},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := scicalc.Evaluate(c.src)
			if err == nil {
				t.Fatalf("%q gave %v but should have failed", c.src, r)
			}
			if got := scicalc.KindOf(err); got != c.kind {
				t.Errorf("%q: want %v, got %v (%v)", c.src, c.kind, got, err)
			}
			if !errors.Is(err, c.is) {
				t.Errorf("%q: error %v is not %v", c.src, err, c.is)
			}
			if d := scicalc.Describe(err); !strings.HasPrefix(d, c.kind.String()+": ") {
				t.Errorf("%q: bad description %q", c.src, d)
			}
		})
	}
}

func TestEvaluateErrorDetail(t *testing.T) {
	_, err := scicalc.Evaluate("1 + foo(2)")
	var ne *scicalc.NameError
	if !errors.As(err, &ne) {
		t.Fatalf("wrong error %T %v", err, err)
	}
	if ne.Name != "foo" || ne.Col != 5 {
		t.Errorf("wrong error detail: %+v", ne)
	}

	_, err = scicalc.Evaluate("2 * sqrt(-4)")
	var de *scicalc.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("wrong error %T %v", err, err)
	}
	if de.Func != "sqrt" || de.Arg != 1 || de.X == nil || de.X.Cmp(big.NewFloat(-4)) != 0 {
		t.Errorf("wrong error detail: %+v", de)
	}

	_, err = scicalc.Evaluate("1/0")
	if !errors.As(err, &de) {
		t.Fatalf("wrong error %T %v", err, err)
	}
	if got, want := err.Error(), "/: division by zero"; got != want {
		t.Errorf("wrong message: want %q, got %q", want, got)
	}
}

func TestModeToggle(t *testing.T) {
	inputs := []string{"sin(90)", "cos(1)", "tan(30)", "asin(0.5)", "acos(0.2)", "atan(3)", "sin(pi/6)"}
	ctx := scicalc.NewContext()
	if ctx.Mode() != scicalc.Degrees {
		t.Fatalf("default mode is %v", ctx.Mode())
	}
	before := make([]scicalc.Number, len(inputs))
	for i, src := range inputs {
		r, err := ctx.Evaluate(src)
		if err != nil {
			t.Fatalf("%q failed: %v", src, err)
		}
		before[i] = r
	}
	if m := ctx.ToggleMode(); m != scicalc.Radians {
		t.Errorf("first toggle gave %v", m)
	}
	r, err := ctx.Evaluate("sin(pi/2)")
	if err != nil || r.String() != "1" {
		t.Errorf("sin(pi/2) in radians: %v, %v", r, err)
	}
	if m := ctx.ToggleMode(); m != scicalc.Degrees {
		t.Errorf("second toggle gave %v", m)
	}
	for i, src := range inputs {
		r, err := ctx.Evaluate(src)
		if err != nil {
			t.Fatalf("%q failed after toggling: %v", src, err)
		}
		if r != before[i] {
			t.Errorf("%q: %v before toggling, %v after", src, before[i], r)
		}
	}
}

func TestSetMode(t *testing.T) {
	ctx := scicalc.NewContext()
	if ctx.SetMode(scicalc.Radians).Mode() != scicalc.Radians {
		t.Errorf("SetMode didn't set the mode")
	}
	e, err := scicalc.ParseString("asin(1)")
	if err != nil {
		t.Fatal(err)
	}
	rad := ctx.Eval(e)
	deg := ctx.SetMode(scicalc.Degrees).Eval(e)
	if rad == nil || deg == nil {
		t.Fatalf("evaluation failed: %v", ctx.Err())
	}
	// The same parsed expression gives different results by mode.
	ratio, _ := new(big.Float).Quo(deg, rad).Float64()
	if ratio < 57.29 || ratio > 57.30 {
		t.Errorf("wrong ratio between degrees and radians: %v", ratio)
	}
}

func TestClone(t *testing.T) {
	ctx := scicalc.NewContext(scicalc.TrigMode(scicalc.Radians))
	c := ctx.Clone()
	if c.Mode() != scicalc.Radians {
		t.Errorf("clone has mode %v", c.Mode())
	}
	d := ctx.Clone(scicalc.TrigMode(scicalc.Degrees))
	if d.Mode() != scicalc.Degrees || ctx.Mode() != scicalc.Radians {
		t.Errorf("clone with option changed modes wrong: %v %v", d.Mode(), ctx.Mode())
	}
	r, err := d.Evaluate("sin(90)")
	if err != nil || r.String() != "1" {
		t.Errorf("sin(90) in cloned degrees context: %v, %v", r, err)
	}
}

func TestEvalResult(t *testing.T) {
	ctx := scicalc.NewContext()
	e, err := scicalc.ParseString("2 ** 10")
	if err != nil {
		t.Fatal(err)
	}
	r := ctx.Eval(e)
	if r == nil || ctx.Err() != nil {
		t.Fatalf("eval failed: %v", ctx.Err())
	}
	if ctx.Result() != r {
		t.Errorf("Result is not the evaluated value")
	}
	if v, acc := r.Int64(); v != 1024 || acc != big.Exact {
		t.Errorf("wrong result %v", r)
	}
	// Evaluating again doesn't clobber the first result.
	f, err := scicalc.ParseString("1/0")
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Eval(f) != nil {
		t.Errorf("1/0 gave a result")
	}
	if scicalc.KindOf(ctx.Err()) != scicalc.KindDomain {
		t.Errorf("wrong error %v", ctx.Err())
	}
	if ctx.Result() != nil {
		t.Errorf("Result after error should be nil")
	}
	if v, _ := r.Int64(); v != 1024 {
		t.Errorf("first result changed to %v", r)
	}
	if ctx.Eval(e) == nil {
		t.Errorf("context unusable after error: %v", ctx.Err())
	}
}

func TestNoMutationAcrossEvaluations(t *testing.T) {
	ctx := scicalc.NewContext()
	for i := 0; i < 3; i++ {
		for _, src := range []string{"5! + sin(30) - 2^3", "sqrt(-1)", "log(8, 2)"} {
			ctx.Evaluate(src)
		}
	}
	r, err := ctx.Evaluate("5! + sin(30) - 2^3")
	if err != nil || r.String() != "112.5" {
		t.Errorf("repeated evaluation changed the result: %v, %v", r, err)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"arith", "1 + 2 * 3 - 4 / 5"},
		{"example", "5! + sin(30) - 2^3"},
		{"funcs", "sqrt(2) * log(10) + exp(1) - pi"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			ctx := scicalc.NewContext()
			for i := 0; i < b.N; i++ {
				ctx.Evaluate(c.src)
			}
		})
	}
}
