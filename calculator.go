package scicalc

import (
	"log/slog"
	"time"

	"github.com/zephyrtronium/scicalc/internal/logging"
)

// Observer receives the outcome of every evaluation a Calculator performs.
// kind is KindNone for successful evaluations.
type Observer interface {
	Observe(kind ErrorKind, d time.Duration)
}

// Calculator is the state a calculator front end drives: an evaluation
// context with its trig mode, a memory register, and the history of
// successful evaluations. It is not safe for concurrent use.
type Calculator struct {
	ctx  *Context
	mem  Memory
	hist History
	log  *slog.Logger
	obs  Observer
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger for evaluations. The default discards logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		c.log = logger
	}
}

// WithObserver sets an observer of evaluation outcomes.
func WithObserver(obs Observer) Option {
	return func(c *Calculator) {
		c.obs = obs
	}
}

// WithMode sets the initial trig mode (default: Degrees).
func WithMode(m Mode) Option {
	return func(c *Calculator) {
		c.ctx.SetMode(m)
	}
}

// New creates a calculator with empty memory and history.
func New(opts ...Option) *Calculator {
	c := &Calculator{ctx: NewContext()}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.NewNop()
	}
	return c
}

// Compute evaluates calculator input without recording it in the history.
func (c *Calculator) Compute(expr string) (Number, error) {
	start := time.Now()
	r, err := c.ctx.Evaluate(expr)
	d := time.Since(start)
	kind := KindOf(err)
	if c.obs != nil {
		c.obs.Observe(kind, d)
	}
	if err != nil {
		c.log.Debug("evaluation failed", "expr", expr, "mode", c.ctx.Mode(), "kind", kind, "error", err)
		return Number{}, err
	}
	c.log.Debug("evaluated", "expr", expr, "mode", c.ctx.Mode(), "result", r, "took", d)
	return r, nil
}

// Evaluate evaluates calculator input and records it in the history if it
// succeeds. On failure, the history is unchanged.
func (c *Calculator) Evaluate(expr string) (Number, error) {
	r, err := c.Compute(expr)
	if err != nil {
		return Number{}, err
	}
	c.hist.Append(Entry{Input: expr, Result: r})
	return r, nil
}

// Mode returns the current trig mode.
func (c *Calculator) Mode() Mode {
	return c.ctx.Mode()
}

// SetMode sets the trig mode.
func (c *Calculator) SetMode(m Mode) {
	if m != c.ctx.Mode() {
		c.log.Info("trig mode changed", "mode", m)
	}
	c.ctx.SetMode(m)
}

// ToggleMode switches between degrees and radians and returns the new mode.
func (c *Calculator) ToggleMode() Mode {
	c.SetMode(c.ctx.Mode().Toggle())
	return c.ctx.Mode()
}

// AddToMemory adds n to the memory register.
func (c *Calculator) AddToMemory(n Number) {
	c.mem.Add(n)
}

// SubtractFromMemory subtracts n from the memory register.
func (c *Calculator) SubtractFromMemory(n Number) {
	c.mem.Subtract(n)
}

// ClearMemory resets the memory register to 0.
func (c *Calculator) ClearMemory() {
	c.mem.Clear()
}

// ReadMemory returns the value in the memory register.
func (c *Calculator) ReadMemory() Number {
	return c.mem.Read()
}

// History returns the successful evaluations, oldest first.
func (c *Calculator) History() []Entry {
	return c.hist.Entries()
}

// HistoryLen returns the number of history entries.
func (c *Calculator) HistoryLen() int {
	return c.hist.Len()
}

// Names returns the identifiers expressions may use, sorted.
func (c *Calculator) Names() []string {
	return c.ctx.Names()
}

// Recall returns the input of the i'th history entry, so that it can be edited
// and evaluated again.
func (c *Calculator) Recall(i int) (string, bool) {
	e, ok := c.hist.At(i)
	return e.Input, ok
}

// ClearHistory removes all history entries.
func (c *Calculator) ClearHistory() {
	c.hist.Clear()
	c.log.Debug("history cleared")
}
