package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/scicalc"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	c := New(reg)
	c.Observe(scicalc.KindNone, time.Millisecond)
	c.Observe(scicalc.KindNone, time.Millisecond)
	c.Observe(scicalc.KindDomain, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.evaluations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.evaluations.WithLabelValues("DomainError")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.evaluations.WithLabelValues("SyntaxError")))

	n, err := testutil.GatherAndCount(reg, "scicalc_evaluation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCalculatorObserved(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	calc := scicalc.New(scicalc.WithObserver(c))
	calc.Evaluate("1+1")
	calc.Evaluate("1/0")
	calc.Evaluate("foo")
	calc.Evaluate("2 $ 3")
	calc.Evaluate("(1")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.evaluations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.evaluations.WithLabelValues("DomainError")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.evaluations.WithLabelValues("UnknownIdentifier")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.evaluations.WithLabelValues("InvalidCharacter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.evaluations.WithLabelValues("SyntaxError")))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(scicalc.KindNone))
	assert.Equal(t, "UnknownIdentifier", Outcome(scicalc.KindUnknownIdentifier))
}
