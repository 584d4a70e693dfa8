package scicalc

// Memory is a calculator memory register. The zero value holds 0.
type Memory struct {
	v float64
}

// Add adds n to the register.
func (m *Memory) Add(n Number) {
	m.v += n.Float64()
}

// Subtract subtracts n from the register.
func (m *Memory) Subtract(n Number) {
	m.v -= n.Float64()
}

// Clear resets the register to 0.
func (m *Memory) Clear() {
	m.v = 0
}

// Read returns the register's value, rounded like an evaluation result.
func (m *Memory) Read() Number {
	return FromFloat64(m.v)
}
