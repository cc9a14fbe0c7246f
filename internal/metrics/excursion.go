package metrics

import (
	"math"

	"github.com/askalov/cartpend/internal/dynamo"
)

// MaxExcursion tracks the largest |θ| seen over a run. For the
// unstabilized inverted pendulum this measures how far the pole has
// fallen from the vertical.
type MaxExcursion struct {
	name string
	max  float64
}

func NewMaxExcursion() *MaxExcursion {
	return &MaxExcursion{name: "max_excursion"}
}

func (m *MaxExcursion) Name() string { return m.name }

func (m *MaxExcursion) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) < 2 {
		return
	}
	if a := math.Abs(x[1]); a > m.max {
		m.max = a
	}
}

func (m *MaxExcursion) Value() float64 { return m.max }

func (m *MaxExcursion) Reset() { m.max = 0 }
