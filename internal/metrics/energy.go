// Package metrics provides trajectory observers for simulation runs.
package metrics

import (
	"math"

	"github.com/askalov/cartpend/internal/dynamo"
)

// Energy averages the total mechanical energy of a Hamiltonian system
// over a run.
type Energy struct {
	name    string
	dyn     dynamo.Hamiltonian
	sum     float64
	samples int
}

func NewEnergy(dyn dynamo.Hamiltonian) *Energy {
	return &Energy{
		name: "energy",
		dyn:  dyn,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, u dynamo.Control, t float64) {
	v := e.dyn.Energy(x)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	e.sum += v
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Energy) Reset() {
	e.sum = 0
	e.samples = 0
}
