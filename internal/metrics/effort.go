package metrics

import (
	"math"

	"github.com/askalov/cartpend/internal/dynamo"
)

// Effort averages the absolute force applied to the cart over a run.
type Effort struct {
	name    string
	sum     float64
	samples int
}

func NewEffort() *Effort {
	return &Effort{name: "effort"}
}

func (e *Effort) Name() string { return e.name }

func (e *Effort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for _, val := range u {
		e.sum += math.Abs(val)
	}
	e.samples++
}

func (e *Effort) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Effort) Reset() {
	e.sum = 0
	e.samples = 0
}
