// Package entity binds the inverted-pendulum dynamics to the signal
// port protocol. The entity owns the current state vector and mediates
// between the pull-based force input and the cached state output.
package entity

import (
	"github.com/askalov/cartpend/internal/dynamo"
	"github.com/askalov/cartpend/internal/integrators"
	"github.com/askalov/cartpend/internal/physics"
	"github.com/askalov/cartpend/internal/signal"
)

// Pendulum is the simulation entity: an inverted pendulum on a cart
// exposed through two ports, a 1-dimensional force input and a
// 4-dimensional state output, both indexed by an integer time token.
//
// Evaluation is single-threaded and synchronous. An advance request is
// a plain call that pulls the force for the current index, runs one
// integration step, and publishes the new state tagged with the
// incremented index, so index k always names the state after k steps.
type Pendulum struct {
	name  string
	model *physics.InvertedPendulum
	integ dynamo.Integrator

	state   dynamo.State
	time    int
	simTime float64
	dt      float64

	// ForceIn accepts the horizontal force applied to the cart.
	ForceIn *signal.Ptr
	// StateOut publishes (x, θ, ẋ, θ̇).
	StateOut *signal.Cached
}

// New creates an entity with a zero-valued state. dt is the step size
// used when the output port refreshes itself on a cache miss; explicit
// Advance calls supply their own.
func New(name string, dt float64) *Pendulum {
	p := &Pendulum{
		name:     name,
		model:    physics.NewInvertedPendulum(),
		integ:    integrators.NewSymplecticEuler(),
		state:    dynamo.State{0, 0, 0, 0},
		dt:       dt,
		ForceIn:  signal.NewPtr(name + ".force"),
		StateOut: signal.NewCached(name + ".state"),
	}
	p.StateOut.Set(p.state.Clone(), 0)
	p.StateOut.SetRefresh(p.refresh)
	return p
}

func (p *Pendulum) Name() string { return p.name }

// Time returns the entity's current time index.
func (p *Pendulum) Time() int { return p.time }

// Model returns the underlying dynamical model.
func (p *Pendulum) Model() *physics.InvertedPendulum { return p.model }

// SetIntegrator swaps the stepping scheme. The default is symplectic
// Euler.
func (p *Pendulum) SetIntegrator(integ dynamo.Integrator) {
	p.integ = integ
}

// State returns a copy of the current state vector.
func (p *Pendulum) State() dynamo.State {
	return p.state.Clone()
}

// SetState overwrites the current state and republishes it at the
// current time index.
func (p *Pendulum) SetState(x dynamo.State) {
	p.state = x.Clone()
	p.StateOut.Set(p.state.Clone(), p.time)
}

// Advance moves the entity from time index t to t+1: pull the force
// for t from the input port, integrate one step of dt from the stored
// state, and publish the result tagged with t+1. Index k on the output
// port is therefore the state after exactly k advances, with the
// initial state seeded at index 0. Numerical degeneracy is not
// detected; NaN/Inf flow through.
func (p *Pendulum) Advance(dt float64) {
	t := p.time
	u := dynamo.Control(p.ForceIn.Value(t))

	p.state = p.integ.Step(p.model, p.state, u, p.simTime, dt)
	p.simTime += dt

	p.time = t + 1
	p.StateOut.Set(p.state.Clone(), p.time)
}

// refresh serves output-port cache misses by advancing with the
// configured default step until the requested index is reached.
func (p *Pendulum) refresh(tick int) []float64 {
	for p.time < tick {
		p.Advance(p.dt)
	}
	return p.state.Clone()
}

// Parameter accessors. No bounds checking: zero or negative values are
// accepted and manifest as degenerate dynamics, not as errors.

func (p *Pendulum) CartMass() float64           { return p.model.CartMass }
func (p *Pendulum) SetCartMass(m float64)       { p.model.CartMass = m }
func (p *Pendulum) PendulumMass() float64       { return p.model.PendulumMass }
func (p *Pendulum) SetPendulumMass(m float64)   { p.model.PendulumMass = m }
func (p *Pendulum) PendulumLength() float64     { return p.model.PendulumLength }
func (p *Pendulum) SetPendulumLength(l float64) { p.model.PendulumLength = l }
func (p *Pendulum) Viscosity() float64          { return p.model.Viscosity }
func (p *Pendulum) SetViscosity(v float64)      { p.model.Viscosity = v }
