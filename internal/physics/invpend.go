package physics

import (
	"fmt"
	"math"

	"github.com/askalov/cartpend/internal/dynamo"
)

// Gravity is the gravitational constant used by the model.
const Gravity = 9.81

// InvertedPendulum models a pendulum mounted on a horizontally-moving
// cart. State is (x, θ, ẋ, θ̇), control is the horizontal force (F)
// applied to the cart.
type InvertedPendulum struct {
	CartMass       float64
	PendulumMass   float64
	PendulumLength float64
	Viscosity      float64
}

func NewInvertedPendulum() *InvertedPendulum {
	return &InvertedPendulum{
		CartMass:       1.0,
		PendulumMass:   1.0,
		PendulumLength: 1.0,
		Viscosity:      0.1,
	}
}

func (p *InvertedPendulum) StateDim() int {
	return 4
}

func (p *InvertedPendulum) ControlDim() int {
	return 1
}

// Accel solves M(q)·q̈ = τ − N(q,q̇)·q̇ − G(q) for the generalized
// acceleration (ẍ, θ̈) by closed-form 2x2 inversion.
//
// No singularity guard is applied: if the determinant
// (M+m)·m·l² − (m·l·cosθ)² is (near) zero the result is non-finite and
// propagates silently. Known limitation.
func (p *InvertedPendulum) Accel(x dynamo.State, u dynamo.Control) (xacc, thetaacc float64) {
	theta := x[1]
	vel := x[2]
	omega := x[3]

	force := 0.0
	if len(u) > 0 {
		force = u[0]
	}

	mc := p.CartMass
	mp := p.PendulumMass
	l := p.PendulumLength
	lambda := p.Viscosity

	sint := math.Sin(theta)
	cost := math.Cos(theta)

	m11 := mc + mp
	m12 := -mp * l * cost
	m22 := mp * l * l
	det := m11*m22 - m12*m12

	// τ − N(q,q̇)·q̇ − G(q)
	b1 := force - lambda*vel - mp*l*omega*omega*sint
	b2 := -lambda*omega + mp*l*Gravity*sint

	xacc = (m22*b1 - m12*b2) / det
	thetaacc = (m11*b2 - m12*b1) / det
	return xacc, thetaacc
}

func (p *InvertedPendulum) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	xacc, thetaacc := p.Accel(x, u)
	return dynamo.State{x[2], x[3], xacc, thetaacc}
}

// Energy returns the total mechanical energy 0.5·q̇ᵀM(q)q̇ + m·g·l·cosθ.
// The potential term is measured from the cart axis, so the upright
// equilibrium carries maximal potential energy.
func (p *InvertedPendulum) Energy(x dynamo.State) float64 {
	theta := x[1]
	vel := x[2]
	omega := x[3]

	mc := p.CartMass
	mp := p.PendulumMass
	l := p.PendulumLength

	ke := 0.5*(mc+mp)*vel*vel - mp*l*vel*omega*math.Cos(theta) + 0.5*mp*l*l*omega*omega
	pe := mp * Gravity * l * math.Cos(theta)
	return ke + pe
}

func (p *InvertedPendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"cart_mass":       p.CartMass,
		"pendulum_mass":   p.PendulumMass,
		"pendulum_length": p.PendulumLength,
		"viscosity":       p.Viscosity,
	}
}

func (p *InvertedPendulum) SetParam(name string, value float64) error {
	switch name {
	case "cart_mass":
		p.CartMass = value
	case "pendulum_mass":
		p.PendulumMass = value
	case "pendulum_length":
		p.PendulumLength = value
	case "viscosity":
		p.Viscosity = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
