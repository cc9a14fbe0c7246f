// Package physics provides the dynamical model of the inverted
// pendulum on a cart.
//
// The model implements the [dynamo.System] interface. Its equation of
// motion is written in manipulator form
//
//	M(q)·q̈ + N(q,q̇)·q̇ + G(q) = τ
//
// with generalized coordinates q = (x, θ): x the cart position on a
// horizontal axis, θ the pendulum angle from the vertical. An
// artificial viscosity λ on both diagonal entries of N makes the
// otherwise marginally-stable system numerically well-behaved.
//
// The model also implements [dynamo.Configurable] for runtime parameter
// adjustment and [dynamo.Hamiltonian] for energy calculation.
package physics
