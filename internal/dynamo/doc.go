// Package dynamo provides the core primitives for simulating the
// cart-mounted inverted pendulum.
//
// The package defines the fundamental types shared by the numeric core
// and the surrounding tooling:
//
//   - [State]: system state vector, positions in the first half,
//     velocities in the second
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Configurable]: runtime parameter access
//
// # Example
//
//	dyn := physics.NewInvertedPendulum()
//	integ := integrators.NewSymplecticEuler()
//	next := integ.Step(dyn, x, u, t, dt)
//
// # Thread Safety
//
// None of the types in this package are thread-safe. Evaluation is
// single-threaded and pull-based; there is exactly one owner of state
// and parameters.
package dynamo
