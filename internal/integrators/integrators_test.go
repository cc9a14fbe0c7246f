package integrators

import (
	"math"
	"testing"

	"github.com/askalov/cartpend/internal/dynamo"
)

// harmonic oscillator: d(pos)/dt = vel, d(vel)/dt = -pos
type oscillator struct{}

func (o *oscillator) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int   { return 2 }
func (o *oscillator) ControlDim() int { return 0 }

func oscillatorEnergy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestSymplecticEulerVelocityFirst(t *testing.T) {
	dyn := &oscillator{}
	integ := NewSymplecticEuler()

	dt := 0.1
	x := integ.Step(dyn, dynamo.State{1.0, 0.0}, dynamo.Control{}, 0, dt)

	// velocity updated first, position uses the new velocity
	wantVel := -dt
	wantPos := 1.0 + dt*wantVel

	if x[1] != wantVel {
		t.Errorf("velocity: got %v, want %v", x[1], wantVel)
	}
	if x[0] != wantPos {
		t.Errorf("position: got %v, want %v", x[0], wantPos)
	}
}

func TestEulerExplicit(t *testing.T) {
	dyn := &oscillator{}
	integ := NewEuler()

	dt := 0.1
	x := integ.Step(dyn, dynamo.State{1.0, 0.0}, dynamo.Control{}, 0, dt)

	// position uses the old velocity
	if x[0] != 1.0 {
		t.Errorf("position: got %v, want 1.0", x[0])
	}
	if x[1] != -dt {
		t.Errorf("velocity: got %v, want %v", x[1], -dt)
	}
}

func TestSymplecticEulerAccuracy(t *testing.T) {
	dyn := &oscillator{}
	integ := NewSymplecticEuler()

	dt := 0.001
	steps := 1000

	x := dynamo.State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, dynamo.Control{}, float64(i)*dt, dt)
	}

	expected := math.Cos(float64(steps) * dt)
	if math.Abs(x[0]-expected) > 0.01 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expected)
	}
}

func TestSymplecticEulerEnergyBehavior(t *testing.T) {
	dyn := &oscillator{}
	dt := 0.01
	steps := 1000
	e0 := oscillatorEnergy(dynamo.State{1.0, 0.0})

	drift := func(integ dynamo.Integrator) float64 {
		x := dynamo.State{1.0, 0.0}
		for i := 0; i < steps; i++ {
			x = integ.Step(dyn, x, dynamo.Control{}, float64(i)*dt, dt)
		}
		return math.Abs(oscillatorEnergy(x)-e0) / e0
	}

	symplectic := drift(NewSymplecticEuler())
	explicit := drift(NewEuler())

	if symplectic >= explicit {
		t.Errorf("expected symplectic drift (%.6f) below explicit drift (%.6f)", symplectic, explicit)
	}
	if symplectic > 0.02 {
		t.Errorf("symplectic energy drift too large: %.6f", symplectic)
	}
}

func TestStepWithVaryingDt(t *testing.T) {
	dyn := &oscillator{}
	integ := NewSymplecticEuler()

	// dt is caller-supplied per step and may vary call to call
	x := dynamo.State{1.0, 0.0}
	for _, dt := range []float64{0.01, 0.05, 0.001, 0.02} {
		x = integ.Step(dyn, x, dynamo.Control{}, 0, dt)
	}
	if !x.IsValid() {
		t.Fatalf("state became non-finite: %v", x)
	}
}
