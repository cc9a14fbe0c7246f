// Package sim runs fixed-horizon simulations of the pendulum entity
// and collects the resulting trajectories.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/askalov/cartpend/internal/dynamo"
	"github.com/askalov/cartpend/internal/entity"
)

// Simulator drives a pendulum entity step by step over a fixed horizon.
// Force values are recorded by re-pulling the entity's input port for
// each index; the port memoizes by time index, so the recording pull
// never recomputes the upstream value.
type Simulator struct {
	ent       *entity.Pendulum
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(ent *entity.Pendulum) *Simulator {
	return &Simulator{
		ent:       ent,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:   make([]dynamo.State, 0, steps+1),
		Controls: make([]dynamo.Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.ent.SetState(x0)
	t := 0.0

	result.States = append(result.States, s.ent.State())
	result.Times = append(result.Times, t)

	initialEnergy := s.ent.Model().Energy(x0)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := dynamo.Control(s.ent.ForceIn.Value(s.ent.Time()))
		x := s.ent.State()

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		s.ent.Advance(cfg.Dt)
		x = s.ent.State()
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !x.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Err: dynamo.ErrInvalidState})
			result.States = append(result.States, x)
			result.Controls = append(result.Controls, u)
			result.Times = append(result.Times, t)
			break
		}

		result.States = append(result.States, x)
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	finalEnergy := s.ent.Model().Energy(s.ent.State())
	if initialEnergy != 0 && !math.IsNaN(finalEnergy) {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
