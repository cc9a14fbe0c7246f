// Package config loads and saves simulation configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultTheta    = 0.01

	DefaultCartMass       = 1.0
	DefaultPendulumMass   = 1.0
	DefaultPendulumLength = 1.0
	DefaultViscosity      = 0.1
)

type Config struct {
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Force      float64 `yaml:"force"`
	// PushSteps limits the force to the first N steps; 0 applies it
	// for the whole run.
	PushSteps int             `yaml:"push_steps"`
	Params    ParamsConfig    `yaml:"params"`
	InitState InitStateConfig `yaml:"init_state"`
}

type ParamsConfig struct {
	CartMass       float64 `yaml:"cart_mass"`
	PendulumMass   float64 `yaml:"pendulum_mass"`
	PendulumLength float64 `yaml:"pendulum_length"`
	Viscosity      float64 `yaml:"viscosity"`
}

type InitStateConfig struct {
	Pos   float64 `yaml:"pos"`
	Theta float64 `yaml:"theta"`
	Vel   float64 `yaml:"vel"`
	Omega float64 `yaml:"omega"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "symplectic",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Params: ParamsConfig{
			CartMass:       DefaultCartMass,
			PendulumMass:   DefaultPendulumMass,
			PendulumLength: DefaultPendulumLength,
			Viscosity:      DefaultViscosity,
		},
		InitState: InitStateConfig{
			Theta: DefaultTheta,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState returns the initial state vector (x, θ, ẋ, θ̇).
func (c *Config) GetInitState() []float64 {
	return []float64{c.InitState.Pos, c.InitState.Theta, c.InitState.Vel, c.InitState.Omega}
}
