package config

var Presets = map[string]*Config{
	// the canonical driver scenario: equal masses, slight tilt
	"tutorial": {
		Integrator: "symplectic", Dt: 0.01, Duration: 100.0,
		Params:    ParamsConfig{CartMass: 1.0, PendulumMass: 1.0, PendulumLength: 1.0, Viscosity: 0.1},
		InitState: InitStateConfig{Theta: 0.01},
	},
	"light-pole": {
		Integrator: "symplectic", Dt: 0.01, Duration: 10.0,
		Params:    ParamsConfig{CartMass: 1.0, PendulumMass: 0.1, PendulumLength: 1.0, Viscosity: 0.1},
		InitState: InitStateConfig{Theta: 0.1},
	},
	"undamped": {
		Integrator: "symplectic", Dt: 0.01, Duration: 10.0,
		Params:    ParamsConfig{CartMass: 1.0, PendulumMass: 0.1, PendulumLength: 1.0, Viscosity: 0},
		InitState: InitStateConfig{Theta: 0.1},
	},
	// a one-second shove, then free motion
	"pushed": {
		Integrator: "symplectic", Dt: 0.01, Duration: 10.0, Force: 0.5, PushSteps: 100,
		Params:    ParamsConfig{CartMass: 1.0, PendulumMass: 1.0, PendulumLength: 1.0, Viscosity: 0.1},
		InitState: InitStateConfig{},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
