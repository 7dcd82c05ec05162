package solar

import "math"

const (
	MinSpeed     = 0.0
	MaxSpeed     = 5.0
	MinIntensity = 0.0
	MaxIntensity = 5.0
	ParamStep    = 0.1
)

// Parameters are the user-adjustable simulation values.
type Parameters struct {
	Speed          float64 `toml:"speed"`
	LightIntensity float64 `toml:"light_intensity"`
}

func DefaultParameters() Parameters {
	return Parameters{Speed: 1, LightIntensity: DefaultLightStrength}
}

// SetSpeed clamps v to [MinSpeed, MaxSpeed]; NaN is ignored.
func (p *Parameters) SetSpeed(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.Speed = snap(clampF(v, MinSpeed, MaxSpeed))
}

// SetLightIntensity clamps v to [MinIntensity, MaxIntensity]; NaN is ignored.
func (p *Parameters) SetLightIntensity(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.LightIntensity = snap(clampF(v, MinIntensity, MaxIntensity))
}

// NudgeSpeed moves the speed by steps slider steps.
func (p *Parameters) NudgeSpeed(steps int) { p.SetSpeed(p.Speed + float64(steps)*ParamStep) }

func (p *Parameters) NudgeLight(steps int) {
	p.SetLightIntensity(p.LightIntensity + float64(steps)*ParamStep)
}

// Clamp brings both values into range, e.g. after loading a config.
func (p *Parameters) Clamp() {
	s, l := p.Speed, p.LightIntensity
	*p = DefaultParameters()
	p.SetSpeed(s)
	p.SetLightIntensity(l)
}

// snap rounds to the slider step.
func snap(v float64) float64 {
	return math.Round(v/ParamStep) * ParamStep
}
