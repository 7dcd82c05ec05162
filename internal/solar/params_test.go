package solar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParametersClamp(t *testing.T) {
	p := DefaultParameters()
	assert.Equal(t, 1.0, p.Speed)
	assert.Equal(t, 1.5, p.LightIntensity)

	p.SetSpeed(7)
	assert.Equal(t, MaxSpeed, p.Speed)
	p.SetSpeed(-1)
	assert.Equal(t, MinSpeed, p.Speed)
	p.SetSpeed(math.NaN())
	assert.Equal(t, MinSpeed, p.Speed)

	p.SetLightIntensity(2.34)
	assert.InDelta(t, 2.3, p.LightIntensity, 1e-9)
	p.SetLightIntensity(99)
	assert.Equal(t, MaxIntensity, p.LightIntensity)
}

func TestParametersNudge(t *testing.T) {
	p := DefaultParameters()
	p.NudgeSpeed(3)
	assert.InDelta(t, 1.3, p.Speed, 1e-9)
	p.NudgeSpeed(-100)
	assert.Equal(t, MinSpeed, p.Speed)

	p.NudgeLight(-2)
	assert.InDelta(t, 1.3, p.LightIntensity, 1e-9)
	p.NudgeLight(100)
	assert.Equal(t, MaxIntensity, p.LightIntensity)
}

func TestParametersClampAll(t *testing.T) {
	p := Parameters{Speed: 12, LightIntensity: math.NaN()}
	p.Clamp()
	assert.Equal(t, MaxSpeed, p.Speed)
	assert.Equal(t, DefaultLightStrength, p.LightIntensity)
}
