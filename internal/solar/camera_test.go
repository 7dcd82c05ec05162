package solar

import (
	"testing"

	"github.com/goki/mat32"
	"github.com/stretchr/testify/assert"
)

func TestNewCamera(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	assert.Equal(t, mat32.Vec3{Y: 400, Z: 250}, cam.Pos)
	assert.Equal(t, mat32.Vec3{}, cam.Target)
	assert.Equal(t, mat32.Vec3Y, cam.Up)
	assert.InDelta(t, 75, cam.FOV, 1e-6)

	view := cam.Target.MulMat4(&cam.ViewMatrix)
	assertVec(t, mat32.Vec3{Z: -cam.Distance()}, view, 1e-2)
}

func TestCameraSetViewport(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	cam.SetViewport(1600, 900)
	assert.Equal(t, 1600, cam.Width)
	assert.Equal(t, 900, cam.Height)
	assert.InDelta(t, 16.0/9.0, cam.Aspect, 1e-6)
	before := cam.PrjnMatrix

	cam.SetViewport(0, 0)
	assert.Equal(t, 1600, cam.Width, "minimized window keeps the last size")
	assert.Equal(t, before, cam.PrjnMatrix)

	cam.SetViewport(900, 900)
	assert.NotEqual(t, before, cam.PrjnMatrix)
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	d := cam.Distance()
	cam.Orbit(30, 0)
	assert.InDelta(t, d, cam.Distance(), 1e-2)
	cam.Orbit(0, -20)
	assert.InDelta(t, d, cam.Distance(), 1e-2)
	assert.Equal(t, mat32.Vec3{}, cam.Target)
}

func TestCameraZoomClamps(t *testing.T) {
	cfg := DefaultCameraConfig()
	cfg.MinDistance = 10
	cfg.MaxDistance = 1000
	cam := NewCamera(cfg)

	d := cam.Distance()
	cam.Zoom(-0.5)
	assert.InDelta(t, d/2, cam.Distance(), 1e-2)

	for i := 0; i < 50; i++ {
		cam.Zoom(-0.5)
	}
	assert.InDelta(t, 10, cam.Distance(), 1e-3)

	for i := 0; i < 50; i++ {
		cam.Zoom(1)
	}
	assert.InDelta(t, 1000, cam.Distance(), 1e-2)
}
