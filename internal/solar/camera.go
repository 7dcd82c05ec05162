package solar

import (
	"github.com/goki/mat32"
)

// CameraConfig holds the projection and the focus poses.
type CameraConfig struct {
	FOV  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`

	OverviewPosition mat32.Vec3 `toml:"overview_position"`
	OverviewTarget   mat32.Vec3 `toml:"overview_target"`

	// The focused camera sits at body + FocusOffset * displayRadius * FocusOffsetFactor.
	FocusOffset       mat32.Vec3 `toml:"focus_offset"`
	FocusOffsetFactor float32    `toml:"focus_offset_factor"`

	FocusDuration     float64 `toml:"focus_duration"`
	StarFocusDuration float64 `toml:"star_focus_duration"`
	OverviewDuration  float64 `toml:"overview_duration"`
	Easing            string  `toml:"easing"`

	OrbitSpeed  float32 `toml:"orbit_speed"` // degrees per pixel of drag
	ZoomSpeed   float32 `toml:"zoom_speed"`  // fraction of distance per scroll step
	MinDistance float32 `toml:"min_distance"`
	MaxDistance float32 `toml:"max_distance"`
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		FOV:               75,
		Near:              0.1,
		Far:               5e8,
		OverviewPosition:  mat32.Vec3{X: 0, Y: 400, Z: 250},
		FocusOffset:       mat32.Vec3{X: -1, Y: 1, Z: -1},
		FocusOffsetFactor: 2,
		FocusDuration:     2,
		StarFocusDuration: 2,
		OverviewDuration:  4,
		Easing:            "quadratic-out",
		OrbitSpeed:        0.25,
		ZoomSpeed:         0.1,
		MinDistance:       1,
		MaxDistance:       5000,
	}
}

// Camera is a perspective camera looking from Pos at Target. The pose
// is kept as a quaternion, the view matrix is its inverse.
type Camera struct {
	Pos    mat32.Vec3
	Target mat32.Vec3
	Up     mat32.Vec3
	Quat   mat32.Quat

	FOV    float32 // degrees
	Aspect float32
	Near   float32
	Far    float32

	Width, Height int

	Matrix     mat32.Mat4
	ViewMatrix mat32.Mat4
	PrjnMatrix mat32.Mat4

	minDist, maxDist float32
}

// NewCamera returns a camera at the overview pose.
func NewCamera(cfg CameraConfig) *Camera {
	cam := &Camera{
		Pos:     cfg.OverviewPosition,
		FOV:     cfg.FOV,
		Aspect:  1,
		Near:    cfg.Near,
		Far:     cfg.Far,
		minDist: cfg.MinDistance,
		maxDist: cfg.MaxDistance,
	}
	cam.LookAt(cfg.OverviewTarget, mat32.Vec3Y)
	cam.UpdateMatrix()
	return cam
}

// SetViewport records the framebuffer size and recomputes the aspect
// ratio. A zero size (minimized window) is ignored.
func (cam *Camera) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	cam.Width, cam.Height = w, h
	cam.Aspect = float32(w) / float32(h)
	cam.UpdateMatrix()
}

// LookAt points the camera at target and records target and up for
// later orbit moves.
func (cam *Camera) LookAt(target, up mat32.Vec3) {
	cam.Target = target
	if up.IsNil() {
		up = mat32.Vec3Y
	}
	cam.Up = up
	if cam.Pos.Sub(target).IsNil() {
		return
	}
	cam.Quat.SetFromRotationMatrix(mat32.NewLookAt(cam.Pos, target, up))
}

// UpdateMatrix rebuilds the view and projection matrices.
func (cam *Camera) UpdateMatrix() {
	cam.Matrix.SetTransform(cam.Pos, cam.Quat, mat32.Vec3{X: 1, Y: 1, Z: 1})
	cam.ViewMatrix.SetInverse(&cam.Matrix)
	cam.PrjnMatrix.SetPerspective(cam.FOV, cam.Aspect, cam.Near, cam.Far)
}

// ViewProjection returns projection * view.
func (cam *Camera) ViewProjection() mat32.Mat4 {
	var vp mat32.Mat4
	vp.MulMatrices(&cam.PrjnMatrix, &cam.ViewMatrix)
	return vp
}

// ViewVector is the vector from the target to the camera.
func (cam *Camera) ViewVector() mat32.Vec3 {
	return cam.Pos.Sub(cam.Target)
}

func (cam *Camera) Distance() float32 {
	return cam.ViewVector().Length()
}

// Orbit rotates the camera around the target by delX degrees about the
// up vector and delY degrees about the camera's right vector, keeping
// the distance to the target.
func (cam *Camera) Orbit(delX, delY float32) {
	ctdir := cam.ViewVector()
	if ctdir.IsNil() {
		ctdir.Set(0, 0, 1)
	}
	dir := ctdir.Normal()
	right := cam.Up.Cross(dir).Normal()

	dxq := mat32.NewQuatAxisAngle(cam.Up, mat32.DegToRad(delX))
	dx := ctdir.MulQuat(dxq).Sub(ctdir)
	dyq := mat32.NewQuatAxisAngle(right, mat32.DegToRad(delY))
	dy := ctdir.MulQuat(dyq).Sub(ctdir)

	cam.Pos = cam.Pos.Add(dx).Add(dy)
	cam.Up.SetMulQuat(dyq)
	cam.LookAt(cam.Target, cam.Up)
}

// Zoom moves the camera along the view axis by pct of the current
// distance, positive moving away, clamped to the configured range.
func (cam *Camera) Zoom(pct float32) {
	ctaxis := cam.ViewVector()
	if ctaxis.IsNil() {
		ctaxis.Set(0, 0, 1)
	}
	dist := ctaxis.Length()
	nd := dist * (1 + pct)
	if cam.minDist > 0 && nd < cam.minDist {
		nd = cam.minDist
	}
	if cam.maxDist > 0 && nd > cam.maxDist {
		nd = cam.maxDist
	}
	cam.Pos = cam.Target.Add(ctaxis.Normal().MulScalar(nd))
}
