package solar

import (
	"fmt"
	"math"

	"github.com/goki/mat32"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func QuadraticOut(t float64) float64 { return t * (2 - t) }

func QuadraticInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func CubicOut(t float64) float64 {
	t--
	return t*t*t + 1
}

// EasingByName resolves the names accepted in the camera config.
func EasingByName(name string) (Easing, error) {
	switch name {
	case "linear":
		return Linear, nil
	case "", "quadratic-out":
		return QuadraticOut, nil
	case "quadratic-in-out":
		return QuadraticInOut, nil
	case "cubic-out":
		return CubicOut, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

// Progress returns the eased progress after elapsed of duration seconds.
// A zero or negative duration is already complete.
func Progress(duration, elapsed float64, ease Easing) float64 {
	if !(duration > 0) {
		return 1
	}
	t := clampF(elapsed/duration, 0, 1)
	if math.IsNaN(t) {
		t = 0
	}
	if ease == nil {
		ease = Linear
	}
	return ease(t)
}

// Interpolate returns the point between from and to after elapsed seconds.
func Interpolate(from, to mat32.Vec3, duration, elapsed float64, ease Easing) mat32.Vec3 {
	p := Progress(duration, elapsed, ease)
	if p >= 1 {
		return to
	}
	return from.Add(to.Sub(from).MulScalar(float32(p)))
}

// Tween moves a vector from From to To over Duration seconds.
type Tween struct {
	From, To mat32.Vec3
	Duration float64
	Elapsed  float64
	Ease     Easing
}

func NewTween(from, to mat32.Vec3, duration float64, ease Easing) Tween {
	return Tween{From: from, To: to, Duration: duration, Ease: ease}
}

// Step advances the tween by dt seconds and returns the new value.
func (t *Tween) Step(dt float64) mat32.Vec3 {
	if dt > 0 && !math.IsInf(dt, 0) {
		t.Elapsed += dt
	}
	return t.Value()
}

func (t *Tween) Value() mat32.Vec3 {
	return Interpolate(t.From, t.To, t.Duration, t.Elapsed, t.Ease)
}

func (t *Tween) Done() bool {
	return !(t.Duration > 0) || t.Elapsed >= t.Duration
}
