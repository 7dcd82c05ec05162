package solar

import "math"

const twoPi = 2 * math.Pi

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// wrapAngle maps a to [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a -= twoPi
	}
	return a
}

// angDiff returns the signed shortest difference b-a in (-π, π].
func angDiff(a, b float64) float64 {
	d := math.Remainder(b-a, twoPi)
	if d <= -math.Pi {
		d += twoPi
	}
	return d
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
