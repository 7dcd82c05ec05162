package solar

import (
	"fmt"
	"math"
)

// RateConfig holds the angular rates of the reference body at speed 1, in
// radians per second. Every other body's rate is scaled by the ratio of
// its period to the reference period.
type RateConfig struct {
	OrbitRate float64 `toml:"orbit_rate"`
	SpinRate  float64 `toml:"spin_rate"`
}

// DefaultRates give Earth one revolution in about 105 s and one spin per
// second.
func DefaultRates() RateConfig {
	return RateConfig{OrbitRate: 0.06, SpinRate: 6}
}

type clockEntry struct {
	body  *Body
	orbit float64 // rad/s, 0 for the primary
	spin  float64 // rad/s, negative spins retrograde
}

// Clock advances the orbit and spin angles of every body in a scene.
type Clock struct {
	scene   *SolarSystemScene
	entries []clockEntry
	index   map[string]int
	elapsed float64
	next    []float64
}

func NewClock(scene *SolarSystemScene, rates RateConfig) (*Clock, error) {
	if !finite(rates.OrbitRate) || !finite(rates.SpinRate) {
		return nil, fmt.Errorf("clock rates: %w", ErrNonFinite)
	}
	ref := scene.Reference().Desc
	c := &Clock{
		scene: scene,
		index: make(map[string]int, len(scene.Bodies())),
	}
	for _, b := range scene.Bodies() {
		e := clockEntry{body: b, spin: rates.SpinRate * ref.RotationDuration / b.Desc.RotationDuration}
		if !b.IsPrimary() {
			e.orbit = rates.OrbitRate * ref.OrbitDuration / b.Desc.OrbitDuration
		}
		c.index[b.ID()] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	c.next = make([]float64, 2*len(c.entries))
	return c, nil
}

// Advance moves every angle forward by rate*speed*dt. Non-positive or
// non-finite dt is ignored. If any angle would become non-finite nothing
// is changed and an error wrapping ErrNonFinite is returned.
func (c *Clock) Advance(dt, speed float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil
	}
	for i, e := range c.entries {
		spin := wrapAngle(e.body.Node.Angle + e.spin*speed*dt)
		orbit := 0.0
		if e.body.Pivot != nil {
			orbit = wrapAngle(e.body.Pivot.Angle + e.orbit*speed*dt)
		}
		if !finite(spin) || !finite(orbit) {
			return fmt.Errorf("advance %q by %g at speed %g: %w", e.body.ID(), dt, speed, ErrNonFinite)
		}
		c.next[2*i], c.next[2*i+1] = orbit, spin
	}
	for i, e := range c.entries {
		if e.body.Pivot != nil {
			e.body.Pivot.Angle = c.next[2*i]
		}
		e.body.Node.Angle = c.next[2*i+1]
	}
	c.elapsed += dt * speed
	return nil
}

// Elapsed returns the simulated time in seconds at speed 1.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// OrbitRate returns the orbit rate of a body in rad/s at speed 1.
func (c *Clock) OrbitRate(id string) (float64, bool) {
	i, ok := c.index[id]
	if !ok {
		return 0, false
	}
	return c.entries[i].orbit, true
}

// SpinRate returns the spin rate of a body in rad/s at speed 1.
func (c *Clock) SpinRate(id string) (float64, bool) {
	i, ok := c.index[id]
	if !ok {
		return 0, false
	}
	return c.entries[i].spin, true
}

// OrbitalPeriod returns the seconds one revolution takes at speed 1. It
// reports false for unknown ids and for the primary.
func (c *Clock) OrbitalPeriod(id string) (float64, bool) {
	r, ok := c.OrbitRate(id)
	if !ok || r == 0 {
		return 0, false
	}
	return twoPi / r, true
}
