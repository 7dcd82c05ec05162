package solar

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm   = 6371.0
	moonDistanceMkm = 0.384
)

// DisplayScale maps physical sizes to scene units. Radii and orbit
// distances are compressed independently with power laws so the inner
// and outer planets are on screen together; nothing here is to scale.
//
//	radius    = EarthRadius * (km / 6371)^RadiusExponent   (planets, moons)
//	radius    = StarRadius                                   (primary)
//	orbit     = DistanceScale * mkm^DistanceExponent         (planets)
//	satellite = parentRadius + SatelliteGap * sqrt(mkm / 0.384)
type DisplayScale struct {
	StarRadius        float64 `toml:"star_radius"`
	EarthRadius       float64 `toml:"earth_radius"`
	RadiusExponent    float64 `toml:"radius_exponent"`
	DistanceScale     float64 `toml:"distance_scale"`
	DistanceExponent  float64 `toml:"distance_exponent"`
	SatelliteGap      float64 `toml:"satellite_gap"`
	OrbitBaseSegments int     `toml:"orbit_base_segments"`
}

// DefaultDisplayScale puts Mercury's orbit at about 35 units and
// Neptune's at about 590, with a 12 unit sun and a 2 unit Earth.
func DefaultDisplayScale() DisplayScale {
	return DisplayScale{
		StarRadius:        12,
		EarthRadius:       2,
		RadiusExponent:    0.5,
		DistanceScale:     2.5,
		DistanceExponent:  0.65,
		SatelliteGap:      2,
		OrbitBaseSegments: 750,
	}
}

func (s DisplayScale) Validate() error {
	fields := [...]struct {
		name string
		v    float64
	}{
		{"star radius", s.StarRadius},
		{"earth radius", s.EarthRadius},
		{"radius exponent", s.RadiusExponent},
		{"distance scale", s.DistanceScale},
		{"distance exponent", s.DistanceExponent},
		{"satellite gap", s.SatelliteGap},
	}
	for _, f := range fields {
		if err := checkPositive("display", f.name, f.v); err != nil {
			return err
		}
	}
	if s.OrbitBaseSegments < 3 {
		return &BuildError{Body: "display", Field: "orbit base segments", Reason: fmt.Sprintf("must be at least 3, got %d", s.OrbitBaseSegments)}
	}
	return nil
}

// Radius returns the display radius of a planet or moon.
func (s DisplayScale) Radius(km float64) float64 {
	return s.EarthRadius * math.Pow(km/earthRadiusKm, s.RadiusExponent)
}

// OrbitDistance returns the display orbit radius of a planet.
func (s DisplayScale) OrbitDistance(mkm float64) float64 {
	return s.DistanceScale * math.Pow(mkm, s.DistanceExponent)
}

// SatelliteDistance returns the display orbit radius of a moon around a
// parent drawn with parentRadius.
func (s DisplayScale) SatelliteDistance(parentRadius, mkm float64) float64 {
	return parentRadius + s.SatelliteGap*math.Sqrt(mkm/moonDistanceMkm)
}

// OrbitSegments returns the polyline resolution of an orbit path.
func (s DisplayScale) OrbitSegments(distance float64) int {
	return s.OrbitBaseSegments + int(distance)
}
