package solar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed bodies.toml
var bodiesTOML []byte

// Ring describes the textures of a planetary ring.
type Ring struct {
	Texture  string `toml:"texture"`
	AlphaMap string `toml:"alpha_map"`
}

// Descriptor is the static physical and presentation data of one body.
type Descriptor struct {
	ID                 string  `toml:"id"`
	Name               string  `toml:"name"`
	Parent             string  `toml:"parent"`
	Radius             float64 `toml:"radius_km"`
	Distance           float64 `toml:"distance_mkm"`
	OrbitDuration      float64 `toml:"orbit_days"`
	RotationDuration   float64 `toml:"rotation_hours"` // negative spins retrograde
	OrbitInclination   float64 `toml:"orbit_inclination_deg"`
	AxialTilt          float64 `toml:"axial_tilt_deg"`
	SurfaceTemperature float64 `toml:"surface_temperature_c"`
	Satellites         int     `toml:"satellites"`

	Color      string `toml:"color"`
	OrbitColor string `toml:"orbit_color"`
	Texture    string `toml:"texture"`
	BumpMap    string `toml:"bump_map"`
	Clouds     string `toml:"clouds"`
	Sound      string `toml:"sound"`
	Ring       *Ring  `toml:"ring"`
}

// Colour returns the flat colour used before (or instead of) the texture.
func (d *Descriptor) Colour() RGB {
	if d.Color == "" {
		return Palette.Placeholder
	}
	c, err := ParseHex(d.Color)
	if err != nil {
		return Palette.Placeholder
	}
	return c
}

// Catalog is the full body table: one primary, the planets ordered by
// distance, and the moons, each naming its parent planet.
type Catalog struct {
	Reference string       `toml:"reference"`
	Primary   Descriptor   `toml:"primary"`
	Planets   []Descriptor `toml:"planet"`
	Moons     []Descriptor `toml:"moon"`
}

// DefaultCatalog returns the embedded solar system table.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(bytes.NewReader(bodiesTOML))
}

// LoadCatalog reads a body table from a TOML file.
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// ParseCatalog decodes a body table. It does not validate; Build does.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var cat Catalog
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cat); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if cat.Reference == "" {
		cat.Reference = "earth"
	}
	return cat, nil
}

// All returns every descriptor in selection order: primary, planets, moons.
func (c *Catalog) All() []*Descriptor {
	out := make([]*Descriptor, 0, 1+len(c.Planets)+len(c.Moons))
	out = append(out, &c.Primary)
	for i := range c.Planets {
		out = append(out, &c.Planets[i])
	}
	for i := range c.Moons {
		out = append(out, &c.Moons[i])
	}
	return out
}

// Validate checks the whole table and reports the first malformed
// descriptor as a *BuildError.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	checkID := func(d *Descriptor) error {
		if d.ID == "" {
			return &BuildError{Body: d.Name, Field: "id", Reason: "is empty"}
		}
		if seen[d.ID] {
			return &BuildError{Body: d.ID, Field: "id", Reason: "is duplicated"}
		}
		seen[d.ID] = true
		return nil
	}

	p := &c.Primary
	if p.ID == "" && p.Radius == 0 {
		return &BuildError{Body: "primary", Reason: "is missing"}
	}
	if err := checkID(p); err != nil {
		return err
	}
	if err := checkPositive(p.ID, "radius", p.Radius); err != nil {
		return err
	}
	if err := checkNonZero(p.ID, "rotation duration", p.RotationDuration); err != nil {
		return err
	}
	if err := checkColours(p); err != nil {
		return err
	}

	planets := make(map[string]bool, len(c.Planets))
	prev := 0.0
	for i := range c.Planets {
		d := &c.Planets[i]
		if err := checkID(d); err != nil {
			return err
		}
		if err := checkOrbiting(d); err != nil {
			return err
		}
		if d.Distance <= prev {
			return &BuildError{Body: d.ID, Field: "distance", Reason: "must increase along the planet list"}
		}
		prev = d.Distance
		planets[d.ID] = true
	}

	for i := range c.Moons {
		d := &c.Moons[i]
		if err := checkID(d); err != nil {
			return err
		}
		if !planets[d.Parent] {
			return &BuildError{Body: d.ID, Field: "parent", Reason: fmt.Sprintf("%q is not a planet", d.Parent)}
		}
		if err := checkOrbiting(d); err != nil {
			return err
		}
	}

	if ref := c.find(c.Reference); ref == nil || ref == p {
		return &BuildError{Body: c.Reference, Field: "reference", Reason: "must name an orbiting body"}
	}
	return nil
}

func (c *Catalog) find(id string) *Descriptor {
	for _, d := range c.All() {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func checkOrbiting(d *Descriptor) error {
	if err := checkPositive(d.ID, "radius", d.Radius); err != nil {
		return err
	}
	if err := checkPositive(d.ID, "distance", d.Distance); err != nil {
		return err
	}
	if err := checkPositive(d.ID, "orbit duration", d.OrbitDuration); err != nil {
		return err
	}
	if err := checkNonZero(d.ID, "rotation duration", d.RotationDuration); err != nil {
		return err
	}
	if math.IsNaN(d.OrbitInclination) || math.IsInf(d.OrbitInclination, 0) {
		return &BuildError{Body: d.ID, Field: "orbit inclination", Reason: "is not finite"}
	}
	if math.IsNaN(d.AxialTilt) || math.IsInf(d.AxialTilt, 0) {
		return &BuildError{Body: d.ID, Field: "axial tilt", Reason: "is not finite"}
	}
	return checkColours(d)
}

func checkColours(d *Descriptor) error {
	fields := [...]struct{ name, value string }{
		{"color", d.Color},
		{"orbit color", d.OrbitColor},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := ParseHex(f.value); err != nil {
			return &BuildError{Body: d.ID, Field: f.name, Reason: err.Error()}
		}
	}
	return nil
}

func checkPositive(id, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &BuildError{Body: id, Field: field, Reason: "is not finite"}
	}
	if v <= 0 {
		return &BuildError{Body: id, Field: field, Reason: fmt.Sprintf("must be positive, got %g", v)}
	}
	return nil
}

func checkNonZero(id, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &BuildError{Body: id, Field: field, Reason: "is not finite"}
	}
	if v == 0 {
		return &BuildError{Body: id, Field: field, Reason: "must not be zero"}
	}
	return nil
}
