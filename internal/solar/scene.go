package solar

import (
	"fmt"
	"math"

	"github.com/goki/mat32"
)

const (
	ringInner    = 1.2
	ringWidth    = 0.5
	ringSegments = 80
	cloudScale   = 1.02
	cloudOpacity = 0.9
)

// Body is one selectable body in a built scene.
type Body struct {
	Desc  *Descriptor
	Index int // position in selection order, 0 is the primary

	Node      *Node // the body sphere
	Pivot     *Node // orbit pivot, nil for the primary
	Group     *Node // local group holding the body and its moon pivots, nil if it has no moons
	OrbitPath *Node // nil for the primary
	Parent    *Body // nil for planets and the primary

	DisplayRadius   float64
	DisplayDistance float64

	highlight RGB
}

func (b *Body) ID() string { return b.Desc.ID }

// IsPrimary reports whether b is the central star.
func (b *Body) IsPrimary() bool { return b.Pivot == nil }

// WorldPos returns the body centre as of the last Scene.UpdateWorld.
func (b *Body) WorldPos() mat32.Vec3 { return b.Node.WorldPos() }

// HighlightColour is the orbit colour shown while highlighting is on.
func (b *Body) HighlightColour() RGB { return b.highlight }

// SolarSystemScene owns the node tree built from a catalog and the lookup
// from body id to its nodes.
type SolarSystemScene struct {
	Root   *Node
	System *Node

	catalog Catalog
	scale   DisplayScale
	bodies  map[string]*Body
	order   []*Body
	ref     *Body

	star      *Node
	lights    []*Node
	highlight bool
}

// Build validates the catalog and constructs the scene tree. On error no
// scene is returned.
func Build(cat Catalog, scale DisplayScale) (*SolarSystemScene, error) {
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	cat = cat.clone()

	s := &SolarSystemScene{
		Root:    NewNode("scene", NodeGroup),
		System:  NewNode("solar-system", NodeGroup),
		catalog: cat,
		scale:   scale,
		bodies:  make(map[string]*Body, 1+len(cat.Planets)+len(cat.Moons)),
	}
	s.mustAdd(s.Root, s.System)

	s.addPrimary(&s.catalog.Primary)
	for i := range s.catalog.Planets {
		s.addPlanet(&s.catalog.Planets[i])
	}
	for i := range s.catalog.Moons {
		s.addMoon(&s.catalog.Moons[i])
	}
	if err := s.checkSeparation(); err != nil {
		return nil, err
	}

	star, others := newLightNodes()
	s.mustAdd(s.order[0].Node, star)
	for _, n := range others {
		s.mustAdd(s.Root, n)
	}
	s.star = star
	s.lights = append([]*Node{star}, others...)

	s.ref = s.bodies[cat.Reference]
	s.SetOrbitHighlight(false)
	s.UpdateWorld()
	return s, nil
}

// mustAdd is only used on freshly created nodes, where AddChild cannot fail.
func (s *SolarSystemScene) mustAdd(parent, child *Node) {
	if err := parent.AddChild(child); err != nil {
		panic(err)
	}
}

func (s *SolarSystemScene) register(b *Body) {
	b.Index = len(s.order)
	if c := b.Desc.OrbitColor; c != "" {
		b.highlight, _ = ParseHex(c)
	} else if b.Index > 0 {
		b.highlight = Palette.Highlight[(b.Index-1)%len(Palette.Highlight)]
	}
	s.bodies[b.Desc.ID] = b
	s.order = append(s.order, b)
}

func (s *SolarSystemScene) bodyNode(d *Descriptor, radius float64) *Node {
	n := NewNode(d.ID, NodeBody)
	n.Scale = float32(radius)
	n.Tilt = degToRad(d.AxialTilt)
	n.Render = &Renderable{Color: d.Colour(), Texture: d.Texture, BumpMap: d.BumpMap, Opacity: 1}
	if d.Clouds != "" {
		c := NewNode("clouds:"+d.ID, NodeAtmosphere)
		c.Scale = cloudScale
		c.Render = &Renderable{Color: white, Texture: d.Clouds, Opacity: cloudOpacity}
		s.mustAdd(n, c)
	}
	if d.Ring != nil {
		r := NewNode("ring:"+d.ID, NodeRing)
		r.Tilt = math.Pi / 2
		r.Render = &Renderable{
			Color:    d.Colour(),
			Texture:  d.Ring.Texture,
			AlphaMap: d.Ring.AlphaMap,
			Opacity:  1,
			Inner:    ringInner,
			Outer:    ringInner + ringWidth,
			Segments: ringSegments,
		}
		s.mustAdd(n, r)
	}
	return n
}

func (s *SolarSystemScene) orbitPath(id string, tilt, distance float64) *Node {
	p := NewNode("path:"+id, NodeOrbitPath)
	p.Tilt = tilt
	p.Render = &Renderable{
		Color:    Palette.OrbitNeutral,
		Opacity:  1,
		Radius:   float32(distance),
		Segments: s.scale.OrbitSegments(distance),
	}
	return p
}

func (s *SolarSystemScene) addPrimary(d *Descriptor) {
	n := s.bodyNode(d, s.scale.StarRadius)
	n.Tilt = 0
	n.Render.Unlit = true
	s.mustAdd(s.System, n)
	s.register(&Body{Desc: d, Node: n, DisplayRadius: s.scale.StarRadius})
}

func (s *SolarSystemScene) addPlanet(d *Descriptor) {
	radius := s.scale.Radius(d.Radius)
	dist := s.scale.OrbitDistance(d.Distance)
	tilt := degToRad(d.OrbitInclination)

	pivot := NewNode("orbit:"+d.ID, NodePivot)
	pivot.Tilt = tilt
	s.mustAdd(s.System, pivot)

	path := s.orbitPath(d.ID, tilt, dist)
	s.mustAdd(s.System, path)

	n := s.bodyNode(d, radius)
	n.Pos = mat32.Vec3{Z: float32(dist)}

	b := &Body{Desc: d, Node: n, Pivot: pivot, OrbitPath: path, DisplayRadius: radius, DisplayDistance: dist}
	if s.hasMoons(d.ID) {
		b.Group = NewNode("group:"+d.ID, NodeGroup)
		s.mustAdd(pivot, b.Group)
		s.mustAdd(b.Group, n)
	} else {
		s.mustAdd(pivot, n)
	}
	s.register(b)
}

// addMoon hangs the moon's pivot off the parent's group at the parent's
// offset, so the moon revolves around the parent as it orbits.
func (s *SolarSystemScene) addMoon(d *Descriptor) {
	parent := s.bodies[d.Parent]
	radius := s.scale.Radius(d.Radius)
	dist := s.scale.SatelliteDistance(parent.DisplayRadius, d.Distance)
	tilt := degToRad(d.OrbitInclination)

	pivot := NewNode("orbit:"+d.ID, NodePivot)
	pivot.Tilt = tilt
	pivot.Pos = parent.Node.Pos
	s.mustAdd(parent.Group, pivot)

	path := s.orbitPath(d.ID, tilt, dist)
	path.Pos = parent.Node.Pos
	s.mustAdd(parent.Group, path)

	n := s.bodyNode(d, radius)
	n.Pos = mat32.Vec3{Z: float32(dist)}
	s.mustAdd(pivot, n)

	s.register(&Body{Desc: d, Node: n, Pivot: pivot, OrbitPath: path, Parent: parent, DisplayRadius: radius, DisplayDistance: dist})
}

func (s *SolarSystemScene) hasMoons(id string) bool {
	for i := range s.catalog.Moons {
		if s.catalog.Moons[i].Parent == id {
			return true
		}
	}
	return false
}

// extent is the radius of the space a planet and its moons sweep around
// the planet centre.
func (s *SolarSystemScene) extent(b *Body) float64 {
	e := b.DisplayRadius
	for _, m := range s.order {
		if m.Parent == b {
			e = math.Max(e, m.DisplayDistance+m.DisplayRadius)
		}
	}
	return e
}

// checkSeparation rejects display scales under which neighbouring orbits
// overlap, or a moon would sit inside its parent.
func (s *SolarSystemScene) checkSeparation() error {
	inner := s.scale.StarRadius
	var prev *Body
	for _, b := range s.order {
		switch {
		case b.IsPrimary():
			continue
		case b.Parent != nil:
			if b.DisplayDistance-b.Parent.DisplayRadius <= b.DisplayRadius {
				return &BuildError{Body: b.ID(), Field: "distance", Reason: "places the moon inside its parent at this display scale"}
			}
			continue
		}
		ext := s.extent(b)
		if b.DisplayDistance-ext <= inner {
			what := "the star"
			if prev != nil {
				what = fmt.Sprintf("the orbit of %q", prev.ID())
			}
			return &BuildError{Body: b.ID(), Field: "distance", Reason: "overlaps " + what + " at this display scale"}
		}
		inner = b.DisplayDistance + ext
		prev = b
	}
	return nil
}

func (c Catalog) clone() Catalog {
	out := c
	out.Primary = c.Primary.clone()
	out.Planets = make([]Descriptor, len(c.Planets))
	for i := range c.Planets {
		out.Planets[i] = c.Planets[i].clone()
	}
	out.Moons = make([]Descriptor, len(c.Moons))
	for i := range c.Moons {
		out.Moons[i] = c.Moons[i].clone()
	}
	return out
}

func (d Descriptor) clone() Descriptor {
	if d.Ring != nil {
		r := *d.Ring
		d.Ring = &r
	}
	return d
}

// Body returns the body with the given id.
func (s *SolarSystemScene) Body(id string) (*Body, bool) {
	b, ok := s.bodies[id]
	return b, ok
}

// Bodies returns all bodies in selection order: primary, planets, moons.
func (s *SolarSystemScene) Bodies() []*Body { return s.order }

func (s *SolarSystemScene) Primary() *Body { return s.order[0] }

// Reference is the body whose periods define the base rates.
func (s *SolarSystemScene) Reference() *Body { return s.ref }

func (s *SolarSystemScene) Scale() DisplayScale { return s.scale }

// UpdateWorld recomputes every world matrix from the current angles.
func (s *SolarSystemScene) UpdateWorld() { s.Root.UpdateWorld(nil) }

// Lights returns the star light first, then the ambient and fill lights.
func (s *SolarSystemScene) Lights() []*Node { return s.lights }

func (s *SolarSystemScene) LightIntensity() float32 { return s.star.Light.Intensity }

func (s *SolarSystemScene) SetLightIntensity(v float32) { s.star.Light.Intensity = v }

// SetOrbitHighlight recolours every orbit path.
func (s *SolarSystemScene) SetOrbitHighlight(on bool) {
	s.highlight = on
	for _, b := range s.order {
		if b.OrbitPath == nil {
			continue
		}
		if on {
			b.OrbitPath.Render.Color = b.highlight
		} else {
			b.OrbitPath.Render.Color = Palette.OrbitNeutral
		}
	}
}

func (s *SolarSystemScene) OrbitHighlight() bool { return s.highlight }

// OrbitPaths returns the orbit path nodes in selection order.
func (s *SolarSystemScene) OrbitPaths() []*Node {
	out := make([]*Node, 0, len(s.order))
	for _, b := range s.order {
		if b.OrbitPath != nil {
			out = append(out, b.OrbitPath)
		}
	}
	return out
}
