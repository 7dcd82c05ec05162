package solar

import (
	"errors"
	"math"
	"testing"

	"github.com/goki/mat32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDefault(t *testing.T) *SolarSystemScene {
	t.Helper()
	s, err := Build(defaultCatalog(t), DefaultDisplayScale())
	require.NoError(t, err)
	return s
}

func body(t *testing.T, s *SolarSystemScene, id string) *Body {
	t.Helper()
	b, ok := s.Body(id)
	require.True(t, ok, "no body %q", id)
	return b
}

func assertVec(t *testing.T, want, got mat32.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func TestBuildHierarchy(t *testing.T) {
	s := buildDefault(t)

	sun := s.Primary()
	assert.Equal(t, "sun", sun.ID())
	assert.True(t, sun.IsPrimary())
	assert.Same(t, s.System, sun.Node.Parent())
	assert.Nil(t, sun.OrbitPath)
	assert.True(t, sun.Node.Render.Unlit)

	mercury := body(t, s, "mercury")
	assert.Same(t, mercury.Pivot, mercury.Node.Parent())
	assert.Same(t, s.System, mercury.Pivot.Parent())
	assert.Same(t, s.System, mercury.OrbitPath.Parent())
	assert.Nil(t, mercury.Group)
	assert.Equal(t, NodePivot, mercury.Pivot.Kind)
	assert.Nil(t, mercury.Pivot.Render)

	earth := body(t, s, "earth")
	require.NotNil(t, earth.Group)
	assert.Same(t, earth.Pivot, earth.Group.Parent())
	assert.Same(t, earth.Group, earth.Node.Parent())

	moon := body(t, s, "moon")
	assert.Same(t, earth, moon.Parent)
	assert.Same(t, earth.Group, moon.Pivot.Parent(), "moon pivot is owned by the earth group")
	assert.Same(t, moon.Pivot, moon.Node.Parent())
	assert.Equal(t, earth.Node.Pos, moon.Pivot.Pos)
	assert.InDelta(t, degToRad(5.145), moon.Pivot.Tilt, 1e-9)

	var ids []string
	for i, b := range s.Bodies() {
		assert.Equal(t, i, b.Index)
		ids = append(ids, b.ID())
	}
	assert.Equal(t, []string{"sun", "mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune", "moon"}, ids)
	assert.Same(t, earth, s.Reference())

	_, ok := s.Body("pluto")
	assert.False(t, ok)
}

func TestBuildDisplayScale(t *testing.T) {
	s := buildDefault(t)

	assert.InDelta(t, 12, s.Primary().DisplayRadius, 1e-9)
	assert.InDelta(t, 2, body(t, s, "earth").DisplayRadius, 1e-9)
	assert.InDelta(t, 35, body(t, s, "mercury").DisplayDistance, 1)
	assert.InDelta(t, 592, body(t, s, "neptune").DisplayDistance, 5)
	assert.InDelta(t, 4, body(t, s, "moon").DisplayDistance, 1e-6)

	prev := 0.0
	for _, b := range s.Bodies() {
		if b.IsPrimary() || b.Parent != nil {
			continue
		}
		assert.Greater(t, b.DisplayDistance, prev, b.ID())
		prev = b.DisplayDistance

		assert.InDelta(t, b.DisplayDistance, b.Node.Pos.Z, 1e-3)
		assert.InDelta(t, b.DisplayDistance, b.OrbitPath.Render.Radius, 1e-3)
		assert.Equal(t, 750+int(b.DisplayDistance), b.OrbitPath.Render.Segments)
		assert.InDelta(t, degToRad(b.Desc.OrbitInclination), b.Pivot.Tilt, 1e-9)
		assert.Equal(t, b.Pivot.Tilt, b.OrbitPath.Tilt)
		assert.InDelta(t, degToRad(b.Desc.AxialTilt), b.Node.Tilt, 1e-9)
		assert.InDelta(t, b.DisplayRadius, b.Node.Scale, 1e-6)
	}
}

func TestBuildRingAndClouds(t *testing.T) {
	s := buildDefault(t)

	saturn := body(t, s, "saturn")
	require.Len(t, saturn.Node.Children(), 1)
	ring := saturn.Node.Children()[0]
	assert.Equal(t, NodeRing, ring.Kind)
	assert.InDelta(t, math.Pi/2, ring.Tilt, 1e-9)
	assert.InDelta(t, 1.2, ring.Render.Inner, 1e-6)
	assert.InDelta(t, 1.7, ring.Render.Outer, 1e-6)
	assert.Equal(t, 80, ring.Render.Segments)
	assert.Equal(t, "textures/rings_color_map.png", ring.Render.Texture)

	earth := body(t, s, "earth")
	require.Len(t, earth.Node.Children(), 1)
	clouds := earth.Node.Children()[0]
	assert.Equal(t, NodeAtmosphere, clouds.Kind)
	assert.InDelta(t, 0.9, clouds.Render.Opacity, 1e-6)

	assert.Empty(t, body(t, s, "mars").Node.Children())
}

func TestBuildLights(t *testing.T) {
	s := buildDefault(t)
	lights := s.Lights()
	require.Len(t, lights, 6)

	star := lights[0]
	assert.Equal(t, LightPoint, star.Light.Kind)
	assert.Same(t, s.Primary().Node, star.Parent())
	assert.InDelta(t, 1.5, s.LightIntensity(), 1e-6)
	s.SetLightIntensity(3)
	assert.InDelta(t, 3, star.Light.Intensity, 1e-6)

	var ambient int
	seen := map[mat32.Vec3]bool{}
	for _, n := range lights[1:] {
		switch n.Light.Kind {
		case LightAmbient:
			ambient++
			assert.InDelta(t, 0.07, n.Light.Intensity, 1e-6)
		case LightDirectional:
			assert.InDelta(t, 0.02, n.Light.Intensity, 1e-6)
			assert.InDelta(t, 1000, n.Pos.Length(), 1e-3)
			seen[n.Pos] = true
		}
	}
	assert.Equal(t, 1, ambient)
	assert.Len(t, seen, 4, "fill lights sit on four distinct axes")
	for _, p := range fillPositions {
		assert.True(t, seen[p], "%v", p)
	}
}

func TestBuildWorldPositions(t *testing.T) {
	s := buildDefault(t)
	earth := body(t, s, "earth")
	moon := body(t, s, "moon")
	d := float32(earth.DisplayDistance)

	assertVec(t, mat32.Vec3{Z: d}, earth.WorldPos(), 1e-3)

	incl := degToRad(moon.Desc.OrbitInclination)
	md := moon.DisplayDistance
	want := mat32.Vec3{Y: float32(-md * math.Sin(incl)), Z: d + float32(md*math.Cos(incl))}
	assertVec(t, want, moon.WorldPos(), 1e-3)

	earth.Pivot.Angle = math.Pi / 2
	s.UpdateWorld()
	assertVec(t, mat32.Vec3{X: d}, earth.WorldPos(), 1e-3)
	assert.InDelta(t, d, moon.WorldPos().X, md+1e-3, "moon travels with earth")
}

func TestBuildRejectsWithoutPartialScene(t *testing.T) {
	cat := defaultCatalog(t)
	cat.Planets[3].Radius = -5
	s, err := Build(cat, DefaultDisplayScale())
	assert.Nil(t, s)
	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "mars", be.Body)

	scale := DefaultDisplayScale()
	scale.OrbitBaseSegments = 0
	s, err = Build(defaultCatalog(t), scale)
	assert.Nil(t, s)
	assert.True(t, errors.As(err, &be))
}

func TestBuildRejectsOverlappingOrbits(t *testing.T) {
	scale := DefaultDisplayScale()
	scale.EarthRadius = 20
	s, err := Build(defaultCatalog(t), scale)
	assert.Nil(t, s)
	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "distance", be.Field)

	scale = DefaultDisplayScale()
	scale.StarRadius = 40
	_, err = Build(defaultCatalog(t), scale)
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "mercury", be.Body)
}

func TestBuildCopiesCatalog(t *testing.T) {
	cat := defaultCatalog(t)
	s, err := Build(cat, DefaultDisplayScale())
	require.NoError(t, err)

	cat.Planets[5].Name = "Changed"
	cat.Planets[5].Ring.Texture = "other.png"
	saturn := body(t, s, "saturn")
	assert.Equal(t, "Saturn", saturn.Desc.Name)
	assert.Equal(t, "textures/rings_color_map.png", saturn.Desc.Ring.Texture)
}

func TestOrbitHighlight(t *testing.T) {
	s := buildDefault(t)
	paths := s.OrbitPaths()
	require.Len(t, paths, 9)
	for _, p := range paths {
		assert.Equal(t, Palette.OrbitNeutral, p.Render.Color)
	}

	s.SetOrbitHighlight(true)
	assert.True(t, s.OrbitHighlight())
	assert.Equal(t, RGB{R: 0xFF}, body(t, s, "mercury").OrbitPath.Render.Color)
	assert.Equal(t, RGB{R: 0xFF, G: 0xFF}, body(t, s, "earth").OrbitPath.Render.Color)
	assert.Equal(t, RGB{G: 0x80}, body(t, s, "moon").OrbitPath.Render.Color)

	s.SetOrbitHighlight(false)
	for _, p := range paths {
		assert.Equal(t, Palette.OrbitNeutral, p.Render.Color)
	}
}

func TestHighlightFallsBackToPalette(t *testing.T) {
	cat := defaultCatalog(t)
	cat.Planets[1].OrbitColor = ""
	s, err := Build(cat, DefaultDisplayScale())
	require.NoError(t, err)
	assert.Equal(t, Palette.Highlight[1], body(t, s, "venus").HighlightColour())
}

func TestNodeTree(t *testing.T) {
	a := NewNode("a", NodeGroup)
	b := NewNode("b", NodeGroup)
	c := NewNode("c", NodeGroup)
	require.NoError(t, a.AddChild(b))
	require.NoError(t, b.AddChild(c))

	assert.Error(t, a.AddChild(c), "second parent")
	assert.Error(t, c.AddChild(a), "cycle")

	var names []string
	a.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)

	b.Destroy()
	assert.Empty(t, a.Children())
	assert.Nil(t, b.Parent())
	assert.Nil(t, c.Parent())
	assert.Empty(t, b.Children())

	require.NoError(t, a.AddChild(c), "destroyed nodes can be reattached")
}
