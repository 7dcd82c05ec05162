package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarsystem/internal/solar"
)

var names = []string{"Sun", "Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Moon"}

func center(r Rect) (float32, float32) { return r.X + r.W/2, r.Y + r.H/2 }

func TestLayoutHitTest(t *testing.T) {
	l := NewLayout(1280, 800, names, 1)
	require.Len(t, l.List, len(names))

	for i, r := range l.List {
		x, y := center(r)
		assert.Equal(t, Hit{Kind: HitBody, Index: i}, l.HitTest(x, y), names[i])
	}
	x, y := center(l.Overview)
	assert.Equal(t, Hit{Kind: HitOverview}, l.HitTest(x, y))
	x, y = center(l.Highlight)
	assert.Equal(t, Hit{Kind: HitHighlight}, l.HitTest(x, y))
	for i, s := range l.Sliders {
		x, y = center(s.Track)
		assert.Equal(t, Hit{Kind: HitSlider, Index: i}, l.HitTest(x, y))
	}
	assert.Equal(t, Hit{Kind: HitNone}, l.HitTest(640, 400))
	assert.Equal(t, Hit{Kind: HitNone}, l.HitTest(-5, -5))
}

func TestLayoutNoOverlap(t *testing.T) {
	l := NewLayout(1280, 800, names, 1.5)
	rects := append([]Rect{}, l.List...)
	rects = append(rects, l.Overview, l.Highlight, l.Sliders[0].Track, l.Sliders[1].Track, l.Info)
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			overlap := a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
			assert.False(t, overlap, "%d overlaps %d", i, j)
		}
	}
	assert.LessOrEqual(t, l.Info.X+l.Info.W, float32(1280))
	assert.LessOrEqual(t, l.Sliders[SliderLight].Track.Y+l.Sliders[SliderLight].Track.H, float32(800))
}

func TestSlider(t *testing.T) {
	s := Slider{Min: 0, Max: 5, Step: 0.1, Track: Rect{X: 100, Y: 0, W: 200, H: 10}}
	assert.Equal(t, 0.0, s.ValueAt(50))
	assert.Equal(t, 5.0, s.ValueAt(400))
	assert.InDelta(t, 2.5, s.ValueAt(200), 1e-9)
	assert.InDelta(t, 1.2, s.ValueAt(148), 1e-9)

	assert.Equal(t, float32(100), s.KnobX(0))
	assert.Equal(t, float32(300), s.KnobX(5))
	assert.Equal(t, float32(300), s.KnobX(9))
	assert.InDelta(t, 160, s.KnobX(1.5), 1e-4)
}

func TestPointerDrag(t *testing.T) {
	l := NewLayout(1280, 800, names, 1)
	var p Pointer

	x, y := center(l.List[3])
	assert.Equal(t, Hit{Kind: HitBody, Index: 3}, p.Press(l, x, y))
	assert.False(t, p.Captured())

	x, y = center(l.Sliders[SliderSpeed].Track)
	p.Press(l, x, y)
	idx, ok := p.Dragging()
	assert.True(t, ok)
	assert.Equal(t, SliderSpeed, idx)
	assert.True(t, p.Captured())

	p.Release()
	_, ok = p.Dragging()
	assert.False(t, ok)
}

func TestInfoLines(t *testing.T) {
	cat, err := solar.DefaultCatalog()
	require.NoError(t, err)

	lines := InfoLines(&cat.Planets[2])
	require.Len(t, lines, 8)
	assert.Equal(t, "Earth", lines[0])
	assert.Equal(t, "Radius:      6371 km", lines[1])
	assert.Equal(t, "Distance:    149.6 million km", lines[2])
	assert.Equal(t, "Orbit:       365.25 days", lines[3])
	assert.Equal(t, "Satellites:  1", lines[7])

	sun := InfoLines(&cat.Primary)
	assert.Equal(t, "Distance:    -", sun[2])

	assert.Nil(t, InfoLines(nil))
}

func TestPanelAndToast(t *testing.T) {
	var p Panel
	var _ solar.InfoDisplay = &p
	cat, err := solar.DefaultCatalog()
	require.NoError(t, err)

	p.ShowDescriptor(&cat.Moons[0])
	assert.True(t, p.Open)
	assert.Equal(t, "Moon", p.Lines[0])
	p.Hide()
	assert.False(t, p.Open)

	var toast Toast
	toast.Show("unknown body", 1)
	assert.True(t, toast.Visible())
	toast.Update(0.6)
	assert.True(t, toast.Visible())
	toast.Update(0.6)
	assert.False(t, toast.Visible())
}
