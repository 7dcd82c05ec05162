// Package ui lays out the heads-up display and maps pointer positions to
// controls. It holds no GL state so the layout can be tested headless.
package ui

import (
	"math"

	"solarsystem/internal/solar"
)

// Glyph cell of the HUD font atlas (basicfont 7x13) at scale 1.
const (
	CellW = 7
	CellH = 13
)

const (
	margin  = 12
	padding = 6
	rowGap  = 4
)

// Slider indices in Layout.Sliders.
const (
	SliderSpeed = iota
	SliderLight
)

type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Inset(d float32) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Slider maps a horizontal track to [Min, Max] in Step increments.
type Slider struct {
	Label          string
	Min, Max, Step float64
	Track          Rect
}

// ValueAt returns the slider value under screen x, clamped and snapped.
func (s Slider) ValueAt(x float32) float64 {
	if s.Track.W <= 0 {
		return s.Min
	}
	t := float64((x - s.Track.X) / s.Track.W)
	t = math.Max(0, math.Min(1, t))
	v := s.Min + t*(s.Max-s.Min)
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// KnobX returns the screen x of value v on the track.
func (s Slider) KnobX(v float64) float32 {
	if s.Max <= s.Min {
		return s.Track.X
	}
	t := (v - s.Min) / (s.Max - s.Min)
	t = math.Max(0, math.Min(1, t))
	return s.Track.X + float32(t)*s.Track.W
}

type HitKind int

const (
	HitNone HitKind = iota
	HitBody
	HitSlider
	HitHighlight
	HitOverview
)

// Hit is what lies under the pointer. Index is the body or slider index.
type Hit struct {
	Kind  HitKind
	Index int
}

// Layout positions every HUD element for one framebuffer size. The body
// list and buttons run down the left edge, the sliders sit at the bottom
// left and the info panel at the top right.
type Layout struct {
	Scale     float32
	ListPanel Rect
	List      []Rect
	Names     []string
	Overview  Rect
	Highlight Rect
	Sliders   [2]Slider
	Info      Rect
	Toast     Rect
}

// NewLayout lays out the HUD for a framebuffer of fbW x fbH with one
// list row per name.
func NewLayout(fbW, fbH int, names []string, scale float32) *Layout {
	if scale <= 0 {
		scale = 1
	}
	l := &Layout{Scale: scale, Names: names}
	rowH := float32(CellH)*scale + 2*padding
	longest := len("Highlight orbits") + 4
	for _, n := range names {
		if len(n)+4 > longest {
			longest = len(n) + 4
		}
	}
	colW := float32(longest*CellW)*scale + 2*padding

	y := float32(margin)
	top := y
	for range names {
		l.List = append(l.List, Rect{X: margin, Y: y, W: colW, H: rowH})
		y += rowH + rowGap
	}
	y += rowGap
	l.Overview = Rect{X: margin, Y: y, W: colW, H: rowH}
	y += rowH + rowGap
	l.Highlight = Rect{X: margin, Y: y, W: colW, H: rowH}
	y += rowH
	l.ListPanel = Rect{X: margin - padding, Y: top - padding, W: colW + 2*padding, H: y - top + 2*padding}

	trackW := float32(24*CellW) * scale
	labelW := float32(12*CellW) * scale
	sy := float32(fbH) - margin - rowH
	l.Sliders[SliderLight] = Slider{
		Label: "Light", Min: solar.MinIntensity, Max: solar.MaxIntensity, Step: solar.ParamStep,
		Track: Rect{X: margin + labelW, Y: sy, W: trackW, H: rowH},
	}
	sy -= rowH + rowGap
	l.Sliders[SliderSpeed] = Slider{
		Label: "Speed", Min: solar.MinSpeed, Max: solar.MaxSpeed, Step: solar.ParamStep,
		Track: Rect{X: margin + labelW, Y: sy, W: trackW, H: rowH},
	}

	infoW := float32(40*CellW)*scale + 2*padding
	infoH := float32(len(infoLabels)+2)*(float32(CellH)*scale+rowGap) + 2*padding
	l.Info = Rect{X: float32(fbW) - margin - infoW, Y: margin, W: infoW, H: infoH}

	toastW := float32(48*CellW) * scale
	l.Toast = Rect{X: (float32(fbW) - toastW) / 2, Y: float32(fbH) - margin - rowH, W: toastW, H: rowH}
	return l
}

// HitTest returns the control under (x, y) in framebuffer pixels.
func (l *Layout) HitTest(x, y float32) Hit {
	for i, r := range l.List {
		if r.Contains(x, y) {
			return Hit{Kind: HitBody, Index: i}
		}
	}
	if l.Overview.Contains(x, y) {
		return Hit{Kind: HitOverview}
	}
	if l.Highlight.Contains(x, y) {
		return Hit{Kind: HitHighlight}
	}
	for i, s := range l.Sliders {
		// Grab a little outside the track so the ends are easy to reach.
		if s.Track.Inset(-padding).Contains(x, y) {
			return Hit{Kind: HitSlider, Index: i}
		}
	}
	return Hit{Kind: HitNone}
}

// TextWidth is the width in pixels of a single line at scale.
func TextWidth(text string, scale float32) float32 {
	return float32(len(text)*CellW) * scale
}
