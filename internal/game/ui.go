package game

import (
	"fmt"

	"solarsystem/internal/solar"
	"solarsystem/internal/ui"
)

// HUD bundles the overlay state the frame loop feeds to RenderHUD.
type HUD struct {
	Layout  *ui.Layout
	Panel   *ui.Panel
	Toast   *ui.Toast
	Pointer ui.Pointer
	Hover   ui.Hit
}

// Relayout rebuilds the layout after a framebuffer resize.
func (h *HUD) Relayout(fbW, fbH int, names []string) {
	h.Layout = ui.NewLayout(fbW, fbH, names, HUDScale)
}

var (
	hudText   = solar.RGB{R: 235, G: 235, B: 240}
	hudDim    = solar.RGB{R: 150, G: 150, B: 165}
	hudPanel  = solar.RGB{R: 10, G: 12, B: 24}
	hudHover  = solar.RGB{R: 40, G: 48, B: 80}
	hudActive = solar.RGB{R: 70, G: 90, B: 160}
	hudTrack  = solar.RGB{R: 60, G: 60, B: 70}
	hudKnob   = solar.RGB{R: 255, G: 200, B: 90}
)

// RenderHUD draws the body list, buttons, sliders, info panel and toast.
func RenderHUD(r *Renderer, hud *HUD, scene *solar.SolarSystemScene, focus solar.FocusState, params *solar.Parameters, fbW, fbH int) {
	l := hud.Layout
	s := l.Scale
	textPad := func(rc ui.Rect) (float32, float32) {
		return rc.X + 6, rc.Y + (rc.H-float32(FontCellH)*s)/2
	}

	r.DrawRect(l.ListPanel, hudPanel, 0.75)
	for i, b := range scene.Bodies() {
		if i >= len(l.List) {
			break
		}
		rc := l.List[i]
		switch {
		case focus.Mode == solar.Focused && focus.BodyID == b.ID():
			r.DrawRect(rc, hudActive, 0.9)
		case hud.Hover.Kind == ui.HitBody && hud.Hover.Index == i:
			r.DrawRect(rc, hudHover, 0.9)
		}
		x, y := textPad(rc)
		label := b.Desc.Name
		if i < 10 {
			label = fmt.Sprintf("%d %s", i, label)
		}
		r.DrawString(label, x, y, s, hudText)
		// Orbit colour swatch.
		if b.OrbitPath != nil {
			sw := float32(FontCellH) * s * 0.6
			r.DrawRect(ui.Rect{X: rc.X + rc.W - sw - 6, Y: rc.Y + (rc.H-sw)/2, W: sw, H: sw}, b.HighlightColour(), 1)
		}
	}

	button := func(rc ui.Rect, label string, hovered, active bool) {
		switch {
		case active:
			r.DrawRect(rc, hudActive, 0.9)
		case hovered:
			r.DrawRect(rc, hudHover, 0.9)
		}
		r.DrawFrame(rc, hudDim, 1)
		x, y := textPad(rc)
		r.DrawString(label, x, y, s, hudText)
	}
	button(l.Overview, "O Overview", hud.Hover.Kind == ui.HitOverview, focus.Mode == solar.Overview)
	check := "[ ]"
	if scene.OrbitHighlight() {
		check = "[x]"
	}
	button(l.Highlight, check+" Highlight orbits", hud.Hover.Kind == ui.HitHighlight, false)

	values := [2]float64{params.Speed, params.LightIntensity}
	for i, sl := range l.Sliders {
		tr := sl.Track
		_, y := textPad(tr)
		r.DrawString(fmt.Sprintf("%-6s %.1f", sl.Label, values[i]), tr.X-float32(12*FontCellW)*s, y, s, hudText)
		mid := tr.Y + tr.H/2
		r.DrawRect(ui.Rect{X: tr.X, Y: mid - 2, W: tr.W, H: 4}, hudTrack, 1)
		kx := sl.KnobX(values[i])
		r.DrawRect(ui.Rect{X: tr.X, Y: mid - 2, W: kx - tr.X, H: 4}, hudKnob, 0.6)
		kw := 4 * s
		r.DrawRect(ui.Rect{X: kx - kw, Y: tr.Y + 2, W: 2 * kw, H: tr.H - 4}, hudKnob, 1)
	}

	if hud.Panel.Open && len(hud.Panel.Lines) > 0 {
		rc := l.Info
		r.DrawRect(rc, hudPanel, 0.8)
		r.DrawFrame(rc, hudDim, 1)
		x, y := rc.X+6, rc.Y+6
		lineH := float32(FontCellH)*s + 4
		r.DrawString(hud.Panel.Lines[0], x, y, s*1.3, hudKnob)
		y += float32(FontCellH)*s*1.3 + 8
		for _, line := range hud.Panel.Lines[1:] {
			r.DrawString(line, x, y, s, hudText)
			y += lineH
		}
	}

	if hud.Toast.Visible() {
		rc := l.Toast
		w := ui.TextWidth(hud.Toast.Text, s)
		x := rc.X + (rc.W-w)/2
		r.DrawRect(ui.Rect{X: x - 8, Y: rc.Y, W: w + 16, H: rc.H}, hudPanel, 0.8)
		_, y := textPad(rc)
		r.DrawString(hud.Toast.Text, x, y, s, hudText)
	}

	r.FlushText(fbW, fbH)
}
