package ui

// Pointer turns button edges into clicks and slider drags. A drag starts
// when the button goes down on a slider and lasts until it is released,
// even if the pointer leaves the track.
type Pointer struct {
	drag int // slider index + 1, 0 when not dragging
}

// Press handles a button-down edge and reports what was clicked.
func (p *Pointer) Press(l *Layout, x, y float32) Hit {
	h := l.HitTest(x, y)
	if h.Kind == HitSlider {
		p.drag = h.Index + 1
	}
	return h
}

func (p *Pointer) Release() { p.drag = 0 }

// Dragging returns the slider being dragged.
func (p *Pointer) Dragging() (int, bool) {
	return p.drag - 1, p.drag > 0
}

// Captured reports whether the pointer belongs to the HUD, so camera
// orbit should ignore it.
func (p *Pointer) Captured() bool { return p.drag > 0 }
