package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input tracks key and button edges plus cursor motion and scroll
// accumulated by GLFW callbacks between frames.
type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool

	lastX, lastY float64
	haveCursor   bool

	scroll float64
}

func NewInput(window *glfw.Window) *Input {
	in := &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in.scroll += yoff
	})
	return in
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

func (in *Input) Held(window *glfw.Window, key glfw.Key) bool {
	return window.GetKey(key) == glfw.Press
}

// Cursor samples the cursor in framebuffer pixels and returns the motion
// since the previous call.
func (in *Input) Cursor(window *glfw.Window, fbW, fbH int) (x, y, dx, dy float64) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW > 0 && winH > 0 {
		cx *= float64(fbW) / float64(winW)
		cy *= float64(fbH) / float64(winH)
	}
	if in.haveCursor {
		dx, dy = cx-in.lastX, cy-in.lastY
	}
	in.lastX, in.lastY = cx, cy
	in.haveCursor = true
	return cx, cy, dx, dy
}

// TakeScroll returns and clears the scroll accumulated since the last call.
func (in *Input) TakeScroll() float64 {
	s := in.scroll
	in.scroll = 0
	return s
}
