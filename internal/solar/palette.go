package solar

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Floats returns the colour as normalized float32 channels for GL uniforms.
func (c RGB) Floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("parse colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

var Palette = struct {
	OrbitNeutral RGB
	Placeholder  RGB
	Background   RGB
	Highlight    []RGB
}{
	OrbitNeutral: RGB{R: 0x80, G: 0x80, B: 0x80},
	Placeholder:  RGB{R: 0x9a, G: 0x9a, B: 0xa0},
	Background:   RGB{R: 2, G: 2, B: 8},
	// Fallback highlight colours, by orbit order, for bodies without one.
	Highlight: []RGB{
		{R: 0xFF, G: 0x00, B: 0x00},
		{R: 0xFF, G: 0xA5, B: 0x00},
		{R: 0xFF, G: 0xFF, B: 0x00},
		{R: 0x00, G: 0x80, B: 0x00},
		{R: 0x00, G: 0x00, B: 0xFF},
		{R: 0x80, G: 0x00, B: 0x80},
		{R: 0xFF, G: 0xC0, B: 0xCB},
		{R: 0x00, G: 0xFF, B: 0xFF},
		{R: 0x80, G: 0x00, B: 0x80},
	},
}
