package ui

import (
	"fmt"
	"strconv"

	"solarsystem/internal/solar"
)

var infoLabels = []string{
	"Radius",
	"Distance",
	"Orbit",
	"Rotation",
	"Inclination",
	"Temperature",
	"Satellites",
}

// InfoLines formats a descriptor for the info panel. The first line is
// the title.
func InfoLines(d *solar.Descriptor) []string {
	if d == nil {
		return nil
	}
	values := []string{
		fmt.Sprintf("%s km", num(d.Radius)),
		fmt.Sprintf("%s million km", num(d.Distance)),
		fmt.Sprintf("%s days", num(d.OrbitDuration)),
		fmt.Sprintf("%s hours", num(d.RotationDuration)),
		fmt.Sprintf("%s deg", num(d.OrbitInclination)),
		fmt.Sprintf("%s C", num(d.SurfaceTemperature)),
		strconv.Itoa(d.Satellites),
	}
	if d.Parent == "" && d.Distance == 0 {
		values[1] = "-"
		values[2] = "-"
	}
	lines := make([]string, 0, len(values)+1)
	lines = append(lines, d.Name)
	for i, v := range values {
		lines = append(lines, fmt.Sprintf("%-12s %s", infoLabels[i]+":", v))
	}
	return lines
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Panel holds what the info panel shows. It satisfies
// solar.InfoDisplay.
type Panel struct {
	Lines []string
	Open  bool
}

func (p *Panel) ShowDescriptor(d *solar.Descriptor) {
	p.Lines = InfoLines(d)
	p.Open = true
}

func (p *Panel) Hide() { p.Open = false }

// Toast is a short message shown for a few seconds.
type Toast struct {
	Text string
	Left float64
}

func (t *Toast) Show(text string, secs float64) {
	t.Text = text
	t.Left = secs
}

func (t *Toast) Update(dt float64) {
	if t.Left > 0 {
		t.Left -= dt
		if t.Left <= 0 {
			t.Text = ""
			t.Left = 0
		}
	}
}

func (t *Toast) Visible() bool { return t.Left > 0 && t.Text != "" }
