package solar

import (
	"math"

	"github.com/goki/mat32"
)

// VertexStride is the number of float32s per vertex: position, normal, uv.
const VertexStride = 8

// Geometry is an indexed triangle mesh with interleaved vertices.
type Geometry struct {
	Vertices []float32
	Indices  []uint32
}

func (g *Geometry) VertexCount() int { return len(g.Vertices) / VertexStride }

func (g *Geometry) push(p, n mat32.Vec3, u, v float32) {
	g.Vertices = append(g.Vertices, p.X, p.Y, p.Z, n.X, n.Y, n.Z, u, v)
}

// SphereGeometry returns a unit sphere with widthSegs segments around Y
// and heightSegs from pole to pole. The seam column is duplicated so uv
// wraps cleanly; degenerate pole triangles are skipped.
func SphereGeometry(widthSegs, heightSegs int) Geometry {
	if widthSegs < 3 {
		widthSegs = 3
	}
	if heightSegs < 2 {
		heightSegs = 2
	}
	var g Geometry
	for iy := 0; iy <= heightSegs; iy++ {
		v := float64(iy) / float64(heightSegs)
		theta := v * math.Pi
		for ix := 0; ix <= widthSegs; ix++ {
			u := float64(ix) / float64(widthSegs)
			phi := u * twoPi
			p := mat32.Vec3{
				X: float32(-math.Cos(phi) * math.Sin(theta)),
				Y: float32(math.Cos(theta)),
				Z: float32(math.Sin(phi) * math.Sin(theta)),
			}
			g.push(p, p, float32(u), float32(1-v))
		}
	}
	row := uint32(widthSegs + 1)
	for iy := 0; iy < heightSegs; iy++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegs-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// RingGeometry returns a flat annulus in the XY plane facing +Z. u runs
// from the inner to the outer edge so a radial strip texture maps across
// the ring.
func RingGeometry(inner, outer float32, segs int) Geometry {
	if segs < 3 {
		segs = 3
	}
	var g Geometry
	n := mat32.Vec3{Z: 1}
	for i := 0; i <= segs; i++ {
		a := float64(i) / float64(segs) * twoPi
		c, s := float32(math.Cos(a)), float32(math.Sin(a))
		v := float32(i) / float32(segs)
		g.push(mat32.Vec3{X: inner * c, Y: inner * s}, n, 0, v)
		g.push(mat32.Vec3{X: outer * c, Y: outer * s}, n, 1, v)
	}
	for i := 0; i < segs; i++ {
		in0, out0 := uint32(2*i), uint32(2*i+1)
		in1, out1 := in0+2, out0+2
		g.Indices = append(g.Indices, in0, out0, out1, in0, out1, in1)
	}
	return g
}

// OrbitPoints returns segs+1 points of a circle in the XZ plane; the last
// point repeats the first so the polyline closes.
func OrbitPoints(radius float32, segs int) []mat32.Vec3 {
	if segs < 3 {
		segs = 3
	}
	pts := make([]mat32.Vec3, segs+1)
	for i := 0; i <= segs; i++ {
		a := float64(i) / float64(segs) * twoPi
		pts[i] = mat32.Vec3{X: radius * float32(math.Sin(a)), Z: radius * float32(math.Cos(a))}
	}
	pts[segs] = pts[0]
	return pts
}
