package solar

import (
	"testing"

	"github.com/goki/mat32"
	"github.com/stretchr/testify/assert"
)

func TestSphereGeometry(t *testing.T) {
	g := SphereGeometry(32, 16)
	assert.Equal(t, 33*17, g.VertexCount())
	assert.Len(t, g.Indices, 6*32*15)

	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertices[i*VertexStride : (i+1)*VertexStride]
		p := mat32.Vec3{X: v[0], Y: v[1], Z: v[2]}
		assert.InDelta(t, 1, p.Length(), 1e-5)
		assert.GreaterOrEqual(t, v[6], float32(0))
		assert.LessOrEqual(t, v[7], float32(1))
	}
	for _, idx := range g.Indices {
		assert.Less(t, int(idx), g.VertexCount())
	}

	small := SphereGeometry(1, 1)
	assert.Equal(t, 4*3, small.VertexCount())
}

func TestRingGeometry(t *testing.T) {
	g := RingGeometry(1.2, 1.7, 80)
	assert.Equal(t, 2*81, g.VertexCount())
	assert.Len(t, g.Indices, 6*80)

	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertices[i*VertexStride:]
		r := mat32.Vec3{X: v[0], Y: v[1], Z: v[2]}.Length()
		if i%2 == 0 {
			assert.InDelta(t, 1.2, r, 1e-5)
			assert.Equal(t, float32(0), v[6])
		} else {
			assert.InDelta(t, 1.7, r, 1e-5)
			assert.Equal(t, float32(1), v[6])
		}
		assert.Equal(t, float32(0), v[2])
	}
}

func TestOrbitPoints(t *testing.T) {
	pts := OrbitPoints(64.8, 814)
	assert.Len(t, pts, 815)
	assert.Equal(t, pts[0], pts[len(pts)-1])
	assertVec(t, mat32.Vec3{Z: 64.8}, pts[0], 1e-5)
	for _, p := range pts {
		assert.InDelta(t, 64.8, p.Length(), 1e-3)
		assert.Equal(t, float32(0), p.Y)
	}
}
