package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/goki/mat32"

	"solarsystem/internal/solar"
)

// Mesh is a static vertex array on the GPU.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
}

// uploadGeometry uploads an indexed triangle mesh laid out as
// pos(3) + normal(3) + uv(2).
func uploadGeometry(g solar.Geometry) *Mesh {
	m := &Mesh{count: int32(len(g.Indices)), mode: gl.TRIANGLES}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*4, gl.Ptr(g.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	stride := int32(solar.VertexStride * 4)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aNormal
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	gl.EnableVertexAttribArray(2) // aUV
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, glOffset(6*4))

	gl.BindVertexArray(0)
	return m
}

// uploadLineStrip uploads a polyline drawn with GL_LINE_STRIP.
func uploadLineStrip(points []mat32.Vec3) *Mesh {
	verts := make([]float32, 0, len(points)*3)
	for _, p := range points {
		verts = append(verts, p.X, p.Y, p.Z)
	}
	m := &Mesh{count: int32(len(points)), mode: gl.LINE_STRIP}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, glOffset(0))
	gl.BindVertexArray(0)
	return m
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.ebo != 0 {
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, glOffset(0))
	} else {
		gl.DrawArrays(m.mode, 0, m.count)
	}
}

func (m *Mesh) Destroy() {
	for _, id := range []uint32{m.vbo, m.ebo} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = Mesh{}
}
