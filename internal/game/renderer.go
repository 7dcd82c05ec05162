package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/goki/mat32"

	"solarsystem/internal/solar"
)

// BumpScale is the bump map height in world units per full texel value.
const BumpScale = 0.02

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type ringKey struct {
	inner, outer float32
	segs         int
}

type Renderer struct {
	// Mesh program.
	meshProg     uint32
	uModel       int32
	uViewProj    int32
	uColor       int32
	uOpacity     int32
	uUnlit       int32
	uDoubleSided int32
	uTex         int32
	uHasTex      int32
	uAlphaTex    int32
	uHasAlpha    int32
	uBumpTex     int32
	uHasBump     int32
	uBumpScale   int32
	uAmbient     int32
	uPointPos    int32
	uPointColor  int32
	uPointDecay  int32
	uDirDir      int32
	uDirColor    int32

	// Orbit path program.
	lineProg      uint32
	lineUModel    int32
	lineUViewProj int32
	lineUColor    int32

	// Background program (attribute-less fullscreen triangle).
	bgProg    uint32
	bgVAO     uint32
	bgUCover  int32
	bgUTex    int32
	bgUHasTex int32
	bgUColor  int32

	sphere *Mesh
	star   *Mesh
	rings  map[ringKey]*Mesh
	orbits map[*solar.Node]*Mesh

	textures   *TextureCache
	background string

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32

	// Per-frame draw lists, reused to avoid allocations.
	opaque      []*solar.Node
	translucent []*solar.Node
	paths       []*solar.Node
}

func NewRenderer(textures *TextureCache, background string) (*Renderer, error) {
	meshProg, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	lineProg, err := linkProgram(lineVertSrc, lineFragSrc)
	if err != nil {
		gl.DeleteProgram(meshProg)
		return nil, fmt.Errorf("line program: %w", err)
	}
	bgProg, err := linkProgram(backgroundVertSrc, backgroundFragSrc)
	if err != nil {
		gl.DeleteProgram(meshProg)
		gl.DeleteProgram(lineProg)
		return nil, fmt.Errorf("background program: %w", err)
	}

	r := &Renderer{
		meshProg:   meshProg,
		lineProg:   lineProg,
		bgProg:     bgProg,
		rings:      make(map[ringKey]*Mesh),
		orbits:     make(map[*solar.Node]*Mesh),
		textures:   textures,
		background: background,
	}

	r.sphere = uploadGeometry(solar.SphereGeometry(SphereWidthSegs, SphereHeightSegs))
	r.star = uploadGeometry(solar.SphereGeometry(StarWidthSegs, SphereHeightSegs))

	// Mesh uniforms. Texture units: 0 albedo, 1 alpha, 3 bump (2 is the font).
	gl.UseProgram(meshProg)
	loc := func(name string) int32 { return gl.GetUniformLocation(meshProg, gl.Str(name+"\x00")) }
	r.uModel = loc("uModel")
	r.uViewProj = loc("uViewProj")
	r.uColor = loc("uColor")
	r.uOpacity = loc("uOpacity")
	r.uUnlit = loc("uUnlit")
	r.uDoubleSided = loc("uDoubleSided")
	r.uTex = loc("uTex")
	r.uHasTex = loc("uHasTex")
	r.uAlphaTex = loc("uAlphaTex")
	r.uHasAlpha = loc("uHasAlpha")
	r.uBumpTex = loc("uBumpTex")
	r.uHasBump = loc("uHasBump")
	r.uBumpScale = loc("uBumpScale")
	r.uAmbient = loc("uAmbient")
	r.uPointPos = loc("uPointPos")
	r.uPointColor = loc("uPointColor")
	r.uPointDecay = loc("uPointDecay")
	r.uDirDir = loc("uDirDir")
	r.uDirColor = loc("uDirColor")
	gl.Uniform1i(r.uTex, 0)
	gl.Uniform1i(r.uAlphaTex, 1)
	gl.Uniform1i(r.uBumpTex, 3)
	gl.Uniform1f(r.uBumpScale, BumpScale)

	gl.UseProgram(lineProg)
	r.lineUModel = gl.GetUniformLocation(lineProg, gl.Str("uModel\x00"))
	r.lineUViewProj = gl.GetUniformLocation(lineProg, gl.Str("uViewProj\x00"))
	r.lineUColor = gl.GetUniformLocation(lineProg, gl.Str("uColor\x00"))

	gl.UseProgram(bgProg)
	r.bgUCover = gl.GetUniformLocation(bgProg, gl.Str("uCover\x00"))
	r.bgUTex = gl.GetUniformLocation(bgProg, gl.Str("uTex\x00"))
	r.bgUHasTex = gl.GetUniformLocation(bgProg, gl.Str("uHasTex\x00"))
	r.bgUColor = gl.GetUniformLocation(bgProg, gl.Str("uColor\x00"))
	gl.Uniform1i(r.bgUTex, 0)
	// Core profile needs a bound VAO even without attributes.
	gl.GenVertexArrays(1, &r.bgVAO)

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	r.sphere.Destroy()
	r.star.Destroy()
	for _, m := range r.rings {
		m.Destroy()
	}
	for _, m := range r.orbits {
		m.Destroy()
	}
	if r.textVBO != 0 {
		gl.DeleteBuffers(1, &r.textVBO)
	}
	for _, id := range []uint32{r.bgVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.meshProg, r.lineProg, r.bgProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// DrawScene renders the backdrop, every orbit path and every body of the
// scene from the camera's point of view. World matrices must be current.
func (r *Renderer) DrawScene(scene *solar.SolarSystemScene, cam *solar.Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	bg := solar.Palette.Background
	cr, cg, cb := bg.Floats()
	gl.ClearColor(cr, cg, cb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.drawBackground(fbW, fbH)

	r.opaque = r.opaque[:0]
	r.translucent = r.translucent[:0]
	r.paths = r.paths[:0]
	scene.Root.Walk(func(n *solar.Node) bool {
		switch n.Kind {
		case solar.NodeBody:
			r.opaque = append(r.opaque, n)
		case solar.NodeAtmosphere, solar.NodeRing:
			r.translucent = append(r.translucent, n)
		case solar.NodeOrbitPath:
			r.paths = append(r.paths, n)
		}
		return true
	})

	vp := cam.ViewProjection()
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	r.drawPaths(&vp)

	gl.UseProgram(r.meshProg)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &vp[0])
	r.setLights(scene)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	for _, n := range r.opaque {
		r.drawNode(n)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, n := range r.translucent {
		r.drawNode(n)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (r *Renderer) drawBackground(fbW, fbH int) {
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(r.bgProg)
	gl.BindVertexArray(r.bgVAO)

	tex, ok := r.textures.Get(r.background)
	if ok {
		cx, cy := float32(1), float32(1)
		if sz, ok := r.textures.Size(r.background); ok && sz.X > 0 && sz.Y > 0 && fbH > 0 {
			screen := float32(fbW) / float32(fbH)
			img := float32(sz.X) / float32(sz.Y)
			if screen > img {
				cy = img / screen
			} else {
				cx = screen / img
			}
		}
		gl.Uniform2f(r.bgUCover, cx, cy)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.Uniform1i(r.bgUHasTex, 1)
	} else {
		gl.Uniform2f(r.bgUCover, 1, 1)
		gl.Uniform1i(r.bgUHasTex, 0)
	}
	bg := solar.Palette.Background
	cr, cg, cb := bg.Floats()
	gl.Uniform3f(r.bgUColor, cr, cg, cb)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

func (r *Renderer) drawPaths(vp *mat32.Mat4) {
	gl.UseProgram(r.lineProg)
	gl.UniformMatrix4fv(r.lineUViewProj, 1, false, &vp[0])
	for _, n := range r.paths {
		m, ok := r.orbits[n]
		if !ok {
			m = uploadLineStrip(solar.OrbitPoints(n.Render.Radius, n.Render.Segments))
			r.orbits[n] = m
		}
		cr, cg, cb := n.Render.Color.Floats()
		gl.Uniform4f(r.lineUColor, cr, cg, cb, n.Render.Opacity)
		gl.UniformMatrix4fv(r.lineUModel, 1, false, &n.WorldMatrix[0])
		m.Draw()
	}
}

// setLights loads the scene lights into the mesh program: the point
// light, the summed ambient, and up to four directional lights shining
// from their position toward the origin.
func (r *Renderer) setLights(scene *solar.SolarSystemScene) {
	var ambient [3]float32
	var dirs, cols [12]float32
	nd := 0
	for _, n := range scene.Lights() {
		l := n.Light
		cr, cg, cb := l.Color.Floats()
		cr, cg, cb = cr*l.Intensity, cg*l.Intensity, cb*l.Intensity
		switch l.Kind {
		case solar.LightAmbient:
			ambient[0] += cr
			ambient[1] += cg
			ambient[2] += cb
		case solar.LightPoint:
			p := n.WorldPos()
			gl.Uniform3f(r.uPointPos, p.X, p.Y, p.Z)
			gl.Uniform3f(r.uPointColor, cr, cg, cb)
			gl.Uniform1f(r.uPointDecay, l.Decay)
		case solar.LightDirectional:
			if nd == 4 {
				continue
			}
			d := n.WorldPos().Normal()
			dirs[nd*3], dirs[nd*3+1], dirs[nd*3+2] = d.X, d.Y, d.Z
			cols[nd*3], cols[nd*3+1], cols[nd*3+2] = cr, cg, cb
			nd++
		}
	}
	gl.Uniform3f(r.uAmbient, ambient[0], ambient[1], ambient[2])
	gl.Uniform3fv(r.uDirDir, 4, &dirs[0])
	gl.Uniform3fv(r.uDirColor, 4, &cols[0])
}

func (r *Renderer) drawNode(n *solar.Node) {
	rd := n.Render
	if rd == nil {
		return
	}
	var m *Mesh
	switch n.Kind {
	case solar.NodeRing:
		key := ringKey{rd.Inner, rd.Outer, rd.Segments}
		m = r.rings[key]
		if m == nil {
			m = uploadGeometry(solar.RingGeometry(rd.Inner, rd.Outer, rd.Segments))
			r.rings[key] = m
		}
		gl.Disable(gl.CULL_FACE)
		defer gl.Enable(gl.CULL_FACE)
	default:
		m = r.sphere
		if rd.Unlit {
			m = r.star
		}
	}

	gl.UniformMatrix4fv(r.uModel, 1, false, &n.WorldMatrix[0])
	cr, cg, cb := rd.Color.Floats()
	gl.Uniform3f(r.uColor, cr, cg, cb)
	gl.Uniform1f(r.uOpacity, rd.Opacity)
	gl.Uniform1i(r.uUnlit, boolToInt(rd.Unlit))
	gl.Uniform1i(r.uDoubleSided, boolToInt(n.Kind == solar.NodeRing))
	r.bindMap(gl.TEXTURE0, r.uHasTex, rd.Texture)
	r.bindMap(gl.TEXTURE1, r.uHasAlpha, rd.AlphaMap)
	r.bindMap(gl.TEXTURE3, r.uHasBump, rd.BumpMap)
	m.Draw()
}

// bindMap binds ref to unit if it is resident and sets the matching flag.
func (r *Renderer) bindMap(unit uint32, flag int32, ref string) {
	tex, ok := r.textures.Get(ref)
	gl.Uniform1i(flag, boolToInt(ok))
	if ok {
		gl.ActiveTexture(unit)
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
