package game

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"solarsystem/internal/solar"
	"solarsystem/internal/ui"
)

// fontAtlas rasterizes basicfont 7x13 into a FontCols x FontRows grid
// indexed by ASCII code. The SolidGlyph cell is filled opaque.
func fontAtlas() *image.NRGBA {
	atlas := image.NewNRGBA(image.Rect(0, 0, FontAtlasW, FontAtlasH))
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: atlas, Src: image.White, Face: face}
	for c := 32; c < 127; c++ {
		col, row := c%FontCols, c/FontCols
		d.Dot = fixed.P(col*FontCellW, row*FontCellH+face.Ascent)
		d.DrawString(string(rune(c)))
	}
	col, row := SolidGlyph%FontCols, SolidGlyph/FontCols
	cell := image.Rect(col*FontCellW, row*FontCellH, (col+1)*FontCellW, (row+1)*FontCellH)
	draw.Draw(atlas, cell, image.White, image.Point{}, draw.Src)
	return atlas
}

// InitFont builds the font atlas and sets up the text rendering pipeline.
func (r *Renderer) InitFont() error {
	atlas := fontAtlas()
	b := atlas.Bounds()

	// Upload font atlas to GL texture.
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	r.fontTex = tex

	// Text shader program.
	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Text VAO/VBO: per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxTextQuads*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) quad(x, y, w, h, u0, v0, u1, v1 float32, col solar.RGB, alpha float32) {
	cr, cg, cb := col.Floats()
	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		x, y, u0, v0, cr, cg, cb, alpha,
		x+w, y, u1, v0, cr, cg, cb, alpha,
		x, y+h, u0, v1, cr, cg, cb, alpha,
		x+w, y, u1, v0, cr, cg, cb, alpha,
		x+w, y+h, u1, v1, cr, cg, cb, alpha,
		x, y+h, u0, v1, cr, cg, cb, alpha,
	)
}

func glyphUV(c int) (u0, v0, u1, v1 float32) {
	column := c % FontCols
	row := c / FontCols
	u0 = float32(column*FontCellW) / float32(FontAtlasW)
	v0 = float32(row*FontCellH) / float32(FontAtlasH)
	u1 = float32((column+1)*FontCellW) / float32(FontAtlasW)
	v1 = float32((row+1)*FontCellH) / float32(FontAtlasH)
	return
}

// DrawChar queues a single character as a textured quad in screen pixel space.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col solar.RGB) {
	if ch < 32 || ch > 126 {
		return
	}
	u0, v0, u1, v1 := glyphUV(int(ch))
	r.quad(sx, sy, float32(FontCellW)*scale, float32(FontCellH)*scale, u0, v0, u1, v1, col, 1)
}

// DrawString queues a string at screen pixel position (sx, sy) with given scale.
func (r *Renderer) DrawString(text string, sx, sy float32, scale float32, col solar.RGB) {
	advance := float32(FontCellW) * scale
	lineAdvance := float32(FontCellH) * scale
	x, y := sx, sy
	for _, ch := range text {
		if ch == '\n' {
			x = sx
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col)
		x += advance
	}
}

// DrawRect queues a filled rectangle using the solid atlas cell.
func (r *Renderer) DrawRect(rc ui.Rect, col solar.RGB, alpha float32) {
	if rc.W <= 0 || rc.H <= 0 {
		return
	}
	u0, v0, u1, v1 := glyphUV(SolidGlyph)
	// Sample the cell centre so filtering never reaches a neighbour.
	cu, cv := (u0+u1)/2, (v0+v1)/2
	r.quad(rc.X, rc.Y, rc.W, rc.H, cu, cv, cu, cv, col, alpha)
}

// DrawFrame queues a one-pixel outline.
func (r *Renderer) DrawFrame(rc ui.Rect, col solar.RGB, alpha float32) {
	r.DrawRect(ui.Rect{X: rc.X, Y: rc.Y, W: rc.W, H: 1}, col, alpha)
	r.DrawRect(ui.Rect{X: rc.X, Y: rc.Y + rc.H - 1, W: rc.W, H: 1}, col, alpha)
	r.DrawRect(ui.Rect{X: rc.X, Y: rc.Y, W: 1, H: rc.H}, col, alpha)
	r.DrawRect(ui.Rect{X: rc.X + rc.W - 1, Y: rc.Y, W: 1, H: rc.H}, col, alpha)
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText(fbW, fbH int) {
	if len(r.textBuf) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	gl.Uniform2f(r.textURes, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(0)
	r.textBuf = r.textBuf[:0]
}
