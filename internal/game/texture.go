package game

import (
	"image"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"

	"solarsystem/internal/assets"
)

// TextureCache owns the GL textures of the scene. Decoding happens on the
// loader's goroutines; Upload must run on the GL thread and moves at
// most a few finished images per frame to the GPU.
type TextureCache struct {
	loader   *assets.Loader
	log      *slog.Logger
	textures map[string]uint32
	sizes    map[string]image.Point
	failed   map[string]bool
}

func NewTextureCache(loader *assets.Loader, log *slog.Logger) *TextureCache {
	return &TextureCache{
		loader:   loader,
		log:      log,
		textures: make(map[string]uint32),
		sizes:    make(map[string]image.Point),
		failed:   make(map[string]bool),
	}
}

// Get returns the texture for ref once it is resident. The first call
// queues the decode.
func (tc *TextureCache) Get(ref string) (uint32, bool) {
	if ref == "" || tc.failed[ref] {
		return 0, false
	}
	if tex, ok := tc.textures[ref]; ok {
		return tex, true
	}
	tc.loader.Request(ref)
	return 0, false
}

// Size returns the pixel size of a resident texture.
func (tc *TextureCache) Size(ref string) (image.Point, bool) {
	sz, ok := tc.sizes[ref]
	return sz, ok
}

// Upload drains up to n decoded images.
func (tc *TextureCache) Upload(n int) {
	for i := 0; i < n; i++ {
		select {
		case d := <-tc.loader.Results():
			if d.Err != nil {
				tc.failed[d.Ref] = true
				tc.log.Debug("using placeholder colour", "ref", d.Ref)
				continue
			}
			tc.textures[d.Ref] = uploadTexture(d.Image)
			tc.sizes[d.Ref] = d.Image.Bounds().Size()
		default:
			return
		}
	}
}

func (tc *TextureCache) Destroy() {
	tc.loader.Close()
	for ref, id := range tc.textures {
		gl.DeleteTextures(1, &id)
		delete(tc.textures, ref)
	}
}

func uploadTexture(img *image.NRGBA) uint32 {
	b := img.Bounds()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
