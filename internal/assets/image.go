package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"solarsystem/internal/solar"
)

var (
	errIsDir = errors.New("is a directory")
	errEmpty = errors.New("no samples")
)

// DecodeImage decodes any registered format into tightly packed NRGBA,
// downscaling so neither side exceeds maxSize (0 means no limit) and
// flipping rows so the first row is the bottom of the picture, which is
// the order GL texture uploads expect.
func DecodeImage(r io.Reader, maxSize int) (*image.NRGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), maxSize)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}
	flipRows(dst)
	return dst, nil
}

// LoadImage opens and decodes ref from the store.
func LoadImage(s Store, ref string, maxSize int) (*image.NRGBA, error) {
	f, err := s.Open(KindTexture, ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := DecodeImage(f, maxSize)
	if err != nil {
		return nil, &solar.AssetError{Kind: KindTexture, Path: s.Path(ref), Err: err}
	}
	return img, nil
}

func fitSize(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}

func flipRows(img *image.NRGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bot := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}
