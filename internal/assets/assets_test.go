package assets

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarsystem/internal/solar"
)

// writePNG writes a w x h image whose top row is red and the rest blue.
func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{B: 255, A: 255}
			if y == 0 {
				c = color.NRGBA{R: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func constant(n int, l, r float64) beep.Streamer {
	return beep.Take(n, beep.StreamerFunc(func(s [][2]float64) (int, bool) {
		for i := range s {
			s[i] = [2]float64{l, r}
		}
		return len(s), true
	}))
}

func writeWAV(t *testing.T, dir, name string, frames int, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, constant(frames, 0.5, -0.5), format))
}

func TestStoreCheck(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 2, 2)
	s := Store{Root: dir}

	assert.NoError(t, s.Check(KindTexture, "a.png"))

	err := s.Check(KindSound, "missing.mp3")
	var ae *solar.AssetError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindSound, ae.Kind)
	assert.Equal(t, filepath.Join(dir, "missing.mp3"), ae.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	assert.Error(t, s.Check(KindTexture, "sub"))
}

func TestLoadImageFlipsRows(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 4, 3)
	img, err := LoadImage(Store{Root: dir}, "a.png", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	// The top row of the file is now last.
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 2))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 0))
}

func TestLoadImageDownscales(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "wide.png", 64, 16)
	img, err := LoadImage(Store{Root: dir}, "wide.png", 32)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not an image"), 0o644))
	s := Store{Root: dir}

	var ae *solar.AssetError
	_, err := LoadImage(s, "junk.png", 0)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindTexture, ae.Kind)

	_, err = LoadImage(s, "none.jpg", 0)
	require.ErrorAs(t, err, &ae)
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{100, 50, 50, 50, 25},
		{50, 100, 50, 25, 50},
		{4000, 1, 100, 100, 1},
	}
	for _, tt := range tests {
		w, h := fitSize(tt.w, tt.h, tt.max)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 2, 2)
	l := NewLoader(Store{Root: dir}, 2, 0, 4, nil)
	defer l.Close()

	l.Request("a.png")
	l.Request("a.png")
	l.Request("missing.png")
	l.Request("")

	got := map[string]Decoded{}
	timeout := time.After(5 * time.Second)
	for len(got) < 2 {
		select {
		case d := <-l.Results():
			got[d.Ref] = d
		case <-timeout:
			t.Fatalf("timed out with %d results", len(got))
		}
	}
	require.NoError(t, got["a.png"].Err)
	assert.NotNil(t, got["a.png"].Image)
	var ae *solar.AssetError
	assert.ErrorAs(t, got["missing.png"].Err, &ae)

	select {
	case d := <-l.Results():
		t.Fatalf("unexpected extra result %q", d.Ref)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoadSoundWAV(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, dir, "tone.wav", 100, 44100)
	buf, err := LoadSound(Store{Root: dir}, "tone.wav", 44100)
	require.NoError(t, err)
	assert.Equal(t, 100, buf.Len())

	s := buf.Streamer(0, buf.Len())
	frame := make([][2]float64, 1)
	n, ok := s.Stream(frame)
	require.True(t, ok)
	require.Equal(t, 1, n)
	assert.InDelta(t, 0.5, frame[0][0], 0.001)
	assert.InDelta(t, -0.5, frame[0][1], 0.001)
}

func TestLoadSoundResamples(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, dir, "tone.wav", 22050, 22050)
	buf, err := LoadSound(Store{Root: dir}, "tone.wav", 44100)
	require.NoError(t, err)
	assert.InDelta(t, 44100, buf.Len(), 64)
}

func TestLoadSoundErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.ogg"), []byte("OggS"), 0o644))
	s := Store{Root: dir}

	var ae *solar.AssetError
	_, err := LoadSound(s, "x.ogg", 44100)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindSound, ae.Kind)

	_, err = LoadSound(s, "absent.mp3", 44100)
	require.ErrorAs(t, err, &ae)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func readFrames(t *testing.T, r io.Reader) [][2]float32 {
	t.Helper()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Zero(t, len(data)%8)
	out := make([][2]float32, len(data)/8)
	for i := range out {
		out[i][0] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*8:]))
		out[i][1] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*8+4:]))
	}
	return out
}

func TestPCMReader(t *testing.T) {
	frames := readFrames(t, NewPCMReader(constant(3, 0.25, -1)))
	require.Len(t, frames, 3)
	for _, f := range frames {
		assert.Equal(t, [2]float32{0.25, -1}, f)
	}
}

func TestPCMReaderPartialFrames(t *testing.T) {
	r := NewPCMReader(constant(2, 0.5, 0.5))
	var all []byte
	p := make([]byte, 5)
	for {
		n, err := r.Read(p)
		all = append(all, p[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	require.Len(t, all, 16)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(all[12:])))
}

func TestLoopRepeats(t *testing.T) {
	buf := beep.NewBuffer(beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2})
	buf.Append(constant(10, 0.1, 0.1))
	s := Loop(buf)
	out := make([][2]float64, 35)
	n, ok := s.Stream(out)
	assert.True(t, ok)
	assert.Equal(t, 35, n)
	assert.InDelta(t, 0.1, out[34][0], 1e-9)
}
