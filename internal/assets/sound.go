package assets

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"solarsystem/internal/solar"
)

const resampleQuality = 4

// DecodeSound decodes an mp3 or wav stream, chosen by ext, into memory
// at the given sample rate.
func DecodeSound(rc io.ReadCloser, ext string, rate beep.SampleRate) (*beep.Buffer, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)
	switch strings.ToLower(ext) {
	case ".mp3":
		s, format, err = mp3.Decode(rc)
	case ".wav":
		s, format, err = wav.Decode(rc)
	default:
		rc.Close()
		return nil, fmt.Errorf("decode sound: unsupported format %q", ext)
	}
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != rate {
		src = beep.Resample(resampleQuality, format.SampleRate, rate, s)
	}
	out := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 4}
	buf := beep.NewBuffer(out)
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	return buf, nil
}

// LoadSound opens and decodes ref from the store.
func LoadSound(s Store, ref string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := s.Open(KindSound, ref)
	if err != nil {
		return nil, err
	}
	buf, err := DecodeSound(f, filepath.Ext(ref), rate)
	if err != nil {
		return nil, &solar.AssetError{Kind: KindSound, Path: s.Path(ref), Err: err}
	}
	if buf.Len() == 0 {
		return nil, &solar.AssetError{Kind: KindSound, Path: s.Path(ref), Err: errEmpty}
	}
	return buf, nil
}

// Loop returns an endless streamer over the whole buffer.
func Loop(buf *beep.Buffer) beep.Streamer {
	return beep.Loop(-1, buf.Streamer(0, buf.Len()))
}

// PCMReader adapts a beep streamer to an io.Reader of interleaved
// stereo float32 little-endian frames, the format oto plays.
type PCMReader struct {
	s       beep.Streamer
	samples [][2]float64
	pending []byte
}

func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{s: s, samples: make([][2]float64, 512)}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		if len(r.pending) > 0 {
			n := copy(p[written:], r.pending)
			r.pending = r.pending[n:]
			written += n
			continue
		}
		frames := (len(p) - written) / 8
		if frames == 0 {
			// Less than one frame of room: stage a frame and copy part of it.
			frames = 1
		}
		if frames > len(r.samples) {
			frames = len(r.samples)
		}
		n, _ := r.s.Stream(r.samples[:frames])
		if n == 0 {
			if written > 0 {
				return written, nil
			}
			if err := r.s.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		if frames*8 <= len(p)-written {
			for i := 0; i < n; i++ {
				putFrame(p[written+i*8:], r.samples[i])
			}
			written += n * 8
			continue
		}
		tmp := make([]byte, n*8)
		for i := 0; i < n; i++ {
			putFrame(tmp[i*8:], r.samples[i])
		}
		r.pending = tmp
	}
	return written, nil
}

func putFrame(b []byte, s [2]float64) {
	l := math.Float32bits(float32(s[0]))
	rr := math.Float32bits(float32(s[1]))
	b[0] = byte(l)
	b[1] = byte(l >> 8)
	b[2] = byte(l >> 16)
	b[3] = byte(l >> 24)
	b[4] = byte(rr)
	b[5] = byte(rr >> 8)
	b[6] = byte(rr >> 16)
	b[7] = byte(rr >> 24)
}
