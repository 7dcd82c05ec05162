package game

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/oto/v2"

	"solarsystem/internal/assets"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// AudioSystem plays the per-body ambient loops and the UI click. It
// satisfies solar.AmbientPlayer: at most one ambient loop plays at a time
// and a newer request always wins over one still decoding.
type AudioSystem struct {
	ctx    *oto.Context
	ready  chan struct{}
	store  assets.Store
	log    *slog.Logger
	volume float64

	mu     sync.Mutex
	gen    uint64
	player oto.Player

	cacheMu sync.Mutex
	cache   map[string]*beep.Buffer
}

// InitAudio initializes the audio system.
func InitAudio(store assets.Store, volume float64, log *slog.Logger) (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &AudioSystem{
		ctx:    ctx,
		ready:  ready,
		store:  store,
		log:    log,
		volume: clampF(volume, 0, 1),
		cache:  make(map[string]*beep.Buffer),
	}, nil
}

// PlayLoop starts looping ref in place of the current ambient sound. A
// missing file is reported at once; decoding happens in the background
// and decode failures are only logged.
func (a *AudioSystem) PlayLoop(ref string) error {
	if err := a.store.Check(assets.KindSound, ref); err != nil {
		return err
	}
	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.mu.Unlock()

	go func() {
		buf, err := a.buffer(ref)
		if err != nil {
			a.log.Warn("ambient sound unavailable", "ref", ref, "err", err)
			return
		}
		<-a.ready

		a.mu.Lock()
		defer a.mu.Unlock()
		if gen != a.gen {
			return
		}
		a.closePlayerLocked()
		p := a.ctx.NewPlayer(assets.NewPCMReader(assets.Loop(buf)))
		p.SetVolume(a.volume)
		p.Play()
		a.player = p
		a.log.Debug("ambient loop", "ref", ref, "seconds", float64(buf.Len())/SampleRate)
	}()
	return nil
}

// Stop silences the ambient loop and cancels any pending PlayLoop.
func (a *AudioSystem) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.closePlayerLocked()
}

func (a *AudioSystem) closePlayerLocked() {
	if a.player == nil {
		return
	}
	a.player.Pause()
	if err := a.player.Close(); err != nil {
		a.log.Debug("close ambient player", "err", err)
	}
	a.player = nil
}

func (a *AudioSystem) buffer(ref string) (*beep.Buffer, error) {
	a.cacheMu.Lock()
	buf, ok := a.cache[ref]
	a.cacheMu.Unlock()
	if ok {
		return buf, nil
	}
	buf, err := assets.LoadSound(a.store, ref, SampleRate)
	if err != nil {
		return nil, err
	}
	a.cacheMu.Lock()
	a.cache[ref] = buf
	a.cacheMu.Unlock()
	return buf, nil
}

// PlayClick plays the short selection click.
func (a *AudioSystem) PlayClick() {
	select {
	case <-a.ready:
	default:
		return
	}
	samples := genClick()
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Close stops playback and suspends the device.
func (a *AudioSystem) Close() {
	a.Stop()
	if err := a.ctx.Suspend(); err != nil {
		a.log.Debug("suspend audio", "err", err)
	}
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// genClick: crisp click + brief high tone.
func genClick() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
