package assets

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Decoded is the outcome of one image request.
type Decoded struct {
	Ref   string
	Image *image.NRGBA
	Err   error
}

// Loader decodes images in the background with at most n decoders at a
// time. Each ref is decoded once; results arrive on Results in
// completion order and must be drained by the caller.
type Loader struct {
	store   Store
	maxSize int
	log     *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	sem     *semaphore.Weighted
	results chan Decoded
	wg      sync.WaitGroup

	mu        sync.Mutex
	requested map[string]bool
}

func NewLoader(store Store, decoders, maxSize, queue int, log *slog.Logger) *Loader {
	if decoders < 1 {
		decoders = 1
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		store:     store,
		maxSize:   maxSize,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		sem:       semaphore.NewWeighted(int64(decoders)),
		results:   make(chan Decoded, queue),
		requested: make(map[string]bool),
	}
}

// Request queues ref for decoding. Repeated and empty refs are ignored.
func (l *Loader) Request(ref string) {
	if ref == "" {
		return
	}
	l.mu.Lock()
	if l.requested[ref] {
		l.mu.Unlock()
		return
	}
	l.requested[ref] = true
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.sem.Acquire(l.ctx, 1); err != nil {
			return
		}
		img, err := LoadImage(l.store, ref, l.maxSize)
		l.sem.Release(1)
		if err != nil {
			l.log.Warn("texture unavailable", "ref", ref, "err", err)
		} else {
			l.log.Debug("texture decoded", "ref", ref, "w", img.Bounds().Dx(), "h", img.Bounds().Dy())
		}
		select {
		case l.results <- Decoded{Ref: ref, Image: img, Err: err}:
		case <-l.ctx.Done():
		}
	}()
}

func (l *Loader) Results() <-chan Decoded { return l.results }

// Close abandons outstanding requests and waits for the decoders to exit.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
