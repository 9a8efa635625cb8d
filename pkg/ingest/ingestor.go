package ingest

import (
	"context"
	"sync"
)

// Option configures an Ingestor.
type Option func(*config)

type config struct {
	maxSize int64
}

// WithMaxSize rejects files larger than n bytes with ErrTooLarge. Zero or
// negative values disable the limit.
func WithMaxSize(n int64) Option {
	return func(cfg *config) {
		cfg.maxSize = n
	}
}

// Ingestor tracks the most recent selection of one uploader. The zero value is
// not usable; construct with New.
type Ingestor struct {
	cfg config

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc

	// deliverMu serialises staleness checks with delivery so a superseded
	// read can never report after its successor.
	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// New constructs an Ingestor.
func New(options ...Option) *Ingestor {
	in := &Ingestor{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&in.cfg)
	}
	return in
}

// RequestOption adjusts a single Ingest call.
type RequestOption func(*config)

// Limit overrides the ingestor's size limit for one request.
func Limit(n int64) RequestOption {
	return func(cfg *config) {
		cfg.maxSize = n
	}
}

// Ingest starts a new request for h and returns its generation token. Any
// earlier request still reading is cancelled and its result discarded.
//
// In ModeRaw, deliver runs synchronously before Ingest returns. In ModeBase64,
// deliver runs once on another goroutine after the whole file was read and
// encoded, or with a ReadError when reading failed. deliver is never called for
// a superseded request, and must not call Ingest or Supersede itself.
func (in *Ingestor) Ingest(ctx context.Context, h Handle, mode Mode, deliver func(Result), opts ...RequestOption) uint64 {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := in.cfg
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	readCtx, cancel := context.WithCancel(ctx)
	gen := in.advance(cancel)

	if h == nil {
		cancel()
		in.deliver(gen, ReadError("", ErrNilHandle), deliver)
		return gen
	}

	if mode != ModeBase64 {
		cancel()
		in.deliver(gen, Ok(Selection{Mode: ModeRaw, Raw: h}), deliver)
		return gen
	}

	in.wg.Add(1)
	go func() {
		defer in.wg.Done()
		defer cancel()

		encoded, err := EncodeDataURI(readCtx, h, cfg.maxSize)
		if err != nil {
			in.deliver(gen, ReadError(h.Name(), err), deliver)
			return
		}
		in.deliver(gen, Ok(Selection{Mode: ModeBase64, Encoded: encoded}), deliver)
	}()
	return gen
}

// Supersede starts a generation with no read behind it. The read in flight,
// if any, is cancelled and will not deliver. Use it when a selection is
// handled without Ingest, such as a rejected pick.
func (in *Ingestor) Supersede() uint64 {
	return in.advance(nil)
}

// advance bumps the generation and swaps in cancel. Holding deliverMu means
// a delivery already past its staleness check finishes first.
func (in *Ingestor) advance(cancel context.CancelFunc) uint64 {
	in.deliverMu.Lock()
	defer in.deliverMu.Unlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	in.generation++
	if in.cancel != nil {
		in.cancel()
	}
	in.cancel = cancel
	return in.generation
}

// Generation returns the token of the latest request.
func (in *Ingestor) Generation() uint64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.generation
}

// Wait blocks until every in-flight read has finished or been discarded.
func (in *Ingestor) Wait() {
	in.wg.Wait()
}

func (in *Ingestor) deliver(gen uint64, res Result, deliver func(Result)) {
	in.deliverMu.Lock()
	defer in.deliverMu.Unlock()

	if gen != in.Generation() {
		return
	}
	if deliver == nil {
		return
	}
	res.generation = gen
	deliver(res)
}
