package asset

import (
	"errors"
	"image"
	"sync"
)

// Slot is the scene element an asynchronously decoded image is meant for.
type Slot int

const (
	SlotBackground Slot = iota
	SlotOverlay
)

func (s Slot) String() string {
	switch s {
	case SlotBackground:
		return "background"
	case SlotOverlay:
		return "overlay"
	}
	return "unknown"
}

var ErrLoaderClosed = errors.New("asset: loader is closed")

// Result is a finished decode. Err is set when decoding failed.
type Result struct {
	Slot  Slot
	Path  Path
	Token uint64
	Image image.Image
	Err   error
}

type request struct {
	token uint64
	path  Path
}

// Loader decodes images off the UI goroutine. Every request gets a token
// that increases per slot; only a result carrying the newest token of its
// slot is accepted, so the last pick wins no matter which decode finishes
// first.
type Loader struct {
	decode func(Path) (image.Image, error)

	mu     sync.Mutex
	latest map[Slot]request
	closed bool

	results chan Result
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewLoader() *Loader {
	return newLoader(Decode)
}

func newLoader(decode func(Path) (image.Image, error)) *Loader {
	return &Loader{
		decode:  decode,
		latest:  map[Slot]request{},
		results: make(chan Result, 8),
		done:    make(chan struct{}),
	}
}

// Request starts decoding path for slot and returns the request token.
func (l *Loader) Request(slot Slot, path Path) (uint64, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0, ErrLoaderClosed
	}
	req := request{token: l.latest[slot].token + 1, path: path}
	l.latest[slot] = req
	l.wg.Add(1)
	l.mu.Unlock()

	log().Debug("asset: decode requested", "slot", slot, "path", path, "token", req.token)
	go func() {
		defer l.wg.Done()
		img, err := l.decode(path)
		r := Result{Slot: slot, Path: path, Token: req.token, Image: img, Err: err}
		select {
		case l.results <- r:
		case <-l.done:
		}
	}()
	return req.token, nil
}

// Requested returns the path of the newest request for slot, even while
// it is still decoding.
func (l *Loader) Requested(slot Slot) (Path, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	req, ok := l.latest[slot]
	return req.path, ok
}

// Results delivers finished decodes in completion order.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Accept reports whether r is the newest request of its slot.
func (l *Loader) Accept(r Result) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest[r.Slot].token == r.Token
}

// Drain hands every pending accepted result to install without blocking
// and returns how many were installed. Failed and stale results are
// logged and dropped.
func (l *Loader) Drain(install func(Result)) int {
	n := 0
	for {
		select {
		case r := <-l.results:
			switch {
			case r.Err != nil:
				log().Warn("asset: decode failed", "slot", r.Slot, "path", r.Path, "err", r.Err)
			case !l.Accept(r):
				log().Debug("asset: stale decode dropped", "slot", r.Slot, "path", r.Path, "token", r.Token)
			default:
				install(r)
				n++
			}
		default:
			return n
		}
	}
}

// Close rejects new requests and waits for running decodes to finish.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.done)
	l.mu.Unlock()
	l.wg.Wait()
}
