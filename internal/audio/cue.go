package audio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is recorded when a cue is closed before its decode finished.
var ErrClosed = errors.New("cue closed")

// Cue owns one preloaded sound and plays it on demand.
type Cue struct {
	path   string
	out    Output
	unlock *Unlock
	decode DecodeFunc
	logger *slog.Logger

	pcm    atomic.Pointer[[]byte]
	closed atomic.Bool

	mu     sync.Mutex
	err    error
	cancel context.CancelFunc
	done   chan struct{}
}

// CueOption configures a Cue.
type CueOption func(*Cue)

// WithDecoder replaces the file decoder.
func WithDecoder(fn DecodeFunc) CueOption {
	return func(c *Cue) { c.decode = fn }
}

// WithLogger sets the logger used for preload events.
func WithLogger(l *slog.Logger) CueOption {
	return func(c *Cue) { c.logger = l }
}

// NewCue returns an unloaded cue for the asset at path.
func NewCue(path string, out Output, unlock *Unlock, opts ...CueOption) *Cue {
	c := &Cue{
		path:   path,
		out:    out,
		unlock: unlock,
		decode: Decode,
		logger: slog.New(slog.DiscardHandler),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.out == nil {
		c.out = Silent{}
	}
	return c
}

// Path returns the asset path.
func (c *Cue) Path() string { return c.path }

// Preload starts decoding in the background and returns immediately. Calls
// after the first, or after Close, do nothing.
func (c *Cue) Preload(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil || c.closed.Load() {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	go c.load(ctx)
}

func (c *Cue) load(ctx context.Context) {
	defer close(c.done)

	started := time.Now()
	c.logger.Debug("decoding cue", "path", c.path)
	pcm, err := c.decode(ctx, c.path)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.closed.Load():
		c.err = ErrClosed
	case err != nil:
		c.err = err
		c.logger.Warn("cue decode failed", "path", c.path, "error", err)
	default:
		c.pcm.Store(&pcm)
		c.logger.Info("cue ready", "path", c.path, "bytes", len(pcm), "took", time.Since(started))
	}
}

// Done is closed once the background decode has finished, failed or been
// abandoned.
func (c *Cue) Done() <-chan struct{} { return c.done }

// Ready reports whether Trigger can produce sound.
func (c *Cue) Ready() bool {
	return !c.closed.Load() && c.pcm.Load() != nil
}

// Err returns the terminal decode error, if any.
func (c *Cue) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Trigger starts the sound from the beginning on a fresh voice. Before the
// decode completes, before the unlock gate opens, or after Close, it does
// nothing and returns false.
func (c *Cue) Trigger() bool {
	if c.closed.Load() || !c.unlock.IsOpen() {
		return false
	}
	pcm := c.pcm.Load()
	if pcm == nil {
		return false
	}
	if err := c.out.Play(*pcm); err != nil {
		c.logger.Warn("cue playback failed", "path", c.path, "error", err)
		return false
	}
	return true
}

// Close abandons a pending decode and releases the PCM buffer. Voices that
// are already playing run to completion.
func (c *Cue) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Swap(true) {
		return
	}
	if c.cancel != nil {
		c.cancel()
	} else {
		close(c.done)
	}
	c.pcm.Store(nil)
}
