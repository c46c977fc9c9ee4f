// Package window owns a box tree and serializes every access to it on a
// single loop goroutine.
//
// Worker goroutines never touch the tree directly: they Post tasks or
// request a Resize, and Run applies them in order. This is the one
// synchronization boundary of a layout; the box package itself has none.
package window

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/event"
	"github.com/drake/dwbox/internal/buffer"
	"github.com/drake/dwbox/internal/timer"
)

// ErrClosed is returned when posting to a closed window.
var ErrClosed = errors.New("window closed")

// Task mutates or inspects the tree on the loop goroutine.
type Task func(root *box.Box) error

// Stats are counters about the work done by Run.
type Stats struct {
	Resizes int // Resizes that completed
	Skipped int // Resizes skipped as degenerate
	Errors  int // Failed tasks and resizes
	Tasks   int // Tasks run

	Width, Height int
	LastDuration  time.Duration
	Placed        int // Placements in the last layout
}

// Window holds a root box and the native placer for it.
type Window struct {
	root   *box.Box
	placer box.Placer
	events *event.Table
	logger *log.Logger

	in    chan<- func()
	out   <-chan func()
	sched *timer.Scheduler

	mu      sync.Mutex
	closed  bool
	last    *box.Layout
	stats   Stats
	pending bool
	pendW   int
	pendH   int

	done chan struct{}
}

// Option configures a Window.
type Option func(*Window)

// WithLogger sets the logger used for failed tasks and resizes.
func WithLogger(l *log.Logger) Option {
	return func(w *Window) { w.logger = l }
}

// WithQueueLimit bounds the number of queued tasks; the oldest are dropped
// beyond it.
func WithQueueLimit(n int) Option {
	return func(w *Window) {
		w.in, w.out = buffer.Unbounded[func()](64, n, func(func()) {
			w.logger.Printf("[WARN] window queue full (%d), dropping oldest task", n)
		})
	}
}

// New creates a window for root. Nothing runs until Run is called.
func New(root *box.Box, p box.Placer, opts ...Option) *Window {
	w := &Window{
		root:   root,
		placer: p,
		events: event.NewTable(),
		logger: log.New(io.Discard, "", 0),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.in == nil {
		w.in, w.out = buffer.Unbounded[func()](64, 50000, nil)
	}
	w.sched = timer.New(w.enqueue)
	return w
}

// Events returns the window's handler table. It may only be used before
// Run starts or from inside a Task or handler.
func (w *Window) Events() *event.Table { return w.events }

// Post queues t to run on the loop goroutine. Safe for concurrent use.
func (w *Window) Post(t Task) error {
	return w.enqueue(w.wrap(t))
}

// PostAfter queues t once d has passed. The returned cancel drops t if it
// has not been queued yet. Tasks still pending at Close never run.
func (w *Window) PostAfter(d time.Duration, t Task) (cancel func(), err error) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return func() {}, ErrClosed
	}
	return w.sched.Schedule(d, w.wrap(t)), nil
}

func (w *Window) wrap(t Task) func() {
	return func() {
		w.mu.Lock()
		w.stats.Tasks++
		w.mu.Unlock()

		if err := t(w.root); err != nil {
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			w.logger.Printf("[ERROR] task: %v", err)
		}
	}
}

// Resize requests a layout at the given size. Requests made before the
// loop gets to them collapse into the most recent one.
func (w *Window) Resize(width, height int) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.pendW, w.pendH = width, height
	queued := w.pending
	w.pending = true
	w.mu.Unlock()

	if queued {
		return nil
	}
	return w.enqueue(w.configure)
}

func (w *Window) enqueue(fn func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.in <- fn
	return nil
}

func (w *Window) configure() {
	w.mu.Lock()
	width, height := w.pendW, w.pendH
	w.pending = false
	w.mu.Unlock()

	start := time.Now()
	l, err := box.Resize(w.root, width, height, w.placer)
	took := time.Since(start)

	w.mu.Lock()
	w.stats.Width, w.stats.Height = width, height
	w.stats.LastDuration = took
	switch {
	case err != nil:
		w.stats.Errors++
	case l.Skipped:
		w.stats.Skipped++
		w.last = l
	default:
		w.stats.Resizes++
		w.stats.Placed = len(l.Placements())
		w.last = l
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Printf("[ERROR] resize %dx%d: %v", width, height, err)
	}

	w.events.Emit(event.Event{
		Kind:   event.Configure,
		Width:  width,
		Height: height,
		Layout: l,
		Err:    err,
	})
}

// Run applies queued tasks and resizes until ctx is cancelled or Close is
// called and the queue has drained. Work still queued when ctx is cancelled
// is dropped.
func (w *Window) Run(ctx context.Context) error {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.Close()
			// Discard what is still queued so the buffer can finish.
			for range w.out {
			}
			return ctx.Err()
		case fn, ok := <-w.out:
			if !ok {
				return nil
			}
			fn()
		}
	}
}

// Close stops accepting work. Already queued work still runs.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.sched.Stop()
	close(w.in)
}

// Done is closed when Run returns.
func (w *Window) Done() <-chan struct{} { return w.done }

// Layout returns the result of the last successful resize, or nil.
func (w *Window) Layout() *box.Layout {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Stats returns a snapshot of the window counters.
func (w *Window) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}
