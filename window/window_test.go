package window

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/event"
)

type leaf string

func (l leaf) Name() string { return string(l) }

// placer records rectangles; it is only called from the loop goroutine.
type placer struct {
	rects map[box.Widget]box.Rect
}

func (p *placer) Place(w box.Widget, r box.Rect) { p.rects[w] = r }

func startWindow(t *testing.T, root *box.Box) (*Window, *placer) {
	t.Helper()
	p := &placer{rects: make(map[box.Widget]box.Rect)}
	w := New(root, p)

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-w.Done()
	})
	return w, p
}

// flush waits until everything queued before it has run.
func flush(t *testing.T, w *Window) {
	t.Helper()
	ran := make(chan struct{})
	if err := w.Post(func(*box.Box) error { close(ran); return nil }); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("window loop did not run posted task")
	}
}

func TestResizeEmitsConfigure(t *testing.T) {
	root := box.NewVBox(0)
	body := leaf("body")
	root.PackEnd(body, box.Hints{Width: box.Auto, Height: box.Auto, HSize: box.Expand, VSize: box.Expand})

	w, p := startWindow(t, root)

	got := make(chan event.Event, 1)
	if err := w.Post(func(*box.Box) error {
		w.Events().Connect(event.Configure, func(ev event.Event) bool {
			got <- ev
			return true
		})
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if err := w.Resize(80, 24); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-got:
		if ev.Err != nil {
			t.Fatalf("configure error: %v", ev.Err)
		}
		if ev.Width != 80 || ev.Height != 24 {
			t.Errorf("configure size = %dx%d, want 80x24", ev.Width, ev.Height)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no configure event")
	}

	flush(t, w)
	if r := p.rects[body]; r != (box.Rect{Width: 80, Height: 24}) {
		t.Errorf("body = %v, want 80x24+0+0", r)
	}
	if w.Layout() == nil {
		t.Error("Layout() = nil after resize")
	}
	if s := w.Stats(); s.Resizes != 1 || s.Placed != 1 {
		t.Errorf("stats = %+v, want 1 resize with 1 placement", s)
	}
}

func TestConcurrentPosts(t *testing.T) {
	root := box.NewHBox(0)
	w, _ := startWindow(t, root)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				w.Post(func(root *box.Box) error {
					return root.PackEnd(leaf("w"), box.Hints{Width: 1, Height: 1, HSize: box.Expand, VSize: box.Expand})
				})
				w.Resize(100+i, 50+j)
			}
		}(i)
	}
	wg.Wait()
	flush(t, w)

	count := make(chan int, 1)
	w.Post(func(root *box.Box) error {
		count <- root.Len()
		return nil
	})
	if n := <-count; n != 200 {
		t.Errorf("root.Len() = %d, want 200", n)
	}
	if s := w.Stats(); s.Errors != 0 {
		t.Errorf("errors = %d, want 0", s.Errors)
	}
}

func TestTaskErrorsAreCounted(t *testing.T) {
	w, _ := startWindow(t, box.NewVBox(0))
	w.Post(func(*box.Box) error { return errors.New("boom") })
	flush(t, w)
	if s := w.Stats(); s.Errors != 1 || s.Tasks != 2 {
		t.Errorf("stats = %+v, want 1 error over 2 tasks", s)
	}
}

func TestClose(t *testing.T) {
	w := New(box.NewVBox(0), &placer{rects: make(map[box.Widget]box.Rect)})
	ran := false
	w.Post(func(*box.Box) error { ran = true; return nil })
	w.Close()

	if err := w.Post(func(*box.Box) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("Post after Close = %v, want ErrClosed", err)
	}
	if err := w.Resize(10, 10); !errors.Is(err, ErrClosed) {
		t.Errorf("Resize after Close = %v, want ErrClosed", err)
	}

	if err := w.Run(context.Background()); err != nil {
		t.Errorf("Run = %v, want nil after Close", err)
	}
	if !ran {
		t.Error("task queued before Close did not run")
	}
	select {
	case <-w.Done():
	default:
		t.Error("Done not closed after Run returned")
	}
}

func TestPostAfter(t *testing.T) {
	w, _ := startWindow(t, box.NewVBox(0))

	ran := make(chan struct{})
	if _, err := w.PostAfter(time.Millisecond, func(*box.Box) error {
		close(ran)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("delayed task did not run")
	}

	cancel, err := w.PostAfter(time.Hour, func(*box.Box) error {
		t.Error("cancelled task ran")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	cancel()
}

func TestPostAfterClosed(t *testing.T) {
	w := New(box.NewVBox(0), &placer{rects: make(map[box.Widget]box.Rect)})
	w.Close()
	if _, err := w.PostAfter(time.Millisecond, func(*box.Box) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("PostAfter after Close = %v, want ErrClosed", err)
	}
}

func TestRunCancelDropsQueue(t *testing.T) {
	w := New(box.NewVBox(0), &placer{rects: make(map[box.Widget]box.Rect)})
	ran := 0
	for i := 0; i < 100; i++ {
		if err := w.Post(func(*box.Box) error { ran++; return nil }); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if ran == 100 {
		t.Error("every task ran despite the cancelled context")
	}

	// The queue must be fully released, not parked behind unread tasks.
	select {
	case _, ok := <-w.out:
		if ok {
			t.Error("task left in the queue after Run returned")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("queue never closed")
	}
	if err := w.Post(func(*box.Box) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("Post after cancel = %v, want ErrClosed", err)
	}
}
