// Package buffer provides the queue that carries work onto the UI loop.
package buffer

// Unbounded creates a channel buffer that grows as needed, so producers on
// worker goroutines never block on a busy UI loop.
// It returns a write-only channel to feed data in, and a read-only channel
// to read data out. Closing in flushes the queue and then closes out.
//
// initialCap: starting size of the backing slice.
// hardLimit: items buffered before the oldest is dropped. onDrop, if not
// nil, is called with each dropped item from the buffer goroutine.
//
// Usage:
//
//	in, out := buffer.Unbounded[func()](64, 10000, nil)
//	in <- task
//	(<-out)()
func Unbounded[T any](initialCap, hardLimit int, onDrop func(T)) (chan<- T, <-chan T) {
	in := make(chan T, 10)
	out := make(chan T, 10)

	go func() {
		defer close(out)

		queue := make([]T, 0, initialCap)

		for {
			var next T
			var downstream chan T

			// Only offer to the reader while there is something queued.
			if len(queue) > 0 {
				next = queue[0]
				downstream = out
			}

			select {
			case val, ok := <-in:
				if !ok {
					for _, item := range queue {
						out <- item
					}
					return
				}

				if hardLimit > 0 && len(queue) >= hardLimit {
					if onDrop != nil {
						onDrop(queue[0])
					}
					var zero T
					queue[0] = zero
					queue = queue[1:]
				}
				queue = append(queue, val)

			case downstream <- next:
				var zero T
				queue[0] = zero
				queue = queue[1:]
			}
		}
	}()

	return in, out
}
