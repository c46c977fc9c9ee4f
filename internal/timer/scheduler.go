package timer

import (
	"sync"
	"time"
)

// Scheduler manages delayed jobs by translating time into calls to a
// dispatch function. The dispatcher decides where the job runs; a job
// whose dispatch fails is dropped.
type Scheduler struct {
	dispatch func(job func()) error

	mu      sync.Mutex
	next    int
	pending map[int]*time.Timer
	stopped bool
}

// New creates a Scheduler that hands due jobs to dispatch.
func New(dispatch func(job func()) error) *Scheduler {
	return &Scheduler{
		dispatch: dispatch,
		pending:  make(map[int]*time.Timer),
	}
}

// Schedule asks to run job after d. Returns a cancel function; after
// Stop it returns a no-op cancel and never runs job.
func (s *Scheduler) Schedule(d time.Duration, job func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return func() {}
	}

	id := s.next
	s.next++
	s.pending[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()
		if live {
			_ = s.dispatch(job)
		}
	})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t, ok := s.pending[id]; ok {
			t.Stop()
			delete(s.pending, id)
		}
	}
}

// Pending returns the number of jobs not yet due.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending job and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}
