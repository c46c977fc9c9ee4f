package timer

import (
	"errors"
	"testing"
	"time"
)

func TestScheduleRuns(t *testing.T) {
	out := make(chan func(), 1)
	s := New(func(job func()) error {
		out <- job
		return nil
	})

	ran := false
	s.Schedule(time.Millisecond, func() { ran = true })

	select {
	case job := <-out:
		job()
	case <-time.After(5 * time.Second):
		t.Fatal("job not dispatched")
	}
	if !ran {
		t.Error("dispatched job is not the scheduled one")
	}
	if n := s.Pending(); n != 0 {
		t.Errorf("Pending() = %d, want 0", n)
	}
}

func TestCancel(t *testing.T) {
	dispatched := make(chan struct{}, 1)
	s := New(func(func()) error {
		dispatched <- struct{}{}
		return nil
	})

	cancel := s.Schedule(20*time.Millisecond, func() {})
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}
	cancel()
	cancel()
	if s.Pending() != 0 {
		t.Errorf("Pending() after cancel = %d, want 0", s.Pending())
	}

	select {
	case <-dispatched:
		t.Error("cancelled job was dispatched")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestStop(t *testing.T) {
	s := New(func(func()) error { return errors.New("closed") })
	s.Schedule(time.Hour, func() {})
	s.Schedule(time.Hour, func() {})
	s.Stop()

	if s.Pending() != 0 {
		t.Errorf("Pending() after Stop = %d, want 0", s.Pending())
	}
	s.Schedule(time.Millisecond, func() {})
	if s.Pending() != 0 {
		t.Error("Schedule after Stop registered a job")
	}
}
