package debug

import (
	"context"
	"log"
	"time"

	"github.com/drake/dwbox/window"
)

// Monitor periodically logs window statistics when debug mode is enabled.
type Monitor struct {
	win      *window.Window
	interval time.Duration
	ctx      context.Context
	logger   *log.Logger
}

// NewMonitor creates a new monitor for the given window.
// If debug mode is not enabled, returns nil.
func NewMonitor(ctx context.Context, w *window.Window) *Monitor {
	if !Enabled() {
		return nil
	}

	return &Monitor{
		win:      w,
		interval: 5 * time.Second,
		ctx:      ctx,
		logger:   Logger(),
	}
}

// Start begins the monitoring loop in a goroutine.
func (m *Monitor) Start() {
	if m == nil {
		return
	}
	go m.run()
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Println("[DEBUG] Monitor started")

	for {
		select {
		case <-m.ctx.Done():
			m.logger.Println("[DEBUG] Monitor stopped")
			return
		case <-ticker.C:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	s := m.win.Stats()
	m.logger.Printf("[DEBUG] resizes=%d skipped=%d errors=%d tasks=%d last=%dx%d took=%v placed=%d",
		s.Resizes, s.Skipped, s.Errors, s.Tasks,
		s.Width, s.Height, s.LastDuration, s.Placed,
	)
}
