package lua

import (
	"sync"

	"github.com/drake/dwbox/box"
)

// mockWidget is a leaf without a preferred size.
type mockWidget struct {
	kind, name, text string
}

func (w *mockWidget) Name() string { return w.name }

// MockHost implements Host for testing.
type MockHost struct {
	mu sync.Mutex

	// Captured calls
	PrintCalls  []string
	WidgetCalls []string

	// RefuseKind makes NewWidget return nil for that kind.
	RefuseKind string
}

func NewMockHost() *MockHost {
	return &MockHost{}
}

func (m *MockHost) NewWidget(kind, name, text string) box.Widget {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WidgetCalls = append(m.WidgetCalls, kind+":"+name)
	if kind == m.RefuseKind {
		return nil
	}
	return &mockWidget{kind: kind, name: name, text: text}
}

func (m *MockHost) Print(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PrintCalls = append(m.PrintCalls, text)
}
