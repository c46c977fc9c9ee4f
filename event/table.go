package event

import "slices"

// ID identifies a connected handler.
type ID uint64

type entry struct {
	id ID
	fn Handler
}

// Table maps event kinds to handlers for one widget or window.
// It is not safe for concurrent use; it belongs to the UI loop.
type Table struct {
	handlers map[Kind][]entry
	kinds    map[ID]Kind
	next     ID
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		handlers: make(map[Kind][]entry),
		kinds:    make(map[ID]Kind),
	}
}

// Connect adds fn for kind. Handlers run in connection order.
func (t *Table) Connect(kind Kind, fn Handler) ID {
	t.next++
	id := t.next
	t.handlers[kind] = append(t.handlers[kind], entry{id: id, fn: fn})
	t.kinds[id] = kind
	return id
}

// Disconnect removes one handler. It reports whether id was connected.
func (t *Table) Disconnect(id ID) bool {
	kind, ok := t.kinds[id]
	if !ok {
		return false
	}
	delete(t.kinds, id)
	t.handlers[kind] = slices.DeleteFunc(t.handlers[kind], func(e entry) bool {
		return e.id == id
	})
	if len(t.handlers[kind]) == 0 {
		delete(t.handlers, kind)
	}
	return true
}

// DisconnectKind removes every handler for kind and returns how many there were.
func (t *Table) DisconnectKind(kind Kind) int {
	entries := t.handlers[kind]
	for _, e := range entries {
		delete(t.kinds, e.id)
	}
	delete(t.handlers, kind)
	return len(entries)
}

// Len returns the number of handlers connected for kind.
func (t *Table) Len(kind Kind) int {
	return len(t.handlers[kind])
}

// Emit calls every handler for ev.Kind and reports whether any of them
// handled it. Handlers connected or disconnected during Emit take effect
// from the next Emit.
func (t *Table) Emit(ev Event) bool {
	entries := slices.Clone(t.handlers[ev.Kind])
	handled := false
	for _, e := range entries {
		if e.fn(ev) {
			handled = true
		}
	}
	return handled
}
