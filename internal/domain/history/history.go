// Package history keeps a linear undo/redo log of event-store snapshots.
package history

import (
	"time"

	"github.com/halcyra/cadence/internal/domain/event"
)

// maxEntries caps the stack; pushing beyond it evicts the oldest entry.
const maxEntries = 50

// Entry pairs the full store snapshots taken around one mutating action.
// Full deep copies, not diffs, keep undo and redo exact and
// order-independent.
type Entry struct {
	Label  string
	At     time.Time
	Before []event.Event
	After  []event.Event
}

// Manager is a bounded linear undo history. Undo and redo operate purely on
// local snapshots; they never re-issue or cancel remote calls.
type Manager struct {
	entries []Entry
	cursor  int // count of applied entries; next Record lands here
}

// NewManager returns an empty history.
func NewManager() *Manager {
	return &Manager{}
}

// Record pushes one before/after snapshot pair, truncating any redo tail
// beyond the cursor. Snapshots are deep-copied on the way in.
func (m *Manager) Record(label string, before, after []event.Event) {
	m.entries = append(m.entries[:m.cursor], Entry{
		Label:  label,
		At:     time.Now(),
		Before: event.CloneAll(before),
		After:  event.CloneAll(after),
	})
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
	m.cursor = len(m.entries)
}

// Undo steps the cursor back and returns a copy of the prior snapshot.
// With nothing to undo it is a no-op and returns false.
func (m *Manager) Undo() ([]event.Event, bool) {
	if m.cursor == 0 {
		return nil, false
	}
	m.cursor--
	return event.CloneAll(m.entries[m.cursor].Before), true
}

// Redo steps the cursor forward and returns a copy of the undone snapshot.
// With nothing to redo it is a no-op and returns false.
func (m *Manager) Redo() ([]event.Event, bool) {
	if m.cursor >= len(m.entries) {
		return nil, false
	}
	entry := m.entries[m.cursor]
	m.cursor++
	return event.CloneAll(entry.After), true
}

// CanUndo reports whether an undo would have any effect.
func (m *Manager) CanUndo() bool { return m.cursor > 0 }

// CanRedo reports whether a redo would have any effect.
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries) }

// Len returns the number of retained entries.
func (m *Manager) Len() int { return len(m.entries) }

// Entries returns the retained entries, oldest first.
func (m *Manager) Entries() []Entry { return m.entries }
