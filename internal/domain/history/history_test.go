package history_test

import (
	"fmt"
	"testing"

	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/halcyra/cadence/internal/domain/history"
	"github.com/stretchr/testify/require"
)

func store(ids ...string) []event.Event {
	out := make([]event.Event, len(ids))
	for i, id := range ids {
		out[i] = event.Event{ID: id}
	}
	return out
}

func ids(events []event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m := history.NewManager()
	before := store("a")
	after := store("a", "b")
	m.Record("add b", before, after)

	undone, ok := m.Undo()
	require.True(t, ok)
	require.Equal(t, []string{"a"}, ids(undone))

	redone, ok := m.Redo()
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, ids(redone))

	// undo → redo → undo restores the exact pre-action snapshot.
	undone, ok = m.Undo()
	require.True(t, ok)
	require.Equal(t, []string{"a"}, ids(undone))
}

func TestUndoRedoOutOfRangeIsNoOp(t *testing.T) {
	m := history.NewManager()

	_, ok := m.Undo()
	require.False(t, ok)
	_, ok = m.Redo()
	require.False(t, ok)

	m.Record("x", store(), store("a"))
	_, ok = m.Redo()
	require.False(t, ok, "nothing ahead of the cursor")
}

func TestRecordTruncatesRedoTail(t *testing.T) {
	m := history.NewManager()
	m.Record("one", store(), store("a"))
	m.Record("two", store("a"), store("a", "b"))

	_, ok := m.Undo()
	require.True(t, ok)

	m.Record("three", store("a"), store("a", "c"))
	require.Equal(t, 2, m.Len())

	_, ok = m.Redo()
	require.False(t, ok, "old future discarded")

	undone, ok := m.Undo()
	require.True(t, ok)
	require.Equal(t, []string{"a"}, ids(undone))
}

func TestStackCapEvictsOldest(t *testing.T) {
	m := history.NewManager()
	for i := 0; i < 50; i++ {
		m.Record(fmt.Sprintf("n%d", i), store(), store(fmt.Sprintf("e%d", i)))
	}
	require.Equal(t, 50, m.Len())

	m.Record("one more", store(), store("newest"))
	require.Equal(t, 50, m.Len())
	require.Equal(t, "n1", m.Entries()[0].Label, "oldest entry evicted")
	require.Equal(t, "one more", m.Entries()[49].Label)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	m := history.NewManager()
	live := store("a")
	m.Record("snap", live, live)

	live[0].ID = "mutated"

	undone, ok := m.Undo()
	require.True(t, ok)
	require.Equal(t, "a", undone[0].ID)

	undone[0].ID = "also mutated"
	redone, ok := m.Redo()
	require.True(t, ok)
	require.Equal(t, "a", redone[0].ID)
}
