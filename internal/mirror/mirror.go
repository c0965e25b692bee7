// Package mirror maintains a per-user local copy of the event list for
// offline redisplay.
package mirror

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/halcyra/cadence/internal/domain/event"
)

// Mirror writes the event list to a JSON file per user. Writes are
// debounced and gated on the pending-request tracker being idle, so the
// file is not rewritten on every keystroke-level change or while mutation
// batches are still in flight.
type Mirror struct {
	dir      string
	debounce time.Duration
	idle     func() bool
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	user    string
	events  []event.Event
	dirty   bool
}

// New creates a mirror rooted at dir. idle reports whether remote
// mutations are currently quiescent; a nil idle gate always allows writes.
func New(dir string, debounce time.Duration, idle func() bool, logger *slog.Logger) (*Mirror, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating mirror dir: %w", err)
	}
	if idle == nil {
		idle = func() bool { return true }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{dir: dir, debounce: debounce, idle: idle, logger: logger}, nil
}

// Schedule queues a debounced write of the user's event list. Subsequent
// calls within the debounce window supersede earlier ones.
func (m *Mirror) Schedule(userID string, events []event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = userID
	m.events = event.CloneAll(events)
	m.dirty = true

	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.debounce, m.tryFlush)
}

// tryFlush writes the queued snapshot, rescheduling itself while mutation
// batches are still settling.
func (m *Mirror) tryFlush() {
	m.mu.Lock()
	if !m.dirty {
		m.mu.Unlock()
		return
	}
	if !m.idle() {
		m.timer = time.AfterFunc(m.debounce, m.tryFlush)
		m.mu.Unlock()
		return
	}
	user, events := m.user, m.events
	m.dirty = false
	m.mu.Unlock()

	if err := m.write(user, events); err != nil {
		m.logger.Error("mirror write failed", "user", user, "error", err)
	}
}

// Flush forces any queued snapshot to disk immediately, ignoring the idle
// gate. Intended for shutdown.
func (m *Mirror) Flush() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	if !m.dirty {
		m.mu.Unlock()
		return nil
	}
	user, events := m.user, m.events
	m.dirty = false
	m.mu.Unlock()

	return m.write(user, events)
}

// Load reads the cached event list for a user. A missing file yields an
// empty list, not an error.
func (m *Mirror) Load(userID string) ([]event.Event, error) {
	data, err := os.ReadFile(m.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []event.Event{}, nil
		}
		return nil, fmt.Errorf("reading mirror: %w", err)
	}
	var events []event.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decoding mirror: %w", err)
	}
	return events, nil
}

func (m *Mirror) write(userID string, events []event.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding mirror: %w", err)
	}
	tmp := m.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing mirror: %w", err)
	}
	if err := os.Rename(tmp, m.path(userID)); err != nil {
		return fmt.Errorf("replacing mirror: %w", err)
	}
	return nil
}

func (m *Mirror) path(userID string) string {
	return filepath.Join(m.dir, userID+".json")
}
