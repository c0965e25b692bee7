// Package pending tracks in-flight remote mutation batches by opaque token.
package pending

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Tracker derives a single "saving" signal from the set of outstanding
// tokens. Safe for concurrent use.
type Tracker struct {
	mu   sync.Mutex
	open map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{open: make(map[string]struct{})}
}

// Begin registers a new in-flight batch and returns its token. Tokens are
// unique even for rapid overlapping calls: the timestamp alone is not
// enough, so a random suffix disambiguates.
func (t *Tracker) Begin() string {
	token := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())
	t.mu.Lock()
	t.open[token] = struct{}{}
	t.mu.Unlock()
	return token
}

// End settles a batch. Unknown or already-ended tokens are ignored, so a
// double End cannot corrupt the busy count.
func (t *Tracker) End(token string) {
	t.mu.Lock()
	delete(t.open, token)
	t.mu.Unlock()
}

// Busy reports whether any batch begun via Begin has not yet ended.
func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open) > 0
}

// Outstanding returns the number of unsettled batches.
func (t *Tracker) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open)
}
