package series

import (
	"sync"

	"github.com/halcyra/cadence/internal/domain/event"
)

// State is the scope-selection phase for a pending series edit.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingChoice State = "awaiting_scope_choice"
	StateApplying       State = "applying"
)

// PendingAction is an edit or delete held until the user picks a scope.
type PendingAction struct {
	Target event.Event
	IsNew  bool
	Delete bool
}

// Chooser holds at most one edit while the user decides its scope. There
// is no default and no timeout: the action waits until an explicit choice
// or a cancel, which discards it without effect.
type Chooser struct {
	mu      sync.Mutex
	state   State
	pending PendingAction
}

// NewChooser starts in the idle state.
func NewChooser() *Chooser {
	return &Chooser{state: StateIdle}
}

// State returns the current phase.
func (c *Chooser) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns the held action while a choice is awaited.
func (c *Chooser) Pending() (PendingAction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAwaitingChoice {
		return PendingAction{}, false
	}
	return c.pending, true
}

// Hold parks an action until a scope is chosen. Only one action can wait
// at a time.
func (c *Chooser) Hold(p PendingAction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return ErrChoiceInProgress
	}
	c.pending = p
	c.state = StateAwaitingChoice
	return nil
}

// Choose hands back the held action and moves to applying. The caller must
// finish with Done (or Cancel on failure).
func (c *Chooser) Choose() (PendingAction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAwaitingChoice {
		return PendingAction{}, ErrNoPendingChoice
	}
	c.state = StateApplying
	return c.pending, nil
}

// Done returns to idle after the chosen action has been applied.
func (c *Chooser) Done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.pending = PendingAction{}
}

// Cancel discards any held action and returns to idle with no effect.
func (c *Chooser) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.pending = PendingAction{}
}
