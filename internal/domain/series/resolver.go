// Package series resolves edits and deletes against recurring series into
// concrete local and remote mutation plans.
package series

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/halcyra/cadence/internal/domain/event"
)

// Scope is the blast radius of an edit or delete on a series member.
type Scope string

const (
	// ScopeThis detaches the target from its series and touches nothing else.
	ScopeThis Scope = "this"
	// ScopeFollowing splits the series at the target's start date.
	ScopeFollowing Scope = "following"
	// ScopeAll collapses the whole series onto the target.
	ScopeAll Scope = "all"
)

// ParseScope validates a user-supplied scope string.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeThis, ScopeFollowing, ScopeAll:
		return Scope(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// OpKind is the kind of a remote store operation.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// RemoteOp is one remote store call implied by a scope resolution.
type RemoteOp struct {
	Kind  OpKind
	Event event.Event // payload for create/update
	ID    string      // target for delete
}

// Plan is the outcome of resolving one user action: the remote calls to
// issue and the base-event list the local store should hold afterwards.
// SiblingOps are issued concurrently; TargetOps run only after every
// sibling call has settled. The plan is best effort, not a transaction:
// partial failure leaves already-applied work in place.
type Plan struct {
	Label      string
	SiblingOps []RemoteOp
	TargetOps  []RemoteOp
	Events     []event.Event
}

// ResolveSave computes the plan for persisting an edit (or creation) of
// target under the chosen scope. isNew marks targets with no persisted
// record yet: brand-new events and virtual instances being promoted.
// Scope is ignored for events outside any series.
func ResolveSave(events []event.Event, target event.Event, scope Scope, isNew bool) (Plan, error) {
	target = target.Clone()

	// A recurring event gets its series identity at save time if absent.
	if target.Recurring() && target.SeriesID == nil {
		sid := uuid.NewString()
		target.SeriesID = &sid
	}

	if target.SeriesID == nil || !hasPersistedSiblings(events, target) {
		return singleSavePlan(events, target, isNew), nil
	}

	switch scope {
	case ScopeThis:
		detached := target
		detached.SeriesID = nil
		detached.Recurrence = event.RecurNone
		if isNew {
			// Promoted instances get a real identity; the synthetic
			// instance ID would collide with future expansions.
			detached.ID = uuid.NewString()
			detached.IsInstance = false
		}
		return singleSavePlan(events, detached, isNew), nil

	case ScopeFollowing:
		siblings := persistedSiblings(events, target, true)
		newSID := uuid.NewString()
		target.SeriesID = &newSID
		if isNew {
			target.ID = uuid.NewString()
			target.IsInstance = false
		}
		return splitPlan("edit following events", events, target, siblings, isNew), nil

	case ScopeAll:
		siblings := persistedSiblings(events, target, false)
		if isNew {
			target.ID = uuid.NewString()
			target.IsInstance = false
		}
		return splitPlan("edit entire series", events, target, siblings, isNew), nil

	case "":
		return Plan{}, ErrScopeRequired
	default:
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
}

// ResolveDelete computes the plan for deleting target under the chosen
// scope, substituting delete for persist on the target.
func ResolveDelete(events []event.Event, target event.Event, scope Scope) (Plan, error) {
	if target.SeriesID == nil || !hasPersistedSiblings(events, target) {
		plan := Plan{Label: "delete event", Events: removeByID(events, target.ID)}
		if isPersisted(events, target.ID) {
			plan.TargetOps = []RemoteOp{{Kind: OpDelete, ID: target.ID}}
		}
		return plan, nil
	}

	switch scope {
	case ScopeThis:
		plan := Plan{Label: "delete event", Events: removeByID(events, target.ID)}
		if isPersisted(events, target.ID) {
			plan.TargetOps = []RemoteOp{{Kind: OpDelete, ID: target.ID}}
		}
		return plan, nil

	case ScopeFollowing, ScopeAll:
		onlyFollowing := scope == ScopeFollowing
		siblings := persistedSiblings(events, target, onlyFollowing)

		plan := Plan{Label: "delete series events"}
		for _, sib := range siblings {
			plan.SiblingOps = append(plan.SiblingOps, RemoteOp{Kind: OpDelete, ID: sib.ID})
		}
		// The target itself is deleted last, after the siblings settle.
		if isPersisted(events, target.ID) {
			plan.TargetOps = []RemoteOp{{Kind: OpDelete, ID: target.ID}}
		}

		remaining := removeByID(events, target.ID)
		for _, sib := range siblings {
			remaining = removeByID(remaining, sib.ID)
		}
		plan.Events = remaining
		return plan, nil

	case "":
		return Plan{}, ErrScopeRequired
	default:
		return Plan{}, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
}

// singleSavePlan persists target as a standalone create-or-update with no
// effect on other base events.
func singleSavePlan(events []event.Event, target event.Event, isNew bool) Plan {
	kind := OpUpdate
	if isNew {
		kind = OpCreate
	}
	return Plan{
		Label:     "save event",
		TargetOps: []RemoteOp{{Kind: kind, Event: target}},
		Events:    upsert(events, target),
	}
}

// splitPlan deletes the given siblings remotely and persists target as the
// (new or surviving) series representative.
func splitPlan(label string, events []event.Event, target event.Event, siblings []event.Event, isNew bool) Plan {
	plan := Plan{Label: label}
	for _, sib := range siblings {
		plan.SiblingOps = append(plan.SiblingOps, RemoteOp{Kind: OpDelete, ID: sib.ID})
	}
	kind := OpUpdate
	if isNew {
		kind = OpCreate
	}
	plan.TargetOps = []RemoteOp{{Kind: kind, Event: target}}

	remaining := events
	for _, sib := range siblings {
		remaining = removeByID(remaining, sib.ID)
	}
	plan.Events = upsert(remaining, target)
	return plan
}

// persistedSiblings lists the base events sharing the target's series,
// excluding the target itself. With onlyFollowing set, members starting
// before the target are left untouched.
func persistedSiblings(events []event.Event, target event.Event, onlyFollowing bool) []event.Event {
	if target.SeriesID == nil {
		return nil
	}
	var out []event.Event
	for _, e := range events {
		if e.IsInstance || e.SeriesID == nil || *e.SeriesID != *target.SeriesID {
			continue
		}
		if e.ID == target.ID {
			continue
		}
		if onlyFollowing && e.Start.Before(target.Start) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func hasPersistedSiblings(events []event.Event, target event.Event) bool {
	if target.SeriesID == nil {
		return false
	}
	for _, e := range events {
		if e.IsInstance || e.SeriesID == nil {
			continue
		}
		if *e.SeriesID == *target.SeriesID {
			return true
		}
	}
	return false
}

func isPersisted(events []event.Event, id string) bool {
	for _, e := range events {
		if !e.IsInstance && e.ID == id {
			return true
		}
	}
	return false
}

func removeByID(events []event.Event, id string) []event.Event {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func upsert(events []event.Event, target event.Event) []event.Event {
	out := make([]event.Event, 0, len(events)+1)
	replaced := false
	for _, e := range events {
		if e.ID == target.ID {
			out = append(out, target)
			replaced = true
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, target)
	}
	return out
}
