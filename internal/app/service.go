// Package app orchestrates the event store, recurrence view, series
// mutation protocol, history and pending-request tracking behind one
// service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/halcyra/cadence/internal/domain/history"
	"github.com/halcyra/cadence/internal/domain/pending"
	"github.com/halcyra/cadence/internal/domain/series"
	"github.com/halcyra/cadence/internal/mirror"
	"github.com/halcyra/cadence/internal/preset"
	"github.com/halcyra/cadence/internal/remote"
)

// Service owns the canonical base-event list and applies every mutation
// through the history manager. Local state changes synchronously and
// optimistically; the implied remote calls run afterwards as concurrent
// batches tracked by the pending-request tracker. Failed remote calls are
// surfaced but never rolled back locally; the next full refresh restores
// server truth.
type Service struct {
	store   remote.Store
	history *history.Manager
	tracker *pending.Tracker
	chooser *series.Chooser
	mirror  *mirror.Mirror
	presets *preset.Library
	logger  *slog.Logger

	mu        sync.Mutex
	events    []event.Event
	revision  uint64
	lastBatch []string
	view      viewCache

	batches sync.WaitGroup
}

// viewCache memoizes the last visible-event computation. It is keyed on
// the store revision, window and filters and nothing else, so unrelated
// state changes never trigger recomputation.
type viewCache struct {
	valid    bool
	revision uint64
	window   event.Window
	filters  event.Filters
	result   []event.Event
}

func (c viewCache) hit(revision uint64, w event.Window, f event.Filters) bool {
	return c.valid && c.revision == revision && c.filters == f &&
		c.window.Start.Equal(w.Start) && c.window.End.Equal(w.End)
}

// ActionResult reports the outcome of a save or delete request.
type ActionResult struct {
	// ScopeRequired is set when the action targets a series member and is
	// now held awaiting an explicit scope choice.
	ScopeRequired bool
	// Saving is set when a remote mutation batch was launched.
	Saving bool
	// Event is the persisted target for save actions.
	Event *event.Event
}

// Status is a snapshot of the service's bookkeeping state.
type Status struct {
	Saving          bool     `json:"saving"`
	AwaitingScope   bool     `json:"awaiting_scope"`
	CanUndo         bool     `json:"can_undo"`
	CanRedo         bool     `json:"can_redo"`
	HistoryDepth    int      `json:"history_depth"`
	EventCount      int      `json:"event_count"`
	LastBatchErrors []string `json:"last_batch_errors,omitempty"`
}

// NewService wires the service. tracker may be shared with a mirror's
// idle gate; nil tracker, mirror, presets and logger are all acceptable.
func NewService(store remote.Store, tracker *pending.Tracker, mir *mirror.Mirror, presets *preset.Library, logger *slog.Logger) *Service {
	if tracker == nil {
		tracker = pending.NewTracker()
	}
	if presets == nil {
		presets = &preset.Library{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		history: history.NewManager(),
		tracker: tracker,
		chooser: series.NewChooser(),
		mirror:  mir,
		presets: presets,
		logger:  logger,
	}
}

// Presets returns the workout template library.
func (s *Service) Presets() *preset.Library {
	return s.presets
}

// Refresh replaces local state with server truth. It bypasses the history
// stack: re-fetching is reconciliation, not a user action.
func (s *Service) Refresh(ctx context.Context, userID string) error {
	events, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("refreshing events: %w", err)
	}
	s.mu.Lock()
	s.events = events
	s.revision++
	s.mu.Unlock()

	s.scheduleMirror(userID)
	return nil
}

// Events returns a copy of the base-event list.
func (s *Service) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return event.CloneAll(s.events)
}

// Visible computes the event set for a window and filter combination,
// reusing the memoized result when none of its inputs changed.
func (s *Service) Visible(w event.Window, f event.Filters) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view.hit(s.revision, w, f) {
		return event.CloneAll(s.view.result)
	}
	result := event.BuildVisibleEvents(s.events, w, f)
	s.view = viewCache{valid: true, revision: s.revision, window: w, filters: f, result: result}
	return event.CloneAll(result)
}

// Save persists an edit or creation. When the target belongs to a series
// and no scope is given, the edit is parked until ChooseScope or
// CancelScope; otherwise the local store mutates immediately and the
// remote batch is launched.
func (s *Service) Save(ctx context.Context, userID string, target event.Event, scope series.Scope) (ActionResult, error) {
	target = s.normalize(target)
	isNew := !s.persisted(target.ID)

	if target.SeriesID != nil && scope == "" {
		if err := s.chooser.Hold(series.PendingAction{Target: target, IsNew: isNew}); err != nil {
			return ActionResult{}, err
		}
		return ActionResult{ScopeRequired: true}, nil
	}
	return s.apply(ctx, userID, series.PendingAction{Target: target, IsNew: isNew}, scope)
}

// Delete removes an event (or series members, per scope). The target may
// be a persisted base event or a virtual instance id.
func (s *Service) Delete(ctx context.Context, userID, id string, scope series.Scope) (ActionResult, error) {
	target, err := s.resolveTarget(id)
	if err != nil {
		return ActionResult{}, err
	}

	if target.SeriesID != nil && scope == "" {
		if err := s.chooser.Hold(series.PendingAction{Target: target, Delete: true}); err != nil {
			return ActionResult{}, err
		}
		return ActionResult{ScopeRequired: true}, nil
	}
	return s.apply(ctx, userID, series.PendingAction{Target: target, Delete: true}, scope)
}

// ChooseScope applies the held edit or delete with the user's choice.
func (s *Service) ChooseScope(ctx context.Context, userID string, scope series.Scope) (ActionResult, error) {
	action, err := s.chooser.Choose()
	if err != nil {
		return ActionResult{}, err
	}
	defer s.chooser.Done()
	return s.apply(ctx, userID, action, scope)
}

// CancelScope discards the held action with no effect.
func (s *Service) CancelScope() {
	s.chooser.Cancel()
}

// Undo restores the snapshot taken before the most recent action and
// returns the resulting list. It touches local state only: remote calls
// from the original action are neither re-issued nor cancelled.
func (s *Service) Undo(userID string) ([]event.Event, bool) {
	return s.restore(userID, func() ([]event.Event, bool) { return s.history.Undo() })
}

// Redo re-applies the most recently undone action's snapshot.
func (s *Service) Redo(userID string) ([]event.Event, bool) {
	return s.restore(userID, func() ([]event.Event, bool) { return s.history.Redo() })
}

// Status reports the saving flag and related bookkeeping.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := make([]string, len(s.lastBatch))
	copy(errs, s.lastBatch)
	return Status{
		Saving:          s.tracker.Busy(),
		AwaitingScope:   s.chooser.State() == series.StateAwaitingChoice,
		CanUndo:         s.history.CanUndo(),
		CanRedo:         s.history.CanRedo(),
		HistoryDepth:    s.history.Len(),
		EventCount:      len(s.events),
		LastBatchErrors: errs,
	}
}

// Wait blocks until every launched remote batch has settled. Used by
// shutdown and tests.
func (s *Service) Wait() {
	s.batches.Wait()
}

// apply resolves the action into a plan, mutates local state through the
// history manager, then launches the remote batch.
func (s *Service) apply(ctx context.Context, userID string, action series.PendingAction, scope series.Scope) (ActionResult, error) {
	s.mu.Lock()

	var (
		plan series.Plan
		err  error
	)
	if action.Delete {
		plan, err = series.ResolveDelete(s.events, action.Target, scope)
	} else {
		plan, err = series.ResolveSave(s.events, action.Target, scope, action.IsNew)
	}
	if err != nil {
		s.mu.Unlock()
		return ActionResult{}, err
	}

	before := event.CloneAll(s.events)
	s.events = plan.Events
	s.revision++
	s.history.Record(plan.Label, before, plan.Events)
	s.mu.Unlock()

	launched := s.launchBatch(ctx, userID, plan)

	res := ActionResult{Saving: launched}
	if !action.Delete && len(plan.TargetOps) > 0 {
		saved := plan.TargetOps[0].Event.Clone()
		res.Event = &saved
	}
	return res, nil
}

// launchBatch issues a plan's remote operations in the background:
// sibling operations concurrently, target operations after they settle.
// The batch always runs to completion; only its local effects are
// reversible, via undo.
func (s *Service) launchBatch(ctx context.Context, userID string, plan series.Plan) bool {
	if len(plan.SiblingOps) == 0 && len(plan.TargetOps) == 0 {
		s.scheduleMirror(userID)
		return false
	}

	token := s.tracker.Begin()
	bctx := context.WithoutCancel(ctx)

	s.batches.Add(1)
	go func() {
		defer s.batches.Done()
		defer s.tracker.End(token)

		errs := s.executeBatch(bctx, plan)

		s.mu.Lock()
		s.lastBatch = s.lastBatch[:0]
		for _, err := range errs {
			s.lastBatch = append(s.lastBatch, err.Error())
		}
		s.mu.Unlock()

		for _, err := range errs {
			s.logger.Error("remote operation failed", "action", plan.Label, "error", err)
		}
		s.scheduleMirror(userID)
	}()
	return true
}

// executeBatch runs the plan best effort: every operation is attempted,
// per-call failures are collected, nothing is retried or rolled back.
func (s *Service) executeBatch(ctx context.Context, plan series.Plan) []error {
	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for _, op := range plan.SiblingOps {
		wg.Add(1)
		go func(op series.RemoteOp) {
			defer wg.Done()
			if err := s.execOp(ctx, op); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(op)
	}
	wg.Wait()

	for _, op := range plan.TargetOps {
		if err := s.execOp(ctx, op); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (s *Service) execOp(ctx context.Context, op series.RemoteOp) error {
	switch op.Kind {
	case series.OpCreate:
		if _, err := s.store.Create(ctx, op.Event); err != nil {
			return fmt.Errorf("create %s: %w", op.Event.ID, err)
		}
	case series.OpUpdate:
		if err := s.store.Update(ctx, op.Event); err != nil {
			return fmt.Errorf("update %s: %w", op.Event.ID, err)
		}
	case series.OpDelete:
		if err := s.store.Delete(ctx, op.ID); err != nil {
			return fmt.Errorf("delete %s: %w", op.ID, err)
		}
	}
	return nil
}

func (s *Service) restore(userID string, step func() ([]event.Event, bool)) ([]event.Event, bool) {
	s.mu.Lock()
	snapshot, ok := step()
	if ok {
		s.events = snapshot
		s.revision++
	}
	result := event.CloneAll(s.events)
	s.mu.Unlock()

	if ok {
		s.scheduleMirror(userID)
	}
	return result, ok
}

// normalize fills in identity and defaults for incoming save targets.
func (s *Service) normalize(target event.Event) event.Event {
	target = target.Clone()
	if target.ID == "" {
		target.ID = uuid.NewString()
	}
	if target.Recurrence == "" {
		target.Recurrence = event.RecurNone
	}
	if target.Status == "" {
		target.Status = event.StatusPending
	}
	if target.Priority == "" {
		target.Priority = event.PriorityMedium
	}
	return target
}

// resolveTarget finds a persisted event by id, or materializes the
// virtual instance a recurrence-derived id refers to.
func (s *Service) resolveTarget(id string) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := findByID(s.events, id); ok {
		return e.Clone(), nil
	}

	baseID, start, ok := event.ParseInstanceID(id)
	if !ok {
		return event.Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	base, found := findByID(s.events, baseID)
	if !found {
		return event.Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	inst := base.Clone()
	inst.ID = id
	inst.End = start.Add(base.End.Sub(base.Start))
	inst.Start = start
	inst.IsInstance = true
	return inst, nil
}

func (s *Service) persisted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := findByID(s.events, id)
	return ok
}

func (s *Service) scheduleMirror(userID string) {
	if s.mirror == nil {
		return
	}
	s.mu.Lock()
	snapshot := event.CloneAll(s.events)
	s.mu.Unlock()
	s.mirror.Schedule(userID, snapshot)
}

func findByID(events []event.Event, id string) (event.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return event.Event{}, false
}
