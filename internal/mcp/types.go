package mcp

import (
	"fmt"
	"time"

	"github.com/halcyra/cadence/internal/domain/event"
)

// EventPayload is the wire form of an event: timestamps travel as ISO 8601
// strings so clients never depend on Go's time encoding.
type EventPayload struct {
	ID            string                `json:"id,omitempty"`
	Title         string                `json:"title"`
	Description   string                `json:"description,omitempty"`
	Start         string                `json:"start"`
	End           string                `json:"end"`
	AllDay        bool                  `json:"all_day,omitempty"`
	Recurrence    string                `json:"recurrence,omitempty"`
	RecurrenceEnd string                `json:"recurrence_end,omitempty"`
	SeriesID      *string               `json:"series_id,omitempty"`
	Type          string                `json:"type,omitempty"`
	Status        string                `json:"status,omitempty"`
	Priority      string                `json:"priority,omitempty"`
	Amount        float64               `json:"amount,omitempty"`
	WorkoutLog    []event.ExerciseEntry `json:"workout_log,omitempty"`
	IsInstance    bool                  `json:"is_instance,omitempty"`
}

func encodeEvent(e event.Event) EventPayload {
	p := EventPayload{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start.Format(time.RFC3339),
		End:         e.End.Format(time.RFC3339),
		AllDay:      e.AllDay,
		Recurrence:  string(e.Recurrence),
		SeriesID:    e.SeriesID,
		Type:        string(e.Type),
		Status:      string(e.Status),
		Priority:    string(e.Priority),
		Amount:      e.Amount,
		WorkoutLog:  e.WorkoutLog,
		IsInstance:  e.IsInstance,
	}
	if e.RecurrenceEnd != nil {
		p.RecurrenceEnd = e.RecurrenceEnd.Format(time.RFC3339)
	}
	return p
}

func encodeEvents(events []event.Event) []EventPayload {
	out := make([]EventPayload, len(events))
	for i, e := range events {
		out[i] = encodeEvent(e)
	}
	return out
}

func decodeEvent(p EventPayload) (event.Event, error) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return event.Event{}, fmt.Errorf("parsing start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		return event.Event{}, fmt.Errorf("parsing end: %w", err)
	}
	e := event.Event{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Start:       start,
		End:         end,
		AllDay:      p.AllDay,
		Recurrence:  event.Recurrence(p.Recurrence),
		SeriesID:    p.SeriesID,
		Type:        event.Type(p.Type),
		Status:      event.Status(p.Status),
		Priority:    event.Priority(p.Priority),
		Amount:      p.Amount,
		WorkoutLog:  p.WorkoutLog,
		IsInstance:  p.IsInstance,
	}
	if p.RecurrenceEnd != "" {
		rend, err := time.Parse(time.RFC3339, p.RecurrenceEnd)
		if err != nil {
			return event.Event{}, fmt.Errorf("parsing recurrence_end: %w", err)
		}
		e.RecurrenceEnd = &rend
	}
	return e, nil
}

type ListEventsParams struct {
	Start   string `json:"start" jsonschema:"window start, ISO 8601"`
	End     string `json:"end" jsonschema:"window end, ISO 8601"`
	Type    string `json:"type,omitempty" jsonschema:"filter by event type, or all"`
	Status  string `json:"status,omitempty" jsonschema:"filter by status, or all"`
	Search  string `json:"search,omitempty" jsonschema:"case-insensitive substring of title or description"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"re-fetch from the server before listing"`
}

type ListEventsResult struct {
	Events []EventPayload `json:"events"`
}

type SaveEventParams struct {
	Event  EventPayload `json:"event"`
	Scope  string       `json:"scope,omitempty" jsonschema:"this, following or all; required when editing a series member"`
	Preset string       `json:"preset,omitempty" jsonschema:"workout preset name; fills workout_log when the event has none"`
}

// ActionOutcome mirrors the service's action result on the wire.
type ActionOutcome struct {
	ScopeRequired bool          `json:"scope_required"`
	Saving        bool          `json:"saving"`
	Event         *EventPayload `json:"event,omitempty"`
}

type ChooseScopeParams struct {
	Scope string `json:"scope" jsonschema:"this, following or all"`
}

type CancelScopeParams struct{}

type CancelScopeResult struct {
	Cancelled bool `json:"cancelled"`
}

type DeleteEventParams struct {
	ID    string `json:"id"`
	Scope string `json:"scope,omitempty" jsonschema:"this, following or all; required when deleting a series member"`
}

type UndoParams struct{}

type RedoParams struct{}

// HistoryStepResult reports whether the step applied and the base-event
// list afterwards.
type HistoryStepResult struct {
	Applied bool           `json:"applied"`
	Events  []EventPayload `json:"events"`
}

type GetStatusParams struct{}

type ListPresetsParams struct{}

type PresetPayload struct {
	Name      string                `json:"name"`
	Exercises []event.ExerciseEntry `json:"exercises"`
}

type ListPresetsResult struct {
	Presets []PresetPayload `json:"presets"`
}

type ExportCalendarParams struct {
	Start string `json:"start" jsonschema:"window start, ISO 8601"`
	End   string `json:"end" jsonschema:"window end, ISO 8601"`
}

type ExportCalendarResult struct {
	ICS string `json:"ics"`
}
