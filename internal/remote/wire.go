package remote

import (
	"fmt"
	"time"

	"github.com/halcyra/cadence/internal/domain/event"
)

// wireEvent is the JSON shape events take on the wire. Timestamps are
// ISO-8601 strings; field names follow the store's camelCase convention.
type wireEvent struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Start         string         `json:"start"`
	End           string         `json:"end"`
	AllDay        bool           `json:"allDay"`
	Recurrence    string         `json:"recurrence"`
	RecurrenceEnd *string        `json:"recurrenceEnd,omitempty"`
	SeriesID      *string        `json:"seriesId,omitempty"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Priority      string         `json:"priority"`
	Amount        float64        `json:"amount,omitempty"`
	WorkoutLog    []wireExercise `json:"workoutLog,omitempty"`
}

type wireExercise struct {
	Name        string  `json:"name"`
	Mode        string  `json:"mode"`
	Sets        int     `json:"sets,omitempty"`
	Reps        int     `json:"reps,omitempty"`
	WeightKg    float64 `json:"weightKg,omitempty"`
	DurationSec int     `json:"durationSec,omitempty"`
	DistanceKm  float64 `json:"distanceKm,omitempty"`
}

func encodeEvent(e event.Event) wireEvent {
	w := wireEvent{
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
	}
	if e.RecurrenceEnd != nil {
		s := e.RecurrenceEnd.Format(time.RFC3339)
		w.RecurrenceEnd = &s
	}
	for _, ex := range e.WorkoutLog {
		w.WorkoutLog = append(w.WorkoutLog, wireExercise{
			Name:        ex.Name,
			Mode:        string(ex.Mode),
			Sets:        ex.Sets,
			Reps:        ex.Reps,
			WeightKg:    ex.WeightKg,
			DurationSec: ex.DurationSec,
			DistanceKm:  ex.DistanceKm,
		})
	}
	return w
}

func decodeEvent(w wireEvent) (event.Event, error) {
	start, err := time.Parse(time.RFC3339, w.Start)
	if err != nil {
		return event.Event{}, fmt.Errorf("parsing start of %s: %w", w.ID, err)
	}
	end, err := time.Parse(time.RFC3339, w.End)
	if err != nil {
		return event.Event{}, fmt.Errorf("parsing end of %s: %w", w.ID, err)
	}
	e := event.Event{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Start:       start,
		End:         end,
		AllDay:      w.AllDay,
		Recurrence:  event.Recurrence(w.Recurrence),
		SeriesID:    w.SeriesID,
		Type:        event.Type(w.Type),
		Status:      event.Status(w.Status),
		Priority:    event.Priority(w.Priority),
		Amount:      w.Amount,
	}
	if w.RecurrenceEnd != nil {
		recEnd, err := time.Parse(time.RFC3339, *w.RecurrenceEnd)
		if err != nil {
			return event.Event{}, fmt.Errorf("parsing recurrenceEnd of %s: %w", w.ID, err)
		}
		e.RecurrenceEnd = &recEnd
	}
	for _, ex := range w.WorkoutLog {
		e.WorkoutLog = append(e.WorkoutLog, event.ExerciseEntry{
			Name:        ex.Name,
			Mode:        event.TrackingMode(ex.Mode),
			Sets:        ex.Sets,
			Reps:        ex.Reps,
			WeightKg:    ex.WeightKg,
			DurationSec: ex.DurationSec,
			DistanceKm:  ex.DistanceKm,
		})
	}
	return e, nil
}
