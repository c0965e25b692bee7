package event

import "time"

// Recurrence is the fixed cadence of a repeating event.
type Recurrence string

const (
	RecurNone     Recurrence = "none"
	RecurDaily    Recurrence = "daily"
	RecurWeekly   Recurrence = "weekly"
	RecurBiweekly Recurrence = "biweekly"
	RecurMonthly  Recurrence = "monthly"
	RecurYearly   Recurrence = "yearly"
)

// Type categorizes what an event tracks.
type Type string

const (
	TypeTask    Type = "task"
	TypeProject Type = "project"
	TypeExpense Type = "expense"
	TypeWorkout Type = "workout"
)

// Status represents the workflow state of an event.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

// Priority ranks an event's importance.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TrackingMode selects which value fields of an ExerciseEntry are meaningful.
type TrackingMode string

const (
	TrackReps     TrackingMode = "reps"
	TrackDuration TrackingMode = "duration"
	TrackDistance TrackingMode = "distance"
)

// ExerciseEntry is one line of a workout log.
type ExerciseEntry struct {
	Name        string       `json:"name" yaml:"name"`
	Mode        TrackingMode `json:"mode" yaml:"mode"`
	Sets        int          `json:"sets,omitempty" yaml:"sets,omitempty"`
	Reps        int          `json:"reps,omitempty" yaml:"reps,omitempty"`
	WeightKg    float64      `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	DurationSec int          `json:"duration_sec,omitempty" yaml:"duration_sec,omitempty"`
	DistanceKm  float64      `json:"distance_km,omitempty" yaml:"distance_km,omitempty"`
}

// Event is the persisted unit: either a standalone event or the defining
// event of a recurring series. Virtual occurrences produced by expansion
// carry IsInstance and are never persisted.
type Event struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	AllDay        bool            `json:"all_day"`
	Recurrence    Recurrence      `json:"recurrence"`
	RecurrenceEnd *time.Time      `json:"recurrence_end,omitempty"`
	SeriesID      *string         `json:"series_id,omitempty"`
	Type          Type            `json:"type"`
	Status        Status          `json:"status"`
	Priority      Priority        `json:"priority"`
	Amount        float64         `json:"amount,omitempty"`
	WorkoutLog    []ExerciseEntry `json:"workout_log,omitempty"`
	IsInstance    bool            `json:"is_instance,omitempty"`
}

// Recurring reports whether the event defines a repeating series.
func (e Event) Recurring() bool {
	return e.Recurrence != "" && e.Recurrence != RecurNone
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	out := e
	if e.RecurrenceEnd != nil {
		end := *e.RecurrenceEnd
		out.RecurrenceEnd = &end
	}
	if e.SeriesID != nil {
		sid := *e.SeriesID
		out.SeriesID = &sid
	}
	if e.WorkoutLog != nil {
		out.WorkoutLog = make([]ExerciseEntry, len(e.WorkoutLog))
		copy(out.WorkoutLog, e.WorkoutLog)
	}
	return out
}

// CloneAll returns a deep copy of an event list, suitable for snapshots.
func CloneAll(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}
