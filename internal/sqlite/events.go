package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/halcyra/cadence/internal/remote"
)

// EventStore implements remote.Store over a local SQLite database,
// scoped to a single user. Timestamps are stored as ISO-8601 text and
// parsed back on read; the workout log is a JSON column.
type EventStore struct {
	db     *DB
	userID string
}

// NewEventStore creates an EventStore for the given user.
func NewEventStore(db *DB, userID string) *EventStore {
	return &EventStore{db: db, userID: userID}
}

const eventColumns = `
	id, title, description, start_at, end_at, all_day,
	recurrence, recurrence_end, series_id, type, status, priority,
	amount, workout_log
`

// List returns every base event for the store's user.
func (s *EventStore) List(ctx context.Context) ([]event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = ? ORDER BY start_at`
	rows, err := s.db.QueryContext(ctx, query, s.userID)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// Create inserts a new event and returns it as stored.
func (s *EventStore) Create(ctx context.Context, e event.Event) (event.Event, error) {
	workoutLog, err := marshalWorkoutLog(e.WorkoutLog)
	if err != nil {
		return event.Event{}, err
	}
	query := `
		INSERT INTO events (
			id, user_id, title, description, start_at, end_at, all_day,
			recurrence, recurrence_end, series_id, type, status, priority,
			amount, workout_log
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		e.ID,
		s.userID,
		e.Title,
		e.Description,
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
		e.AllDay,
		normalizeRecurrence(e.Recurrence),
		formatOptionalTime(e.RecurrenceEnd),
		e.SeriesID,
		e.Type,
		e.Status,
		e.Priority,
		e.Amount,
		workoutLog,
	)
	if err != nil {
		return event.Event{}, fmt.Errorf("creating event: %w", err)
	}
	return e, nil
}

// Update overwrites an existing event.
func (s *EventStore) Update(ctx context.Context, e event.Event) error {
	workoutLog, err := marshalWorkoutLog(e.WorkoutLog)
	if err != nil {
		return err
	}
	query := `
		UPDATE events SET
			title = ?, description = ?, start_at = ?, end_at = ?, all_day = ?,
			recurrence = ?, recurrence_end = ?, series_id = ?, type = ?,
			status = ?, priority = ?, amount = ?, workout_log = ?,
			modified_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		e.Title,
		e.Description,
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
		e.AllDay,
		normalizeRecurrence(e.Recurrence),
		formatOptionalTime(e.RecurrenceEnd),
		e.SeriesID,
		e.Type,
		e.Status,
		e.Priority,
		e.Amount,
		workoutLog,
		e.ID,
		s.userID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", remote.ErrNotFound, e.ID)
	}
	return nil
}

// Delete removes one event by id.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ? AND user_id = ?`, id, s.userID)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", remote.ErrNotFound, id)
	}
	return nil
}

// DeleteAll clears the user's events.
func (s *EventStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE user_id = ?`, s.userID); err != nil {
		return fmt.Errorf("deleting all events: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (event.Event, error) {
	var (
		e             event.Event
		startAt       string
		endAt         string
		recurrence    string
		recurrenceEnd sql.NullString
		seriesID      sql.NullString
		workoutLog    sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &startAt, &endAt, &e.AllDay,
		&recurrence, &recurrenceEnd, &seriesID, &e.Type, &e.Status, &e.Priority,
		&e.Amount, &workoutLog,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return event.Event{}, remote.ErrNotFound
		}
		return event.Event{}, fmt.Errorf("scanning event: %w", err)
	}

	e.Recurrence = event.Recurrence(recurrence)
	if e.Start, err = time.Parse(time.RFC3339, startAt); err != nil {
		return event.Event{}, fmt.Errorf("parsing start of %s: %w", e.ID, err)
	}
	if e.End, err = time.Parse(time.RFC3339, endAt); err != nil {
		return event.Event{}, fmt.Errorf("parsing end of %s: %w", e.ID, err)
	}
	if recurrenceEnd.Valid {
		t, err := time.Parse(time.RFC3339, recurrenceEnd.String)
		if err != nil {
			return event.Event{}, fmt.Errorf("parsing recurrence end of %s: %w", e.ID, err)
		}
		e.RecurrenceEnd = &t
	}
	if seriesID.Valid {
		sid := seriesID.String
		e.SeriesID = &sid
	}
	if workoutLog.Valid && workoutLog.String != "" {
		if err := json.Unmarshal([]byte(workoutLog.String), &e.WorkoutLog); err != nil {
			return event.Event{}, fmt.Errorf("decoding workout log of %s: %w", e.ID, err)
		}
	}
	return e, nil
}

func marshalWorkoutLog(entries []event.ExerciseEntry) (sql.NullString, error) {
	if len(entries) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding workout log: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func normalizeRecurrence(r event.Recurrence) event.Recurrence {
	if r == "" {
		return event.RecurNone
	}
	return r
}
