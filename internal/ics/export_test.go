package ics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/halcyra/cadence/internal/ics"
)

func TestExport(t *testing.T) {
	start := time.Date(2024, time.March, 4, 18, 0, 0, 0, time.UTC)
	events := []event.Event{
		{
			ID:          "ev1",
			Title:       "Leg day",
			Description: "squats",
			Start:       start,
			End:         start.Add(time.Hour),
		},
		{
			ID:     "ev1_recur_1710180000000",
			Title:  "Leg day",
			Start:  start.AddDate(0, 0, 7),
			End:    start.AddDate(0, 0, 7).Add(time.Hour),
			IsInstance: true,
		},
	}

	out := ics.Export(events)

	require.Contains(t, out, "BEGIN:VCALENDAR")
	require.Contains(t, out, "END:VCALENDAR")
	require.Contains(t, out, "UID:ev1")
	require.Contains(t, out, "UID:ev1_recur_1710180000000")
	require.Contains(t, out, "SUMMARY:Leg day")
	require.Contains(t, out, "DESCRIPTION:squats")
	require.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}

func TestExportAllDay(t *testing.T) {
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	out := ics.Export([]event.Event{{
		ID: "ev2", Title: "Conference", AllDay: true,
		Start: day, End: day.AddDate(0, 0, 1),
	}})

	require.Contains(t, out, "DTSTART;VALUE=DATE:20240304")
}

func TestExportEmpty(t *testing.T) {
	out := ics.Export(nil)
	require.Contains(t, out, "BEGIN:VCALENDAR")
	require.NotContains(t, out, "BEGIN:VEVENT")
}
