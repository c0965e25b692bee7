package event_test

import (
	"testing"
	"time"

	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func daily(id string, start time.Time) event.Event {
	return event.Event{
		ID:         id,
		Title:      "Morning run",
		Start:      start,
		End:        start.Add(time.Hour),
		Recurrence: event.RecurDaily,
		Type:       event.TypeWorkout,
		Status:     event.StatusPending,
		Priority:   event.PriorityMedium,
	}
}

func TestExpand_DailyMarchWindow(t *testing.T) {
	base := daily("ev1", date(2024, time.January, 1))

	got := event.Expand(base, date(2024, time.March, 1), date(2024, time.March, 31))

	require.Len(t, got, 31)
	require.True(t, got[0].Start.Equal(date(2024, time.March, 1)))
	require.True(t, got[30].Start.Equal(date(2024, time.March, 31)))
	for _, inst := range got {
		require.True(t, inst.IsInstance)
		require.False(t, inst.Start.Before(date(2024, time.March, 1)))
		require.False(t, inst.Start.After(date(2024, time.March, 31)))
		require.Equal(t, time.Hour, inst.End.Sub(inst.Start), "duration preserved")
	}
}

func TestExpand_Deterministic(t *testing.T) {
	base := daily("ev1", date(2024, time.January, 1))
	w1, w2 := date(2024, time.March, 1), date(2024, time.March, 31)

	first := event.Expand(base, w1, w2)
	second := event.Expand(base, w1, w2)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID)
		require.True(t, first[i].Start.Equal(second[i].Start))
		require.True(t, first[i].End.Equal(second[i].End))
	}
}

func TestExpand_InstanceIDFormat(t *testing.T) {
	base := daily("ev1", date(2024, time.January, 1))

	got := event.Expand(base, date(2024, time.January, 2), date(2024, time.January, 2))

	require.Len(t, got, 1)
	require.Equal(t, event.InstanceID("ev1", got[0].Start), got[0].ID)

	baseID, start, ok := event.ParseInstanceID(got[0].ID)
	require.True(t, ok)
	require.Equal(t, "ev1", baseID)
	require.True(t, start.Equal(got[0].Start))
}

func TestExpand_CapAt100Instances(t *testing.T) {
	base := daily("ev1", date(2024, time.January, 1))

	// A year-long window offers far more than the cap allows.
	got := event.Expand(base, date(2024, time.January, 1), date(2024, time.December, 31))

	require.Len(t, got, 100)
}

func TestExpand_SkipsBaseOccurrence(t *testing.T) {
	base := daily("ev1", date(2024, time.March, 10))

	got := event.Expand(base, date(2024, time.March, 1), date(2024, time.March, 31))

	// The base date itself is represented by the base event, not an instance.
	require.Len(t, got, 21)
	require.True(t, got[0].Start.Equal(date(2024, time.March, 11)))
}

func TestExpand_RecurrenceEnd(t *testing.T) {
	base := daily("ev1", date(2024, time.January, 1))
	end := date(2024, time.March, 5)
	base.RecurrenceEnd = &end

	got := event.Expand(base, date(2024, time.March, 1), date(2024, time.March, 31))

	require.Len(t, got, 5)
	require.True(t, got[len(got)-1].Start.Equal(date(2024, time.March, 5)))
}

func TestExpand_CheapRejections(t *testing.T) {
	base := daily("ev1", date(2024, time.June, 1))
	require.Empty(t, event.Expand(base, date(2024, time.March, 1), date(2024, time.March, 31)),
		"base starts after window")

	base = daily("ev1", date(2024, time.January, 1))
	end := date(2024, time.February, 1)
	base.RecurrenceEnd = &end
	require.Empty(t, event.Expand(base, date(2024, time.March, 1), date(2024, time.March, 31)),
		"series ended before window")

	base = daily("ev1", date(2024, time.January, 1))
	require.Empty(t, event.Expand(base, date(2024, time.March, 31), date(2024, time.March, 1)),
		"inverted window")
}

func TestExpand_MalformedInputDegradesToEmpty(t *testing.T) {
	base := daily("ev1", date(2024, time.January, 1))
	base.Recurrence = "fortnightly-ish"
	require.Empty(t, event.Expand(base, date(2024, time.January, 1), date(2024, time.December, 31)))

	base.Recurrence = event.RecurNone
	require.Empty(t, event.Expand(base, date(2024, time.January, 1), date(2024, time.December, 31)))
}

func TestExpand_MonthlyDayShiftAccepted(t *testing.T) {
	base := daily("ev1", date(2024, time.January, 31))
	base.Recurrence = event.RecurMonthly

	got := event.Expand(base, date(2024, time.February, 1), date(2024, time.March, 31))

	// January 31 + 1 month normalizes to March 2 in 2024; the shift is
	// accepted rather than corrected.
	require.Len(t, got, 2)
	require.True(t, got[0].Start.Equal(date(2024, time.March, 2)))
	require.True(t, got[1].Start.Equal(date(2024, time.March, 31)))
}

func TestExpand_WeeklyAndBiweekly(t *testing.T) {
	base := daily("ev1", date(2024, time.January, 1))
	base.Recurrence = event.RecurWeekly
	got := event.Expand(base, date(2024, time.January, 1), date(2024, time.January, 31))
	require.Len(t, got, 4)
	require.True(t, got[0].Start.Equal(date(2024, time.January, 8)))

	base.Recurrence = event.RecurBiweekly
	got = event.Expand(base, date(2024, time.January, 1), date(2024, time.January, 31))
	require.Len(t, got, 2)
	require.True(t, got[0].Start.Equal(date(2024, time.January, 15)))
	require.True(t, got[1].Start.Equal(date(2024, time.January, 29)))
}

func TestExpand_YearlyFarFuture(t *testing.T) {
	base := daily("ev1", date(2000, time.May, 10))
	base.Recurrence = event.RecurYearly

	got := event.Expand(base, date(2024, time.January, 1), date(2024, time.December, 31))

	require.Len(t, got, 1)
	require.True(t, got[0].Start.Equal(date(2024, time.May, 10)))
}

func TestExpand_FastForwardMatchesNaiveWindow(t *testing.T) {
	// An old daily series viewed years later must produce the same result
	// the naive stepper would, just with less work.
	base := daily("ev1", date(2019, time.February, 3))

	got := event.Expand(base, date(2026, time.July, 1), date(2026, time.July, 7))

	require.Len(t, got, 7)
	for i, inst := range got {
		require.True(t, inst.Start.Equal(date(2026, time.July, 1+i)))
	}
}
