package event_test

import (
	"testing"
	"time"

	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/stretchr/testify/require"
)

func marchWindow() event.Window {
	return event.Window{Start: date(2024, time.March, 1), End: date(2024, time.March, 31)}
}

func TestBuildVisibleEvents_MergesDirectAndExpanded(t *testing.T) {
	standalone := event.Event{
		ID: "solo", Title: "Dentist", Type: event.TypeTask,
		Start: date(2024, time.March, 15), End: date(2024, time.March, 15).Add(time.Hour),
		Recurrence: event.RecurNone,
	}
	recurring := daily("ser", date(2024, time.March, 10))

	got := event.BuildVisibleEvents([]event.Event{standalone, recurring}, marchWindow(), event.Filters{})

	// standalone + base event + 21 instances (Mar 11..31)
	require.Len(t, got, 23)

	ids := map[string]bool{}
	for _, e := range got {
		require.False(t, ids[e.ID], "duplicate id %s", e.ID)
		ids[e.ID] = true
	}
	require.True(t, ids["solo"])
	require.True(t, ids["ser"], "series base renders like any other instance")
}

func TestBuildVisibleEvents_BaseOutsideWindow(t *testing.T) {
	recurring := daily("ser", date(2024, time.January, 1))

	got := event.BuildVisibleEvents([]event.Event{recurring}, marchWindow(), event.Filters{})

	require.Len(t, got, 31)
	for _, e := range got {
		require.True(t, e.IsInstance)
	}
}

func TestBuildVisibleEvents_TypeAndStatusFilters(t *testing.T) {
	task := event.Event{ID: "a", Title: "Report", Type: event.TypeTask, Status: event.StatusPending}
	expense := event.Event{ID: "b", Title: "Rent", Type: event.TypeExpense, Status: event.StatusCompleted, Amount: 1200}

	all := event.BuildVisibleEvents([]event.Event{task, expense}, marchWindow(), event.Filters{Type: event.FilterAll, Status: event.FilterAll})
	require.Len(t, all, 2)

	onlyExpense := event.BuildVisibleEvents([]event.Event{task, expense}, marchWindow(), event.Filters{Type: "expense"})
	require.Len(t, onlyExpense, 1)
	require.Equal(t, "b", onlyExpense[0].ID)

	onlyPending := event.BuildVisibleEvents([]event.Event{task, expense}, marchWindow(), event.Filters{Status: "pending"})
	require.Len(t, onlyPending, 1)
	require.Equal(t, "a", onlyPending[0].ID)
}

func TestBuildVisibleEvents_SearchIsCaseInsensitive(t *testing.T) {
	a := event.Event{ID: "a", Title: "Quarterly Review", Description: ""}
	b := event.Event{ID: "b", Title: "Groceries", Description: "weekly REVIEW of pantry"}
	c := event.Event{ID: "c", Title: "Gym"}

	got := event.BuildVisibleEvents([]event.Event{a, b, c}, marchWindow(), event.Filters{Search: "review"})

	require.Len(t, got, 2)

	// Empty search matches everything.
	got = event.BuildVisibleEvents([]event.Event{a, b, c}, marchWindow(), event.Filters{Search: ""})
	require.Len(t, got, 3)
}

func TestBuildVisibleEvents_FilterAppliesToInstances(t *testing.T) {
	recurring := daily("ser", date(2024, time.March, 10))
	recurring.Title = "Leg day"

	got := event.BuildVisibleEvents([]event.Event{recurring}, marchWindow(), event.Filters{Search: "leg"})
	require.Len(t, got, 22)

	got = event.BuildVisibleEvents([]event.Event{recurring}, marchWindow(), event.Filters{Search: "arm"})
	require.Empty(t, got)
}
