package series_test

import (
	"testing"
	"time"

	"github.com/halcyra/cadence/internal/domain/event"
	"github.com/halcyra/cadence/internal/domain/series"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 9, 0, 0, 0, time.Local)
}

func member(id, sid string, d int) event.Event {
	s := sid
	return event.Event{
		ID:         id,
		Title:      "Standup",
		Start:      day(d),
		End:        day(d).Add(30 * time.Minute),
		Recurrence: event.RecurWeekly,
		SeriesID:   &s,
		Type:       event.TypeTask,
		Status:     event.StatusPending,
	}
}

func opIDs(ops []series.RemoteOp) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.ID
	}
	return out
}

func TestResolveSave_NoSeriesSkipsScope(t *testing.T) {
	target := event.Event{ID: "solo", Title: "Dentist", Recurrence: event.RecurNone}

	plan, err := series.ResolveSave(nil, target, "", true)
	require.NoError(t, err)

	require.Empty(t, plan.SiblingOps)
	require.Len(t, plan.TargetOps, 1)
	require.Equal(t, series.OpCreate, plan.TargetOps[0].Kind)
	require.Len(t, plan.Events, 1)
}

func TestResolveSave_NewRecurringGetsSeriesID(t *testing.T) {
	target := event.Event{ID: "r1", Title: "Yoga", Recurrence: event.RecurWeekly}

	plan, err := series.ResolveSave(nil, target, "", true)
	require.NoError(t, err)

	require.Len(t, plan.TargetOps, 1)
	require.NotNil(t, plan.TargetOps[0].Event.SeriesID, "series identity assigned at creation")
	require.Equal(t, series.OpCreate, plan.TargetOps[0].Kind)
}

func TestResolveSave_ScopeThisDetaches(t *testing.T) {
	base := member("base", "s1", 1)
	edited := base.Clone()
	edited.Title = "Standup (moved)"

	plan, err := series.ResolveSave([]event.Event{base}, edited, series.ScopeThis, false)
	require.NoError(t, err)

	require.Empty(t, plan.SiblingOps, "no other base event is touched")
	require.Len(t, plan.TargetOps, 1)
	saved := plan.TargetOps[0].Event
	require.Equal(t, series.OpUpdate, plan.TargetOps[0].Kind)
	require.Nil(t, saved.SeriesID)
	require.Equal(t, event.RecurNone, saved.Recurrence)
}

func TestResolveSave_ScopeThisPromotesInstance(t *testing.T) {
	base := member("base", "s1", 1)
	inst := event.Expand(base, day(8), day(8))[0]
	inst.Title = "One-off edit"

	plan, err := series.ResolveSave([]event.Event{base}, inst, series.ScopeThis, true)
	require.NoError(t, err)

	require.Len(t, plan.TargetOps, 1)
	require.Equal(t, series.OpCreate, plan.TargetOps[0].Kind)
	created := plan.TargetOps[0].Event
	require.Nil(t, created.SeriesID)
	require.Equal(t, event.RecurNone, created.Recurrence)
	require.NotEqual(t, inst.ID, created.ID, "promoted instance gets a real identity")
	require.False(t, created.IsInstance)

	require.Len(t, plan.Events, 2, "base stays, standalone appended")
}

func TestResolveSave_ScopeFollowing(t *testing.T) {
	earlier := member("e1", "s1", 1)
	target := member("e2", "s1", 8)
	later := member("e3", "s1", 15)
	latest := member("e4", "s1", 22)
	events := []event.Event{earlier, target, later, latest}

	edited := target.Clone()
	edited.Title = "New standup time"

	plan, err := series.ResolveSave(events, edited, series.ScopeFollowing, false)
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"e3", "e4"}, opIDs(plan.SiblingOps),
		"later siblings deleted, earlier members untouched")
	require.Len(t, plan.TargetOps, 1)
	require.Equal(t, series.OpUpdate, plan.TargetOps[0].Kind)

	saved := plan.TargetOps[0].Event
	require.NotNil(t, saved.SeriesID)
	require.NotEqual(t, "s1", *saved.SeriesID, "target heads a new series")

	require.Len(t, plan.Events, 2)
	for _, e := range plan.Events {
		if e.ID == "e1" {
			require.Equal(t, "s1", *e.SeriesID, "earlier member keeps old series")
		}
	}
}

func TestResolveSave_ScopeAll(t *testing.T) {
	a := member("a", "s1", 1)
	b := member("b", "s1", 8)
	c := member("c", "s1", 15)
	events := []event.Event{a, b, c}

	edited := b.Clone()
	edited.Recurrence = event.RecurDaily

	plan, err := series.ResolveSave(events, edited, series.ScopeAll, false)
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"a", "c"}, opIDs(plan.SiblingOps))
	require.Len(t, plan.TargetOps, 1)
	saved := plan.TargetOps[0].Event
	require.Equal(t, "s1", *saved.SeriesID, "sole representative keeps the series id")
	require.Equal(t, event.RecurDaily, saved.Recurrence)
	require.Len(t, plan.Events, 1)
}

func TestResolveSave_MissingScope(t *testing.T) {
	base := member("base", "s1", 1)

	_, err := series.ResolveSave([]event.Event{base}, base, "", false)
	require.ErrorIs(t, err, series.ErrScopeRequired)

	_, err = series.ResolveSave([]event.Event{base}, base, "everything", false)
	require.ErrorIs(t, err, series.ErrUnknownScope)
}

func TestResolveDelete_ScopeAllDeletesSiblingsThenTarget(t *testing.T) {
	events := []event.Event{
		member("a", "s1", 1), member("b", "s1", 8), member("c", "s1", 15),
		member("d", "s1", 22), member("e", "s1", 29),
	}
	target := events[2] // "c"

	plan, err := series.ResolveDelete(events, target, series.ScopeAll)
	require.NoError(t, err)

	require.Len(t, plan.SiblingOps, 4, "exactly one delete per sibling")
	require.ElementsMatch(t, []string{"a", "b", "d", "e"}, opIDs(plan.SiblingOps))
	require.Len(t, plan.TargetOps, 1, "target deleted last")
	require.Equal(t, "c", plan.TargetOps[0].ID)
	require.Empty(t, plan.Events)
}

func TestResolveDelete_ScopeFollowing(t *testing.T) {
	events := []event.Event{
		member("a", "s1", 1), member("b", "s1", 8), member("c", "s1", 15),
	}

	plan, err := series.ResolveDelete(events, events[1], series.ScopeFollowing)
	require.NoError(t, err)

	require.Equal(t, []string{"c"}, opIDs(plan.SiblingOps))
	require.Len(t, plan.TargetOps, 1)
	require.Equal(t, "b", plan.TargetOps[0].ID)
	require.Len(t, plan.Events, 1)
	require.Equal(t, "a", plan.Events[0].ID)
}

func TestResolveDelete_ScopeThis(t *testing.T) {
	events := []event.Event{member("a", "s1", 1), member("b", "s1", 8)}

	plan, err := series.ResolveDelete(events, events[0], series.ScopeThis)
	require.NoError(t, err)

	require.Empty(t, plan.SiblingOps)
	require.Len(t, plan.TargetOps, 1)
	require.Equal(t, "a", plan.TargetOps[0].ID)
	require.Len(t, plan.Events, 1)
}

func TestResolveDelete_VirtualInstanceIssuesNoRemoteCall(t *testing.T) {
	base := member("base", "s1", 1)
	inst := event.Expand(base, day(8), day(8))[0]

	plan, err := series.ResolveDelete([]event.Event{base}, inst, series.ScopeThis)
	require.NoError(t, err)

	require.Empty(t, plan.SiblingOps)
	require.Empty(t, plan.TargetOps, "nothing persisted to delete")
	require.Len(t, plan.Events, 1)
}

func TestResolveDelete_NonSeriesEvent(t *testing.T) {
	solo := event.Event{ID: "solo", Title: "Dentist"}

	plan, err := series.ResolveDelete([]event.Event{solo}, solo, "")
	require.NoError(t, err)

	require.Len(t, plan.TargetOps, 1)
	require.Equal(t, "solo", plan.TargetOps[0].ID)
	require.Empty(t, plan.Events)
}
