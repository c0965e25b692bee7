package event

import (
	"strings"
	"time"
)

// FilterAll matches any value for the type and status filters.
const FilterAll = "all"

// Window is the date range currently rendered.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Filters narrows the visible event set.
type Filters struct {
	Type   string // exact match, or "all"/empty
	Status string // exact match, or "all"/empty
	Search string // case-insensitive substring of title or description
}

// BuildVisibleEvents composes the event set for a window: non-recurring
// events and pre-expanded instances pass through directly, recurring base
// events contribute their windowed occurrences plus the base event itself
// when its own date falls inside the window. The merged list is then
// filtered.
func BuildVisibleEvents(events []Event, w Window, f Filters) []Event {
	visible := make([]Event, 0, len(events))
	for _, e := range events {
		if e.IsInstance || !e.Recurring() {
			visible = append(visible, e)
			continue
		}
		if w.Contains(e.Start) {
			visible = append(visible, e)
		}
		visible = append(visible, Expand(e, w.Start, w.End)...)
	}

	if f.matchesEverything() {
		return visible
	}
	filtered := visible[:0]
	for _, e := range visible {
		if f.matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func (f Filters) matchesEverything() bool {
	return wildcard(f.Type) && wildcard(f.Status) && f.Search == ""
}

func (f Filters) matches(e Event) bool {
	if !wildcard(f.Type) && string(e.Type) != f.Type {
		return false
	}
	if !wildcard(f.Status) && string(e.Status) != f.Status {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}
	return true
}

func wildcard(v string) bool {
	return v == "" || v == FilterAll
}
