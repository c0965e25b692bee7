package event

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// maxInstancesPerCall bounds the number of occurrences a single
	// expansion may return.
	maxInstancesPerCall = 100

	// maxExpansionSteps is a hard ceiling on loop iterations. It exists as
	// a termination guarantee against date-arithmetic bugs and is never hit
	// in normal operation.
	maxExpansionSteps = 5000
)

const instanceIDSep = "_recur_"

// InstanceID derives the deterministic identifier of the occurrence of a
// base event starting at the given time.
func InstanceID(baseID string, start time.Time) string {
	return fmt.Sprintf("%s%s%d", baseID, instanceIDSep, start.UnixMilli())
}

// ParseInstanceID splits an instance identifier into its base event ID and
// occurrence start. The second return is false for non-instance IDs.
func ParseInstanceID(id string) (baseID string, start time.Time, ok bool) {
	idx := strings.LastIndex(id, instanceIDSep)
	if idx <= 0 {
		return "", time.Time{}, false
	}
	ms, err := strconv.ParseInt(id[idx+len(instanceIDSep):], 10, 64)
	if err != nil {
		return "", time.Time{}, false
	}
	return id[:idx], time.UnixMilli(ms), true
}

// Expand produces the virtual occurrences of a recurring base event that
// fall inside [windowStart, windowEnd]. It is pure and deterministic:
// identical inputs yield identical instance IDs and timestamps.
//
// The occurrence on the base event's own start date is not emitted; the
// base event itself stands in for that slot (see BuildVisibleEvents).
// Malformed input degrades to an empty result so one broken series cannot
// blank the whole calendar.
func Expand(base Event, windowStart, windowEnd time.Time) []Event {
	if !base.Recurring() {
		return nil
	}
	if windowEnd.Before(windowStart) {
		return nil
	}
	// Cheap rejections before any stepping.
	if base.Start.After(windowEnd) {
		return nil
	}
	if base.RecurrenceEnd != nil && base.RecurrenceEnd.Before(windowStart) {
		return nil
	}
	if !validCadence(base.Recurrence) {
		return nil
	}

	duration := base.End.Sub(base.Start)
	out := make([]Event, 0, 8)

	// Occurrence n is computed from the base start each time, never by
	// accumulating additions, so month-length normalization stays
	// reproducible regardless of where iteration begins.
	n := fastForward(base, windowStart)

	for steps := 0; steps < maxExpansionSteps; steps++ {
		occStart := occurrence(base.Start, base.Recurrence, n)
		n++

		if base.RecurrenceEnd != nil && occStart.After(*base.RecurrenceEnd) {
			break
		}
		if occStart.After(windowEnd) {
			break
		}
		if occStart.Before(windowStart) || occStart.Before(base.Start) {
			continue
		}

		inst := base.Clone()
		inst.ID = InstanceID(base.ID, occStart)
		inst.Start = occStart
		inst.End = occStart.Add(duration)
		inst.IsInstance = true
		out = append(out, inst)

		if len(out) >= maxInstancesPerCall {
			break
		}
	}
	return out
}

// occurrence returns the nth repeat of start under the given cadence.
// Month and year arithmetic may shift the day-of-month at month-length
// boundaries; that shift is accepted behavior, not corrected.
func occurrence(start time.Time, r Recurrence, n int) time.Time {
	switch r {
	case RecurDaily:
		return start.AddDate(0, 0, n)
	case RecurWeekly:
		return start.AddDate(0, 0, 7*n)
	case RecurBiweekly:
		return start.AddDate(0, 0, 14*n)
	case RecurMonthly:
		return start.AddDate(0, n, 0)
	case RecurYearly:
		return start.AddDate(n, 0, 0)
	}
	return start
}

// fastForward picks the first occurrence index worth examining. For
// day-based cadences it skips the whole units between the base start and
// the window start so old series do not iterate from their creation date.
// It only saves work; output is identical to naive stepping from 1.
func fastForward(base Event, windowStart time.Time) int {
	if !windowStart.After(base.Start) {
		return 1
	}
	var unitDays int
	switch base.Recurrence {
	case RecurDaily:
		unitDays = 1
	case RecurWeekly:
		unitDays = 7
	case RecurBiweekly:
		unitDays = 14
	default:
		return 1
	}
	units := int(windowStart.Sub(base.Start).Hours() / float64(24*unitDays))
	if units < 1 {
		return 1
	}
	return units
}

func validCadence(r Recurrence) bool {
	switch r {
	case RecurDaily, RecurWeekly, RecurBiweekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}
