// Package timeline implements the event reconciliation engine: day bucketing,
// denoising of spurious sensor reversals, and folding a clean chronological
// event sequence into per-day work/break totals and their two projections.
//
// Everything in this package is a pure function of its inputs. No I/O, no
// clocks, no shared state — the service layer owns fetching and persisting.
package timeline

import (
	"sort"
	"time"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// dayFormat is the canonical day-key layout. Keys sort lexicographically in
// chronological order, which is what the report range queries rely on.
const dayFormat = "2006-01-02"

// DayKey returns the calendar-date bucket key (YYYY-MM-DD) for ts in loc.
// This is the single bucketing function used everywhere; the bucketing
// location is configuration, not a per-call choice.
//
// Note: when loc differs from the display timezone, an event near local
// midnight can land in a different bucket than the day its formatted clock
// time suggests. That is inherent to bucketing in one zone and displaying in
// another.
func DayKey(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format(dayFormat)
}

// DayBounds returns the half-open instant range [start, end) covered by the
// given day key in loc. Used to fetch exactly one bucket's events from the
// store.
func DayBounds(day string, loc *time.Location) (start, end time.Time, err error) {
	t, err := time.ParseInLocation(dayFormat, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Validationf("invalid day %q", day)
	}
	return t, t.AddDate(0, 0, 1), nil
}

// GroupByDay buckets an unordered event history by DayKey.
// The returned slices preserve the input order; callers sort per bucket.
func GroupByDay(events []domain.Event, loc *time.Location) map[string][]domain.Event {
	buckets := make(map[string][]domain.Event)
	for _, e := range events {
		key := DayKey(e.Timestamp, loc)
		buckets[key] = append(buckets[key], e)
	}
	return buckets
}

// SortChronological sorts events by timestamp ascending, in place.
// Ties keep their relative input order so repeated runs over the same
// history produce identical sequences.
func SortChronological(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}
