package timeline

import (
	"math"
	"time"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// Aggregation is the folded state of one day's clean event sequence.
// Both output projections are rendered from this one value so their
// underlying totals can never diverge.
type Aggregation struct {
	Start        time.Time
	End          time.Time
	WorkMinutes  int
	BreakMinutes int
	Breaks       []domain.BreakInterval
	EventCount   int
}

// Fold converts a clean chronological sequence for one day into totals and
// break intervals. The second return value is false for an empty input —
// the "no data" outcome, which is not an error.
//
// Consecutive pairs drive the fold: Arrival→Departure adds to work,
// Departure→Arrival adds to break and records the interval, and a same-kind
// pair is ignored entirely, making duplicate state reports idempotent no-ops.
// A single-element sequence yields zero totals with Start = End = its
// timestamp.
//
// Minutes accumulate fractionally and are rounded to whole minutes exactly
// once at the end, so many short intervals cannot drift the totals.
func Fold(clean []domain.Event) (Aggregation, bool) {
	if len(clean) == 0 {
		return Aggregation{}, false
	}

	var workMin, breakMin float64
	var breaks []domain.BreakInterval

	for i := 1; i < len(clean); i++ {
		prev, curr := clean[i-1], clean[i]
		elapsed := curr.Timestamp.Sub(prev.Timestamp).Minutes()

		switch {
		case prev.Kind == domain.KindArrival && curr.Kind == domain.KindDeparture:
			workMin += elapsed
		case prev.Kind == domain.KindDeparture && curr.Kind == domain.KindArrival:
			breakMin += elapsed
			breaks = append(breaks, domain.BreakInterval{
				Start: prev.Timestamp,
				End:   curr.Timestamp,
			})
		}
	}

	return Aggregation{
		Start:        clean[0].Timestamp,
		End:          clean[len(clean)-1].Timestamp,
		WorkMinutes:  int(math.Round(workMin)),
		BreakMinutes: int(math.Round(breakMin)),
		Breaks:       breaks,
		EventCount:   len(clean),
	}, true
}
