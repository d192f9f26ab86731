package timeline

import (
	"time"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// DefaultDenoiseThreshold is the canonical cancellation window. Two
// opposite-kind events closer together than this are treated as sensor
// flicker (e.g. a badge reader seen briefly during a bus ride past the
// office) and cancel each other.
const DefaultDenoiseThreshold = 3 * time.Minute

// Denoise removes spurious opposite-kind event pairs from a chronologically
// sorted single-day sequence. A pair cancels when the kinds differ and the
// elapsed time between them is strictly less than threshold; the accumulator
// tail is popped and the incoming event discarded, so the pair contributes
// nothing downstream.
//
// The pass is single and left-to-right: a cancellation does not re-check the
// new accumulator tail against later events' neighbors, so a burst of three
// or more rapid reversals may be only partially cancelled. That is the
// intended semantics — do not replace this with fixed-point iteration.
//
// The input slice is not modified. Empty input yields an empty (nil) output.
func Denoise(events []domain.Event, threshold time.Duration) []domain.Event {
	var clean []domain.Event
	for _, e := range events {
		if len(clean) == 0 {
			clean = append(clean, e)
			continue
		}
		last := clean[len(clean)-1]
		if e.Kind != last.Kind && e.Timestamp.Sub(last.Timestamp) < threshold {
			clean = clean[:len(clean)-1]
			continue
		}
		clean = append(clean, e)
	}
	return clean
}
