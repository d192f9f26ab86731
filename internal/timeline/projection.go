package timeline

import (
	"time"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// clockFormat renders an instant as a local wall-clock time, the only
// formatting the timesheet projection uses.
const clockFormat = "15:04"

// Summary renders the analytic projection for day from a fold result.
// ComputedAt is left zero; the report store stamps it at upsert time, since
// it is provenance metadata rather than derived data.
func Summary(day string, agg Aggregation) domain.DaySummary {
	return domain.DaySummary{
		Day:          day,
		WorkMinutes:  agg.WorkMinutes,
		BreakMinutes: agg.BreakMinutes,
		StartedAt:    agg.Start,
		EndedAt:      agg.End,
		EventCount:   agg.EventCount,
	}
}

// Timesheet renders the human-facing projection from the same fold result,
// formatting all instants as clock times in loc. Breaks is always non-nil so
// the JSON field serializes as [] rather than null on break-free days.
func Timesheet(agg Aggregation, loc *time.Location) domain.DayTimesheet {
	breaks := make([]domain.TimesheetBreak, 0, len(agg.Breaks))
	for _, b := range agg.Breaks {
		breaks = append(breaks, domain.TimesheetBreak{
			Start: b.Start.In(loc).Format(clockFormat),
			End:   b.End.In(loc).Format(clockFormat),
		})
	}
	return domain.DayTimesheet{
		WorkStart: agg.Start.In(loc).Format(clockFormat),
		WorkEnd:   agg.End.In(loc).Format(clockFormat),
		Breaks:    breaks,
	}
}
