package domain

import "time"

// BreakInterval is one absence window inside a work day, materialized only
// for Departure→Arrival transitions in the clean event sequence.
type BreakInterval struct {
	Start time.Time
	End   time.Time
}

// DaySummary is the analytic projection for one calendar day, keyed by Day
// (YYYY-MM-DD). Totals are whole minutes, rounded once after accumulation.
// The JSON field names are the stored wire format of the original reports
// and must not change without migrating stored rows.
type DaySummary struct {
	Day          string    `json:"datum"`
	WorkMinutes  int       `json:"arbeitszeit_min"`
	BreakMinutes int       `json:"pausen_min"`
	StartedAt    time.Time `json:"start"`
	EndedAt      time.Time `json:"ende"`
	EventCount   int       `json:"eintraege"`
	ComputedAt   time.Time `json:"erstellt_am"`
}

// TimesheetBreak is one break rendered as local clock times ("HH:MM").
type TimesheetBreak struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayTimesheet is the human-facing projection for one calendar day: start and
// end of work plus breaks, all formatted as clock times in the display
// timezone. It is derived from the same fold state as DaySummary and is
// always replaced whole on recompute, never patched.
type DayTimesheet struct {
	WorkStart string           `json:"work_start"`
	WorkEnd   string           `json:"work_end"`
	Breaks    []TimesheetBreak `json:"breaks"`
}
