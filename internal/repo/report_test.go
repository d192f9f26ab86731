package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhemmerl/stempeluhr/internal/domain"
	"github.com/jhemmerl/stempeluhr/internal/repo"
)

func newReportRepo(t *testing.T) repo.ReportRepo {
	t.Helper()
	return repo.NewReportRepo(newTestTx(t))
}

// summaryFixture returns a DaySummary with sensible defaults.
// Callers override individual fields after calling this function.
func summaryFixture(day string) domain.DaySummary {
	start := time.Date(2026, 2, 5, 8, 0, 0, 0, time.UTC)
	return domain.DaySummary{
		Day:          day,
		WorkMinutes:  450,
		BreakMinutes: 30,
		StartedAt:    start,
		EndedAt:      start.Add(8 * time.Hour),
		EventCount:   4,
	}
}

func TestReportRepo_UpsertSummary_InsertThenOverwrite(t *testing.T) {
	r := newReportRepo(t)
	ctx := context.Background()

	first, err := r.UpsertSummary(ctx, summaryFixture("2026-02-05"))
	require.NoError(t, err)
	assert.Equal(t, 450, first.WorkMinutes)
	assert.False(t, first.ComputedAt.IsZero(), "computed_at should be stamped by DB")

	// Recompute with different totals must overwrite the whole row.
	updated := summaryFixture("2026-02-05")
	updated.WorkMinutes = 480
	updated.BreakMinutes = 0
	updated.EventCount = 2

	second, err := r.UpsertSummary(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, 480, second.WorkMinutes)
	assert.Equal(t, 0, second.BreakMinutes)
	assert.Equal(t, 2, second.EventCount)

	got, err := r.RangeSummaries(ctx, "2026-02-05", "2026-02-05")
	require.NoError(t, err)
	require.Len(t, got, 1, "upsert must not create a second row")
	assert.Equal(t, 480, got[0].WorkMinutes)
}

// TestReportRepo_RangeSummaries_MonthBounds covers the month query: records
// on the 5th and 28th both fall inside 2026-02-01..2026-02-31 (the phantom
// day 31 matches nothing), returned ascending; March sees none of them.
func TestReportRepo_RangeSummaries_MonthBounds(t *testing.T) {
	r := newReportRepo(t)
	ctx := context.Background()

	for _, day := range []string{"2026-02-28", "2026-02-05", "2026-01-31"} {
		_, err := r.UpsertSummary(ctx, summaryFixture(day))
		require.NoError(t, err)
	}

	february, err := r.RangeSummaries(ctx, "2026-02-01", "2026-02-31")
	require.NoError(t, err)
	require.Len(t, february, 2)
	assert.Equal(t, "2026-02-05", february[0].Day)
	assert.Equal(t, "2026-02-28", february[1].Day)

	march, err := r.RangeSummaries(ctx, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Empty(t, march)
}

func TestReportRepo_Timesheet_RoundTrip(t *testing.T) {
	r := newReportRepo(t)
	ctx := context.Background()

	sheet := domain.DayTimesheet{
		WorkStart: "09:00",
		WorkEnd:   "17:00",
		Breaks: []domain.TimesheetBreak{
			{Start: "13:00", End: "13:30"},
		},
	}

	require.NoError(t, r.UpsertTimesheet(ctx, "2026-02-05", sheet))

	got, err := r.GetTimesheet(ctx, "2026-02-05")
	require.NoError(t, err)
	assert.Equal(t, sheet, got)
}

func TestReportRepo_Timesheet_OverwriteClearsBreaks(t *testing.T) {
	r := newReportRepo(t)
	ctx := context.Background()

	withBreak := domain.DayTimesheet{
		WorkStart: "09:00",
		WorkEnd:   "17:00",
		Breaks:    []domain.TimesheetBreak{{Start: "13:00", End: "13:30"}},
	}
	require.NoError(t, r.UpsertTimesheet(ctx, "2026-02-05", withBreak))

	// A recompute that no longer sees the break must fully replace the row.
	withoutBreak := domain.DayTimesheet{
		WorkStart: "08:00",
		WorkEnd:   "16:00",
		Breaks:    []domain.TimesheetBreak{},
	}
	require.NoError(t, r.UpsertTimesheet(ctx, "2026-02-05", withoutBreak))

	got, err := r.GetTimesheet(ctx, "2026-02-05")
	require.NoError(t, err)
	assert.Equal(t, withoutBreak, got)
	assert.NotNil(t, got.Breaks)
}

func TestReportRepo_GetTimesheet_NotFound(t *testing.T) {
	r := newReportRepo(t)

	_, err := r.GetTimesheet(context.Background(), "1999-01-01")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
