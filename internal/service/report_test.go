package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhemmerl/stempeluhr/internal/domain"
	"github.com/jhemmerl/stempeluhr/internal/repo"
	"github.com/jhemmerl/stempeluhr/internal/service"
)

// mockReportRepo is a hand-written test double for repo.ReportRepo.
type mockReportRepo struct {
	upsertSummary   func(ctx context.Context, summary domain.DaySummary) (domain.DaySummary, error)
	upsertTimesheet func(ctx context.Context, day string, sheet domain.DayTimesheet) error
	getTimesheet    func(ctx context.Context, day string) (domain.DayTimesheet, error)
	rangeSummaries  func(ctx context.Context, fromDay, toDay string) ([]domain.DaySummary, error)
}

func (m *mockReportRepo) UpsertSummary(ctx context.Context, summary domain.DaySummary) (domain.DaySummary, error) {
	return m.upsertSummary(ctx, summary)
}
func (m *mockReportRepo) UpsertTimesheet(ctx context.Context, day string, sheet domain.DayTimesheet) error {
	return m.upsertTimesheet(ctx, day, sheet)
}
func (m *mockReportRepo) GetTimesheet(ctx context.Context, day string) (domain.DayTimesheet, error) {
	return m.getTimesheet(ctx, day)
}
func (m *mockReportRepo) RangeSummaries(ctx context.Context, fromDay, toDay string) ([]domain.DaySummary, error) {
	return m.rangeSummaries(ctx, fromDay, toDay)
}

// compile-time check: mockReportRepo must satisfy repo.ReportRepo.
var _ repo.ReportRepo = (*mockReportRepo)(nil)

// ---- Timesheet -------------------------------------------------------------

func TestReportService_Timesheet_OK(t *testing.T) {
	sheet := domain.DayTimesheet{WorkStart: "09:00", WorkEnd: "17:00", Breaks: []domain.TimesheetBreak{}}
	svc := service.NewReportService(&mockReportRepo{
		getTimesheet: func(_ context.Context, day string) (domain.DayTimesheet, error) {
			assert.Equal(t, "2026-01-26", day)
			return sheet, nil
		},
	})

	got, err := svc.Timesheet(context.Background(), "2026-01-26")

	require.NoError(t, err)
	assert.Equal(t, sheet, got)
}

func TestReportService_Timesheet_BadDay(t *testing.T) {
	storeCalled := false
	svc := service.NewReportService(&mockReportRepo{
		getTimesheet: func(_ context.Context, _ string) (domain.DayTimesheet, error) {
			storeCalled = true
			return domain.DayTimesheet{}, nil
		},
	})

	_, err := svc.Timesheet(context.Background(), "not-a-date")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, storeCalled)
}

func TestReportService_Timesheet_NotFound(t *testing.T) {
	svc := service.NewReportService(&mockReportRepo{
		getTimesheet: func(_ context.Context, _ string) (domain.DayTimesheet, error) {
			return domain.DayTimesheet{}, domain.ErrNotFound
		},
	})

	_, err := svc.Timesheet(context.Background(), "2026-01-26")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Month -----------------------------------------------------------------

// TestReportService_Month_Bounds verifies the range is bounded 01..31 — the
// phantom day 31 of short months matches nothing and needs no special case.
func TestReportService_Month_Bounds(t *testing.T) {
	var gotFrom, gotTo string
	svc := service.NewReportService(&mockReportRepo{
		rangeSummaries: func(_ context.Context, from, to string) ([]domain.DaySummary, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	})

	summaries, err := svc.Month(context.Background(), 2026, 2)

	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", gotFrom)
	assert.Equal(t, "2026-02-31", gotTo)
	assert.NotNil(t, summaries, "Month must never return a nil slice")
}

func TestReportService_Month_InvalidMonth(t *testing.T) {
	svc := service.NewReportService(&mockReportRepo{})

	_, err := svc.Month(context.Background(), 2026, 13)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportService_Month_InvalidYear(t *testing.T) {
	svc := service.NewReportService(&mockReportRepo{})

	_, err := svc.Month(context.Background(), 0, 2)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
