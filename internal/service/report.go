package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jhemmerl/stempeluhr/internal/domain"
	"github.com/jhemmerl/stempeluhr/internal/repo"
)

// ReportService serves the stored projections: one day's timesheet and one
// month's summaries. It never computes anything — reads go straight to the
// report store.
type ReportService struct {
	reports repo.ReportRepo
}

// NewReportService constructs a ReportService backed by the provided ReportRepo.
func NewReportService(reports repo.ReportRepo) *ReportService {
	return &ReportService{reports: reports}
}

// Timesheet returns the presentation projection for one day (YYYY-MM-DD).
// Returns domain.ErrValidation for a malformed day key and domain.ErrNotFound
// when no report exists for that day.
func (s *ReportService) Timesheet(ctx context.Context, day string) (domain.DayTimesheet, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return domain.DayTimesheet{}, domain.Validationf("date must be YYYY-MM-DD, got %q", day)
	}

	sheet, err := s.reports.GetTimesheet(ctx, day)
	if err != nil {
		return domain.DayTimesheet{}, fmt.Errorf("service.ReportService.Timesheet: %w", err)
	}
	return sheet, nil
}

// Month returns all analytic summaries for one calendar month, ascending by
// day. The range is bounded as YYYY-MM-01..YYYY-MM-31; day keys that do not
// exist in that month simply match nothing, so short months need no special
// casing. Always returns a non-nil slice.
func (s *ReportService) Month(ctx context.Context, year, month int) ([]domain.DaySummary, error) {
	if year < 1 || year > 9999 {
		return nil, domain.Validationf("year out of range: %d", year)
	}
	if month < 1 || month > 12 {
		return nil, domain.Validationf("month out of range: %d", month)
	}

	from := fmt.Sprintf("%04d-%02d-01", year, month)
	to := fmt.Sprintf("%04d-%02d-31", year, month)

	summaries, err := s.reports.RangeSummaries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("service.ReportService.Month: %w", err)
	}
	if summaries == nil {
		return []domain.DaySummary{}, nil
	}
	return summaries, nil
}
