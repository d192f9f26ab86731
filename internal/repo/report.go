package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// ReportRepo defines the persistence operations for the two derived per-day
// projections. Both are keyed by the day string (YYYY-MM-DD) and are always
// replaced whole on recompute — there is no partial update.
type ReportRepo interface {
	// UpsertSummary stores the analytic projection for its day, overwriting
	// any existing row. The store stamps computed_at; the returned record
	// carries the stamped value.
	UpsertSummary(ctx context.Context, summary domain.DaySummary) (domain.DaySummary, error)

	// UpsertTimesheet stores the presentation projection for day,
	// overwriting any existing row.
	UpsertTimesheet(ctx context.Context, day string, sheet domain.DayTimesheet) error

	// GetTimesheet retrieves one day's presentation projection.
	// Returns domain.ErrNotFound if no row exists for that day.
	GetTimesheet(ctx context.Context, day string) (domain.DayTimesheet, error)

	// RangeSummaries returns all analytic projections with
	// fromDay <= day <= toDay under lexicographic string comparison,
	// ascending by day. Day keys that match no row are simply absent.
	RangeSummaries(ctx context.Context, fromDay, toDay string) ([]domain.DaySummary, error)
}

// pgReportRepo is the Postgres implementation of ReportRepo.
type pgReportRepo struct {
	db db
}

// NewReportRepo constructs a ReportRepo backed by the provided db connection.
func NewReportRepo(db db) ReportRepo {
	return &pgReportRepo{db: db}
}

// UpsertSummary writes the full analytic row for the summary's day.
// computed_at is assigned by the database so every upsert carries a fresh
// provenance stamp regardless of which code path produced the summary.
func (r *pgReportRepo) UpsertSummary(ctx context.Context, summary domain.DaySummary) (domain.DaySummary, error) {
	const q = `
		INSERT INTO day_reports (day, work_minutes, break_minutes, started_at, ended_at, event_count, computed_at)
		VALUES (@day, @work_minutes, @break_minutes, @started_at, @ended_at, @event_count, now())
		ON CONFLICT (day) DO UPDATE
		SET work_minutes  = EXCLUDED.work_minutes,
		    break_minutes = EXCLUDED.break_minutes,
		    started_at    = EXCLUDED.started_at,
		    ended_at      = EXCLUDED.ended_at,
		    event_count   = EXCLUDED.event_count,
		    computed_at   = EXCLUDED.computed_at
		RETURNING day, work_minutes, break_minutes, started_at, ended_at, event_count, computed_at`

	args := pgx.NamedArgs{
		"day":           summary.Day,
		"work_minutes":  summary.WorkMinutes,
		"break_minutes": summary.BreakMinutes,
		"started_at":    summary.StartedAt,
		"ended_at":      summary.EndedAt,
		"event_count":   summary.EventCount,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSummary(row)
	if err != nil {
		return domain.DaySummary{}, fmt.Errorf("repo.ReportRepo.UpsertSummary: %w", err)
	}
	return result, nil
}

// UpsertTimesheet writes the full presentation row for day.
// Breaks are stored as a jsonb array.
func (r *pgReportRepo) UpsertTimesheet(ctx context.Context, day string, sheet domain.DayTimesheet) error {
	breaks, err := json.Marshal(sheet.Breaks)
	if err != nil {
		return fmt.Errorf("repo.ReportRepo.UpsertTimesheet: marshal breaks: %w", err)
	}

	const q = `
		INSERT INTO day_timesheets (day, work_start, work_end, breaks)
		VALUES (@day, @work_start, @work_end, @breaks)
		ON CONFLICT (day) DO UPDATE
		SET work_start = EXCLUDED.work_start,
		    work_end   = EXCLUDED.work_end,
		    breaks     = EXCLUDED.breaks`

	args := pgx.NamedArgs{
		"day":        day,
		"work_start": sheet.WorkStart,
		"work_end":   sheet.WorkEnd,
		"breaks":     breaks,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.ReportRepo.UpsertTimesheet: %w", err)
	}
	return nil
}

// GetTimesheet retrieves the presentation projection for one day.
func (r *pgReportRepo) GetTimesheet(ctx context.Context, day string) (domain.DayTimesheet, error) {
	const q = `
		SELECT work_start, work_end, breaks
		FROM day_timesheets
		WHERE day = @day`

	var (
		sheet  domain.DayTimesheet
		breaks []byte
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"day": day}).Scan(&sheet.WorkStart, &sheet.WorkEnd, &breaks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DayTimesheet{}, fmt.Errorf("repo.ReportRepo.GetTimesheet: %w", domain.ErrNotFound)
		}
		return domain.DayTimesheet{}, fmt.Errorf("repo.ReportRepo.GetTimesheet: %w", err)
	}

	if err := json.Unmarshal(breaks, &sheet.Breaks); err != nil {
		return domain.DayTimesheet{}, fmt.Errorf("repo.ReportRepo.GetTimesheet: unmarshal breaks: %w", err)
	}
	if sheet.Breaks == nil {
		sheet.Breaks = []domain.TimesheetBreak{}
	}
	return sheet, nil
}

// RangeSummaries returns the analytic projections inside the inclusive day
// range, ascending. Day keys are plain strings, so the comparison is
// lexicographic — which for YYYY-MM-DD keys is chronological, and a bound
// like 2026-02-31 is harmless.
func (r *pgReportRepo) RangeSummaries(ctx context.Context, fromDay, toDay string) ([]domain.DaySummary, error) {
	const q = `
		SELECT day, work_minutes, break_minutes, started_at, ended_at, event_count, computed_at
		FROM day_reports
		WHERE day >= @from AND day <= @to
		ORDER BY day ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"from": fromDay, "to": toDay})
	if err != nil {
		return nil, fmt.Errorf("repo.ReportRepo.RangeSummaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.DaySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReportRepo.RangeSummaries: scan: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReportRepo.RangeSummaries: rows: %w", err)
	}

	return summaries, nil
}

// scanSummary maps a single day_reports row into a domain.DaySummary.
func scanSummary(s scanner) (domain.DaySummary, error) {
	var sum domain.DaySummary
	err := s.Scan(&sum.Day, &sum.WorkMinutes, &sum.BreakMinutes, &sum.StartedAt, &sum.EndedAt, &sum.EventCount, &sum.ComputedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DaySummary{}, domain.ErrNotFound
		}
		return domain.DaySummary{}, err
	}
	return sum, nil
}
