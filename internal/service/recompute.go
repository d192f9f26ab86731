package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhemmerl/stempeluhr/internal/domain"
	"github.com/jhemmerl/stempeluhr/internal/repo"
	"github.com/jhemmerl/stempeluhr/internal/timeline"
)

// recomputeConcurrency bounds the per-day goroutine fan-out of a full
// rebuild. Day pipelines are independent, so the limit only protects the
// database connection pool.
const recomputeConcurrency = 8

// DayResult is one line of the recompute audit report. It exists for
// operators reading the response, not for control flow.
type DayResult struct {
	Day          string `json:"datum"`
	RawEvents    int    `json:"events_raw"`
	CleanEvents  int    `json:"events_clean"`
	WorkMinutes  int    `json:"arbeit"`
	BreakMinutes int    `json:"pause"`
}

// RecomputeService rebuilds day summaries from the raw event log. Every
// entrypoint (full rebuild, single-day cron) runs the identical
// sort→denoise→fold pipeline, so no two paths can disagree on totals.
type RecomputeService struct {
	events  repo.EventRepo
	reports repo.ReportRepo

	threshold  time.Duration
	bucketLoc  *time.Location
	displayLoc *time.Location
	timeout    time.Duration
}

// NewRecomputeService constructs a RecomputeService.
// threshold is the denoise cancellation window; bucketLoc determines which
// calendar day an event belongs to; displayLoc is the timezone timesheet
// clock times are rendered in; timeout bounds a full-history rebuild.
func NewRecomputeService(events repo.EventRepo, reports repo.ReportRepo, threshold time.Duration, bucketLoc, displayLoc *time.Location, timeout time.Duration) *RecomputeService {
	return &RecomputeService{
		events:     events,
		reports:    reports,
		threshold:  threshold,
		bucketLoc:  bucketLoc,
		displayLoc: displayLoc,
		timeout:    timeout,
	}
}

// RecomputeAll rebuilds every day's projections from the complete event
// history. Day buckets are processed concurrently and joined before
// returning; a store failure cancels the remaining days but days already
// upserted stay committed. Rerunning the whole operation is safe: every
// derived field is a deterministic function of the event log.
//
// The returned audit report is sorted ascending by day and contains one entry
// per day that produced a summary; fully-cancelled days are skipped silently.
func (s *RecomputeService) RecomputeAll(ctx context.Context) ([]DayResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	history, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RecomputeService.RecomputeAll: %w", err)
	}

	buckets := timeline.GroupByDay(history, s.bucketLoc)

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	// One result slot per day; a nil slot afterwards means the day was
	// skipped (fully cancelled). Disjoint indices, so no locking.
	results := make([]*DayResult, len(days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recomputeConcurrency)

	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			res, ok, err := s.recomputeBucket(gctx, day, buckets[day])
			if err != nil {
				return err
			}
			if ok {
				results[i] = &res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.RecomputeService.RecomputeAll: %w", err)
	}

	report := make([]DayResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			report = append(report, *r)
		}
	}

	slog.InfoContext(ctx, "recompute finished",
		"days_seen", len(days),
		"days_written", len(report),
		"events", len(history),
	)
	return report, nil
}

// RecomputeDay rebuilds one day's projections from that day's events and
// returns the stored summary. Returns domain.ErrNoData when the day has no
// events or they fully cancel under denoising; in that case nothing is
// upserted.
func (s *RecomputeService) RecomputeDay(ctx context.Context, day string) (domain.DaySummary, error) {
	from, to, err := timeline.DayBounds(day, s.bucketLoc)
	if err != nil {
		return domain.DaySummary{}, err
	}

	events, err := s.events.ListRange(ctx, from, to)
	if err != nil {
		return domain.DaySummary{}, fmt.Errorf("service.RecomputeService.RecomputeDay: %w", err)
	}

	summary, ok, err := s.upsertProjections(ctx, day, events)
	if err != nil {
		return domain.DaySummary{}, fmt.Errorf("service.RecomputeService.RecomputeDay: %w", err)
	}
	if !ok {
		return domain.DaySummary{}, fmt.Errorf("service.RecomputeService.RecomputeDay: day %s: %w", day, domain.ErrNoData)
	}
	return summary, nil
}

// Today returns the current day key in the bucketing location.
func (s *RecomputeService) Today() string {
	return timeline.DayKey(time.Now(), s.bucketLoc)
}

// recomputeBucket runs the pipeline for one day bucket and reports audit
// counts. ok is false when the bucket produced no summary.
func (s *RecomputeService) recomputeBucket(ctx context.Context, day string, raw []domain.Event) (DayResult, bool, error) {
	summary, ok, err := s.upsertProjections(ctx, day, raw)
	if err != nil {
		return DayResult{}, false, fmt.Errorf("day %s: %w", day, err)
	}
	if !ok {
		return DayResult{}, false, nil
	}

	return DayResult{
		Day:          day,
		RawEvents:    len(raw),
		CleanEvents:  summary.EventCount,
		WorkMinutes:  summary.WorkMinutes,
		BreakMinutes: summary.BreakMinutes,
	}, true, nil
}

// upsertProjections is the single shared pipeline: sort, denoise, fold, and
// persist both projections. ok is false (with nothing written) when the
// denoised sequence is empty.
func (s *RecomputeService) upsertProjections(ctx context.Context, day string, raw []domain.Event) (domain.DaySummary, bool, error) {
	events := make([]domain.Event, len(raw))
	copy(events, raw)
	timeline.SortChronological(events)

	clean := timeline.Denoise(events, s.threshold)
	agg, ok := timeline.Fold(clean)
	if !ok {
		return domain.DaySummary{}, false, nil
	}

	stored, err := s.reports.UpsertSummary(ctx, timeline.Summary(day, agg))
	if err != nil {
		return domain.DaySummary{}, false, err
	}
	if err := s.reports.UpsertTimesheet(ctx, day, timeline.Timesheet(agg, s.displayLoc)); err != nil {
		return domain.DaySummary{}, false, err
	}
	return stored, true, nil
}
