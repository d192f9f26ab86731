// Package service contains the business logic for the Stempeluhr API.
// Services validate inputs, run the timeline engine, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhemmerl/stempeluhr/internal/domain"
	"github.com/jhemmerl/stempeluhr/internal/repo"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// EventService implements the ingestion boundary and the diagnostic listing.
// It is the single place where wire-format kinds and timestamps are parsed;
// everything downstream works with validated domain values only.
type EventService struct {
	events repo.EventRepo
}

// NewEventService constructs an EventService backed by the provided EventRepo.
func NewEventService(events repo.EventRepo) *EventService {
	return &EventService{events: events}
}

// Ingest validates and appends one raw presence event.
// status must be one of the wire labels ("KOMMEN"/"GEHEN") and timestamp an
// RFC 3339 instant. Returns domain.ErrValidation before any write when either
// is missing or malformed.
func (s *EventService) Ingest(ctx context.Context, status, timestamp string) (domain.Event, error) {
	if strings.TrimSpace(status) == "" {
		return domain.Event{}, domain.Validationf("status is required")
	}
	if strings.TrimSpace(timestamp) == "" {
		return domain.Event{}, domain.Validationf("timestamp is required")
	}

	kind, err := domain.ParseEventKind(status)
	if err != nil {
		return domain.Event{}, err
	}

	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return domain.Event{}, domain.Validationf("timestamp must be RFC 3339, got %q", timestamp)
	}

	result, err := s.events.Append(ctx, kind, ts)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Ingest: %w", err)
	}
	return result, nil
}

// Recent returns the newest events for diagnostics, timestamp descending.
// limit falls back to 10 when unset and is capped at 100.
// Always returns a non-nil slice so callers can safely range over it.
func (s *EventService) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	events, err := s.events.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service.EventService.Recent: %w", err)
	}
	if events == nil {
		return []domain.Event{}, nil
	}
	return events, nil
}
