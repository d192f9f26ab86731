// Package handler implements the HTTP handlers for the Stempeluhr API.
// All handlers are methods on Server. Methods are split into area-specific
// files (event.go, report.go, recompute.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jhemmerl/stempeluhr/internal/domain"
	"github.com/jhemmerl/stempeluhr/internal/service"
)

// EventServicer defines the ingestion operations the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type EventServicer interface {
	Ingest(ctx context.Context, status, timestamp string) (domain.Event, error)
	Recent(ctx context.Context, limit int) ([]domain.Event, error)
}

// ReportServicer defines the read operations over stored projections.
type ReportServicer interface {
	Timesheet(ctx context.Context, day string) (domain.DayTimesheet, error)
	Month(ctx context.Context, year, month int) ([]domain.DaySummary, error)
}

// RecomputeServicer defines the rebuild operations.
type RecomputeServicer interface {
	RecomputeAll(ctx context.Context) ([]service.DayResult, error)
	RecomputeDay(ctx context.Context, day string) (domain.DaySummary, error)
	Today() string
}

// Server holds all handler dependencies and the shared secrets guarding the
// write-ish endpoints.
type Server struct {
	events    EventServicer
	reports   ReportServicer
	recompute RecomputeServicer

	// cronSecret guards the recompute endpoints; always set.
	cronSecret string
	// ingestSecret guards POST /events when non-empty.
	ingestSecret string
}

// NewServer constructs the Server with all its dependencies.
func NewServer(events EventServicer, reports ReportServicer, recompute RecomputeServicer, cronSecret, ingestSecret string) *Server {
	return &Server{
		events:       events,
		reports:      reports,
		recompute:    recompute,
		cronSecret:   cronSecret,
		ingestSecret: ingestSecret,
	}
}

// Routes returns the chi router for the full API surface.
// Cross-cutting middleware (request ID, logging, CORS, body limits) is
// applied by main on the outer router, not here.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.Health)

	r.Post("/events", s.IngestEvent)
	r.Get("/events/recent", s.RecentEvents)

	r.Get("/reports", s.MonthReports)
	r.Get("/reports/{date}", s.DayTimesheet)

	r.Post("/recompute", s.RecomputeAll)
	r.Post("/recompute/today", s.RecomputeToday)

	return r
}
