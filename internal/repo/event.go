// Package repo contains all database access logic for the Stempeluhr API.
// Each store has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EventRepo defines the persistence operations for the append-only raw event
// log. Events are never updated or deleted through this interface.
type EventRepo interface {
	// Append inserts a new event and returns the persisted record (with
	// DB-generated id and created_at populated).
	Append(ctx context.Context, kind domain.EventKind, ts time.Time) (domain.Event, error)

	// ListAll returns the complete event history ordered by timestamp
	// ascending. Used by the full recompute.
	ListAll(ctx context.Context) ([]domain.Event, error)

	// ListRange returns events with from <= timestamp < to, ascending.
	// Used to fetch a single day bucket.
	ListRange(ctx context.Context, from, to time.Time) ([]domain.Event, error)

	// ListRecent returns the newest limit events, timestamp descending.
	// Diagnostic surface only.
	ListRecent(ctx context.Context, limit int) ([]domain.Event, error)
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

// Append inserts a new event row and returns the full persisted record.
func (r *pgEventRepo) Append(ctx context.Context, kind domain.EventKind, ts time.Time) (domain.Event, error) {
	const q = `
		INSERT INTO events (kind, ts)
		VALUES (@kind, @ts)
		RETURNING id, kind, ts, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"kind": string(kind), "ts": ts})
	result, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Append: %w", err)
	}
	return result, nil
}

// ListAll returns every event, oldest first.
func (r *pgEventRepo) ListAll(ctx context.Context) ([]domain.Event, error) {
	const q = `
		SELECT id, kind, ts, created_at
		FROM events
		ORDER BY ts ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListAll: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, "repo.EventRepo.ListAll")
}

// ListRange returns events in the half-open interval [from, to), oldest first.
func (r *pgEventRepo) ListRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	const q = `
		SELECT id, kind, ts, created_at
		FROM events
		WHERE ts >= @from AND ts < @to
		ORDER BY ts ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListRange: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, "repo.EventRepo.ListRange")
}

// ListRecent returns the newest limit events, newest first.
func (r *pgEventRepo) ListRecent(ctx context.Context, limit int) ([]domain.Event, error) {
	const q = `
		SELECT id, kind, ts, created_at
		FROM events
		ORDER BY ts DESC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListRecent: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, "repo.EventRepo.ListRecent")
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanEvent maps a single database row into a domain.Event.
func scanEvent(s scanner) (domain.Event, error) {
	var (
		e    domain.Event
		id   pgtype.UUID
		kind string
	)

	err := s.Scan(&id, &kind, &e.Timestamp, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.Kind = domain.EventKind(kind)
	return e, nil
}

// collectEvents drains rows into a slice, wrapping errors with op.
func collectEvents(rows pgx.Rows, op string) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return events, nil
}
