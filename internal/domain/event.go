// Package domain contains the core data types for the Stempeluhr service.
// This package has zero business logic and is imported by every other
// internal package (timeline, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind is the kind of a presence event. The wire labels are the German
// originals used by the sensor firmware and kept for compatibility:
// "KOMMEN" (arrival) and "GEHEN" (departure).
type EventKind string

const (
	// KindArrival marks the start of a presence interval.
	KindArrival EventKind = "KOMMEN"
	// KindDeparture marks the end of a presence interval.
	KindDeparture EventKind = "GEHEN"
)

// ParseEventKind validates a wire-format kind label.
// Returns ErrValidation for anything other than the two known labels.
func ParseEventKind(s string) (EventKind, error) {
	switch EventKind(s) {
	case KindArrival, KindDeparture:
		return EventKind(s), nil
	}
	return "", Validationf("unknown event kind %q", s)
}

// Event is a single raw presence event. Events are immutable once created:
// the ingestion boundary appends them and nothing ever updates them.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      EventKind `json:"status"`
	Timestamp time.Time `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}
