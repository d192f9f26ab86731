package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// ingestRequest is the wire body for POST /events. Field names match what
// the badge sensor firmware has always sent.
type ingestRequest struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// IngestEvent handles POST /events: validate and append one raw presence
// event. Guarded by the ingest secret when one is configured.
func (s *Server) IngestEvent(w http.ResponseWriter, r *http.Request) {
	if s.ingestSecret != "" && !secretMatches(r, "X-Ingest-Secret", s.ingestSecret) {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or wrong ingest secret")
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	event, err := s.events.Ingest(r.Context(), req.Status, req.Timestamp)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// RecentEvents handles GET /events/recent: the newest events, timestamp
// descending. ?limit= defaults to 10 and is capped by the service.
func (s *Server) RecentEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be an integer")
			return
		}
		limit = n
	}

	events, err := s.events.Recent(r.Context(), limit)
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}
