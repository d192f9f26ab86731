package handler

import (
	"errors"
	"net/http"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// RecomputeAll handles POST /recompute: rebuild every day's projections from
// the full event history. Guarded by the cron secret.
// The response is the audit report, one line per day that produced a summary.
func (s *Server) RecomputeAll(w http.ResponseWriter, r *http.Request) {
	if !secretMatches(r, "X-Cron-Secret", s.cronSecret) {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or wrong cron secret")
		return
	}

	report, err := s.recompute.RecomputeAll(r.Context())
	if err != nil {
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"days":    len(report),
		"details": report,
	})
}

// RecomputeToday handles POST /recompute/today: the cron path that rebuilds
// the current day (in the bucketing timezone). Guarded by the cron secret.
// A day with no usable events is a 200 with an explicit marker, not an error.
func (s *Server) RecomputeToday(w http.ResponseWriter, r *http.Request) {
	if !secretMatches(r, "X-Cron-Secret", s.cronSecret) {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or wrong cron secret")
		return
	}

	day := s.recompute.Today()
	summary, err := s.recompute.RecomputeDay(r.Context(), day)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			writeJSON(w, http.StatusOK, map[string]any{"datum": day, "no_data": true})
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
