package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jhemmerl/stempeluhr/internal/domain"
)

// DayTimesheet handles GET /reports/{date}: one day's presentation
// projection.
func (s *Server) DayTimesheet(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "date")

	sheet, err := s.reports.Timesheet(r.Context(), day)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "no report for "+day)
		default:
			writeServerError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, sheet)
}

// MonthReports handles GET /reports?year=&month=: all analytic summaries of
// one calendar month, ascending by day. Both parameters are required.
func (s *Server) MonthReports(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "year is required and must be an integer")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "month is required and must be an integer")
		return
	}

	summaries, err := s.reports.Month(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}
