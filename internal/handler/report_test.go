package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhemmerl/stempeluhr/internal/domain"
	"github.com/jhemmerl/stempeluhr/internal/handler"
)

// ---- GET /reports/{date} ---------------------------------------------------

func TestDayTimesheet_200(t *testing.T) {
	sheet := domain.DayTimesheet{
		WorkStart: "09:00",
		WorkEnd:   "17:00",
		Breaks:    []domain.TimesheetBreak{{Start: "13:00", End: "13:30"}},
	}
	svc := &mockReportServicer{
		timesheet: func(_ context.Context, day string) (domain.DayTimesheet, error) {
			assert.Equal(t, "2026-01-26", day)
			return sheet, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/2026-01-26", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.DayTimesheet
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, sheet, resp)
}

func TestDayTimesheet_404(t *testing.T) {
	svc := &mockReportServicer{
		timesheet: func(_ context.Context, _ string) (domain.DayTimesheet, error) {
			return domain.DayTimesheet{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/2026-01-26", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDayTimesheet_422_BadDate(t *testing.T) {
	svc := &mockReportServicer{
		timesheet: func(_ context.Context, _ string) (domain.DayTimesheet, error) {
			return domain.DayTimesheet{}, domain.Validationf("date must be YYYY-MM-DD, got %q", "tomorrow")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/tomorrow", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The response carries only the detail, not the "validation error:" prefix.
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, `date must be YYYY-MM-DD, got "tomorrow"`, resp.Error.Message)
}

// ---- GET /reports?year=&month= ---------------------------------------------

func TestMonthReports_200(t *testing.T) {
	summaries := []domain.DaySummary{
		{
			Day:          "2026-02-05",
			WorkMinutes:  450,
			BreakMinutes: 30,
			StartedAt:    time.Date(2026, 2, 5, 8, 0, 0, 0, time.UTC),
			EndedAt:      time.Date(2026, 2, 5, 16, 0, 0, 0, time.UTC),
			EventCount:   4,
		},
	}
	svc := &mockReportServicer{
		month: func(_ context.Context, year, month int) ([]domain.DaySummary, error) {
			assert.Equal(t, 2026, year)
			assert.Equal(t, 2, month)
			return summaries, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports?year=2026&month=2", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.DaySummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "2026-02-05", resp[0].Day)
	assert.Equal(t, 450, resp[0].WorkMinutes)
}

func TestMonthReports_400_MissingParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, &mockReportServicer{}, nil, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMonthReports_EmptyMonthIsEmptyArray(t *testing.T) {
	svc := &mockReportServicer{
		month: func(_ context.Context, _, _ int) ([]domain.DaySummary, error) {
			return []domain.DaySummary{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports?year=2026&month=3", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, svc, nil, "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
