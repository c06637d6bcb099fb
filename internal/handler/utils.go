package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
	"redacao_service/internal/service"
)

func mapErr(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrMaxCorrectors),
		errors.Is(err, service.ErrCorrectorAlreadySelected),
		errors.Is(err, service.ErrCorrectorUnavailable):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp, _ := json.Marshal(map[string]string{"error": message})
	w.Write(resp)
}

func writeErr(w http.ResponseWriter, err error) {
	statusCode := mapErr(err)
	message := http.StatusText(statusCode)
	if statusCode != http.StatusInternalServerError {
		message = err.Error()
	}
	writeErrorJSON(w, statusCode, message)
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", service.ErrValidation)
	}
	return nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: missing path param %s", service.ErrValidation, name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s: %v", service.ErrValidation, name, err)
	}
	return id, nil
}

// parseSubmissionFilter reads the shared list/leaderboard query params.
// Year and month only count when both are present.
func parseSubmissionFilter(r *http.Request) (domain.SubmissionFilter, error) {
	q := r.URL.Query()

	filter := domain.SubmissionFilter{
		ClassCode:    q.Get("class_code"),
		StudentEmail: q.Get("student_email"),
	}

	if category := q.Get("category"); category != "" {
		parsed := domain.ToCategory(category)
		if parsed == domain.CategoryUnspecified {
			return domain.SubmissionFilter{}, fmt.Errorf("%w: unknown category %q", service.ErrValidation, category)
		}
		filter.Category = parsed
	}

	if examID := q.Get("exam_id"); examID != "" {
		id, err := uuid.Parse(examID)
		if err != nil {
			return domain.SubmissionFilter{}, fmt.Errorf("%w: invalid exam_id: %v", service.ErrValidation, err)
		}
		filter.ExamID = id
	}

	year, month := q.Get("year"), q.Get("month")
	if (year == "") != (month == "") {
		return domain.SubmissionFilter{}, fmt.Errorf("%w: year and month must be provided together", service.ErrValidation)
	}
	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return domain.SubmissionFilter{}, fmt.Errorf("%w: invalid year: %v", service.ErrValidation, err)
		}
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return domain.SubmissionFilter{}, fmt.Errorf("%w: invalid month", service.ErrValidation)
		}
		filter.Year = y
		filter.Month = time.Month(m)
	}

	return filter, nil
}
