package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"redacao_service/internal/domain"
	"redacao_service/internal/service"
)

type LiveClassHandler struct {
	classes    *service.LiveClassService
	attendance *service.AttendanceService
}

func NewLiveClassHandler(classes *service.LiveClassService, attendance *service.AttendanceService) *LiveClassHandler {
	return &LiveClassHandler{classes: classes, attendance: attendance}
}

func (h *LiveClassHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/current", h.ListCurrent)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/entry", h.RecordEntry)
	r.Post("/{id}/exit", h.RecordExit)
	r.Get("/{id}/attendance", h.AttendanceReport)
}

type liveClassRequest struct {
	Title             string   `json:"title"`
	Date              string   `json:"date"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	MeetingLink       *string  `json:"meeting_link,omitempty"`
	AuthorizedClasses []string `json:"authorized_classes,omitempty"`
	VisitorAllowed    bool     `json:"visitor_allowed"`
	Active            *bool    `json:"active,omitempty"`
	IsLiveFormat      *bool    `json:"is_live_format,omitempty"`
}

type liveClassResponse struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Date              string   `json:"date"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	MeetingLink       *string  `json:"meeting_link,omitempty"`
	AuthorizedClasses []string `json:"authorized_classes"`
	VisitorAllowed    bool     `json:"visitor_allowed"`
	Active            bool     `json:"active"`
	IsLiveFormat      bool     `json:"is_live_format"`
}

func toLiveClassResponse(c *domain.LiveClass) liveClassResponse {
	return liveClassResponse{
		ID:                c.ID.String(),
		Title:             c.Title,
		Date:              c.Date,
		StartTime:         c.StartTime,
		EndTime:           c.EndTime,
		MeetingLink:       c.MeetingLink,
		AuthorizedClasses: c.AuthorizedClasses,
		VisitorAllowed:    c.VisitorAllowed,
		Active:            c.Active,
		IsLiveFormat:      c.IsLiveFormat,
	}
}

func (req liveClassRequest) toDomain() *domain.LiveClass {
	class := &domain.LiveClass{
		Title:             req.Title,
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		MeetingLink:       req.MeetingLink,
		AuthorizedClasses: req.AuthorizedClasses,
		VisitorAllowed:    req.VisitorAllowed,
		Active:            true,
		IsLiveFormat:      true,
	}
	if req.Active != nil {
		class.Active = *req.Active
	}
	if req.IsLiveFormat != nil {
		class.IsLiveFormat = *req.IsLiveFormat
	}
	return class
}

func (h *LiveClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req liveClassRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	created, err := h.classes.CreateClass(r.Context(), req.toDomain())
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLiveClassResponse(created))
}

func (h *LiveClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	class, err := h.classes.GetClass(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toLiveClassResponse(class))
}

func (h *LiveClassHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	classes, err := h.classes.ListClasses(r.Context(), activeOnly)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := make([]liveClassResponse, 0, len(classes))
	for _, c := range classes {
		resp = append(resp, toLiveClassResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"classes": resp})
}

type currentClassResponse struct {
	Class    liveClassResponse `json:"class"`
	Status   string            `json:"status"`
	StartsAt time.Time         `json:"starts_at"`
	EndsAt   time.Time         `json:"ends_at"`
}

func (h *LiveClassHandler) ListCurrent(w http.ResponseWriter, r *http.Request) {
	current, err := h.classes.ListCurrent(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := make([]currentClassResponse, 0, len(current))
	for _, c := range current {
		resp = append(resp, currentClassResponse{
			Class:    toLiveClassResponse(c.Class),
			Status:   string(c.Status),
			StartsAt: c.StartsAt,
			EndsAt:   c.EndsAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"classes": resp})
}

func (h *LiveClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req liveClassRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	class := req.toDomain()
	class.ID = id

	if err := h.classes.UpdateClass(r.Context(), class); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LiveClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.classes.DeleteClass(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LiveClassHandler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	result, err := h.attendance.RecordEntry(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, attendanceStatusCode(result), map[string]string{"result": string(result)})
}

func (h *LiveClassHandler) RecordExit(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	result, err := h.attendance.RecordExit(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, attendanceStatusCode(result), map[string]string{"result": string(result)})
}

// attendanceStatusCode keeps the outcome codes in the body; only
// authentication gets a non-200 status.
func attendanceStatusCode(result domain.AttendanceResult) int {
	if result == domain.ResultNotAuthenticated {
		return http.StatusUnauthorized
	}
	return http.StatusOK
}

type attendanceRowResponse struct {
	StudentEmail    string     `json:"student_email"`
	StudentName     string     `json:"student_name"`
	EntryAt         *time.Time `json:"entry_at,omitempty"`
	ExitAt          *time.Time `json:"exit_at,omitempty"`
	Status          string     `json:"status"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

func (h *LiveClassHandler) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	rows, err := h.attendance.Report(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := make([]attendanceRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, attendanceRowResponse{
			StudentEmail:    row.StudentEmail,
			StudentName:     row.StudentName,
			EntryAt:         row.EntryAt,
			ExitAt:          row.ExitAt,
			Status:          string(row.Status),
			DurationMinutes: row.DurationMinutes,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"report": resp})
}
