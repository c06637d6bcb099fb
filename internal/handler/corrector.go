package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
	"redacao_service/internal/service"
)

type CorrectorHandler struct {
	correctors *service.CorrectorService
}

func NewCorrectorHandler(correctors *service.CorrectorService) *CorrectorHandler {
	return &CorrectorHandler{correctors: correctors}
}

func (h *CorrectorHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type correctorRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Active     *bool    `json:"active,omitempty"`
	Visible    *bool    `json:"visible,omitempty"`
	ClassCodes []string `json:"class_codes,omitempty"`
}

type correctorResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Active     bool      `json:"active"`
	Visible    bool      `json:"visible"`
	ClassCodes []string  `json:"class_codes"`
	CreatedAt  time.Time `json:"created_at"`
	EditedAt   time.Time `json:"edited_at"`
}

func toCorrectorResponse(c *domain.Corrector) correctorResponse {
	return correctorResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Email:      c.Email,
		Active:     c.Active,
		Visible:    c.Visible,
		ClassCodes: c.ClassCodes,
		CreatedAt:  c.CreatedAt,
		EditedAt:   c.EditedAt,
	}
}

func (req correctorRequest) toDomain() *domain.Corrector {
	corrector := &domain.Corrector{
		Name:       req.Name,
		Email:      req.Email,
		Active:     true,
		Visible:    true,
		ClassCodes: req.ClassCodes,
	}
	if req.Active != nil {
		corrector.Active = *req.Active
	}
	if req.Visible != nil {
		corrector.Visible = *req.Visible
	}
	return corrector
}

func (h *CorrectorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req correctorRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	created, err := h.correctors.CreateCorrector(r.Context(), req.toDomain())
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCorrectorResponse(created))
}

func (h *CorrectorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	corrector, err := h.correctors.GetCorrector(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCorrectorResponse(corrector))
}

func (h *CorrectorHandler) List(w http.ResponseWriter, r *http.Request) {
	onlyVisible := r.URL.Query().Get("only_visible") == "true"

	correctors, err := h.correctors.ListCorrectors(r.Context(), onlyVisible)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := make([]correctorResponse, 0, len(correctors))
	for _, c := range correctors {
		resp = append(resp, toCorrectorResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"correctors": resp})
}

func (h *CorrectorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req correctorRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	corrector := req.toDomain()
	corrector.ID = id

	if err := h.correctors.UpdateCorrector(r.Context(), corrector); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CorrectorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.correctors.DeleteCorrector(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type StudentHandler struct {
	correctors *service.CorrectorService
}

func NewStudentHandler(correctors *service.CorrectorService) *StudentHandler {
	return &StudentHandler{correctors: correctors}
}

func (h *StudentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Register)
}

type registerStudentRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ClassCode string `json:"class_code"`
	IsVisitor bool   `json:"is_visitor"`
}

func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerStudentRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	student, err := h.correctors.RegisterStudent(r.Context(), &repository.Student{
		Name:      req.Name,
		Email:     req.Email,
		ClassCode: req.ClassCode,
		IsVisitor: req.IsVisitor,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         student.ID.String(),
		"name":       student.Name,
		"email":      student.Email,
		"class_code": student.ClassCode,
		"is_visitor": student.IsVisitor,
	})
}
