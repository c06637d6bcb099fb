package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"redacao_service/internal/domain"
	"redacao_service/internal/service"
)

type AnnotationHandler struct {
	annotations *service.AnnotationService
}

func NewAnnotationHandler(annotations *service.AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{annotations: annotations}
}

func (h *AnnotationHandler) RegisterRoutes(r chi.Router) {
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *AnnotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req annotationRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	annotation := &domain.Annotation{
		ID:         id,
		Competency: req.Competency,
		X:          req.X,
		Y:          req.Y,
		Comment:    req.Comment,
	}

	if err := h.annotations.UpdateAnnotation(r.Context(), annotation); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AnnotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.annotations.DeleteAnnotation(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
