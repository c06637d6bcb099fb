package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"redacao_service/internal/domain"
	"redacao_service/internal/service"
)

type SubmissionHandler struct {
	submissions *service.SubmissionService
	grading     *service.GradingService
	annotations *service.AnnotationService
}

func NewSubmissionHandler(
	submissions *service.SubmissionService,
	grading *service.GradingService,
	annotations *service.AnnotationService,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		grading:     grading,
		annotations: annotations,
	}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/correctors", h.AssignCorrector)
	r.Post("/{id}/scores", h.RecordScores)

	r.Post("/{id}/annotations", h.CreateAnnotation)
	r.Get("/{id}/annotations", h.ListAnnotations)
}

type createSubmissionRequest struct {
	StudentName  string  `json:"student_name"`
	StudentEmail string  `json:"student_email"`
	ClassCode    *string `json:"class_code,omitempty"`
	Theme        string  `json:"theme"`
	Body         string  `json:"body"`
	Category     string  `json:"category"`
	ExamID       *string `json:"exam_id,omitempty"`
}

type evaluationResponse struct {
	CorrectorID string                   `json:"corrector_id"`
	Status      string                   `json:"status"`
	Scores      *domain.CompetencyScores `json:"scores,omitempty"`
	Total       *int                     `json:"total,omitempty"`
}

type submissionResponse struct {
	ID           string              `json:"id"`
	StudentName  string              `json:"student_name"`
	StudentEmail string              `json:"student_email"`
	ClassCode    *string             `json:"class_code,omitempty"`
	Theme        string              `json:"theme"`
	Body         string              `json:"body"`
	Category     string              `json:"category"`
	ExamID       *string             `json:"exam_id,omitempty"`
	Corrected    bool                `json:"corrected"`
	SubmittedAt  time.Time           `json:"submitted_at"`
	Corrector1   *evaluationResponse `json:"corrector_1,omitempty"`
	Corrector2   *evaluationResponse `json:"corrector_2,omitempty"`
}

type gradeResponse struct {
	Competencies [domain.CompetencyCount]*float64 `json:"competencies"`
	Total        *int                             `json:"total"`
}

type divergenceResponse struct {
	Competencies [domain.CompetencyCount]int `json:"competencies"`
	Total        int                         `json:"total"`
	Threshold    int                         `json:"threshold"`
	Divergent    bool                        `json:"divergent"`
}

type submissionViewResponse struct {
	Submission submissionResponse  `json:"submission"`
	Grade      gradeResponse       `json:"grade"`
	Divergence *divergenceResponse `json:"divergence,omitempty"`
	Review     string              `json:"review_status"`
}

func toSubmissionResponse(s *domain.Submission) submissionResponse {
	resp := submissionResponse{
		ID:           s.ID.String(),
		StudentName:  s.StudentName,
		StudentEmail: s.StudentEmail,
		ClassCode:    s.ClassCode,
		Theme:        s.Theme,
		Body:         s.Body,
		Category:     string(s.Category),
		Corrected:    s.Corrected,
		SubmittedAt:  s.SubmittedAt,
		Corrector1:   toEvaluationResponse(s.Corrector1),
		Corrector2:   toEvaluationResponse(s.Corrector2),
	}
	if s.ExamID != nil {
		examID := s.ExamID.String()
		resp.ExamID = &examID
	}
	return resp
}

func toEvaluationResponse(e *domain.Evaluation) *evaluationResponse {
	if e == nil {
		return nil
	}
	resp := &evaluationResponse{
		CorrectorID: e.CorrectorID.String(),
		Status:      string(e.Status),
		Scores:      e.Scores,
	}
	if e.Done() {
		total := e.Total
		resp.Total = &total
	}
	return resp
}

func toViewResponse(view *service.SubmissionView) submissionViewResponse {
	resp := submissionViewResponse{
		Submission: toSubmissionResponse(view.Submission),
		Grade: gradeResponse{
			Competencies: view.Grade.Competencies,
			Total:        view.Grade.Total,
		},
		Review: string(view.Review),
	}
	if view.Divergence != nil {
		resp.Divergence = &divergenceResponse{
			Competencies: view.Divergence.Competencies,
			Total:        view.Divergence.Total,
			Threshold:    view.Divergence.Threshold,
			Divergent:    view.Divergence.Divergent,
		}
	}
	return resp
}

func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	submission := &domain.Submission{
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		ClassCode:    req.ClassCode,
		Theme:        req.Theme,
		Body:         req.Body,
		Category:     domain.ToCategory(req.Category),
	}
	if req.ExamID != nil {
		examID, err := uuid.Parse(*req.ExamID)
		if err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "invalid exam_id")
			return
		}
		submission.ExamID = &examID
	}

	created, err := h.submissions.CreateSubmission(r.Context(), submission)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSubmissionResponse(created))
}

func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	view, err := h.submissions.GetSubmission(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toViewResponse(view))
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSubmissionFilter(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	views, err := h.submissions.ListSubmissions(r.Context(), filter)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := make([]submissionViewResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, toViewResponse(view))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": resp})
}

func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.submissions.DeleteSubmission(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type assignCorrectorRequest struct {
	CorrectorID string `json:"corrector_id"`
}

func (h *SubmissionHandler) AssignCorrector(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req assignCorrectorRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	correctorID, err := uuid.Parse(req.CorrectorID)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid corrector_id")
		return
	}

	if err := h.grading.AssignCorrector(r.Context(), id, correctorID); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordScoresRequest struct {
	Scores domain.CompetencyScores `json:"scores"`
}

func (h *SubmissionHandler) RecordScores(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	var req recordScoresRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	if err := h.grading.RecordScores(r.Context(), id, req.Scores); err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type annotationRequest struct {
	Competency int     `json:"competency"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Comment    string  `json:"comment"`
}

type annotationResponse struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"`
	CorrectorID  string    `json:"corrector_id"`
	Competency   int       `json:"competency"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	EditedAt     time.Time `json:"edited_at"`
}

func toAnnotationResponse(a *domain.Annotation) annotationResponse {
	return annotationResponse{
		ID:           a.ID.String(),
		SubmissionID: a.SubmissionID.String(),
		CorrectorID:  a.CorrectorID.String(),
		Competency:   a.Competency,
		X:            a.X,
		Y:            a.Y,
		Comment:      a.Comment,
		CreatedAt:    a.CreatedAt,
		EditedAt:     a.EditedAt,
	}
}

func (h *SubmissionHandler) CreateAnnotation(w http.ResponseWriter, r *http.Request) {
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
		SubmissionID: id,
		Competency:   req.Competency,
		X:            req.X,
		Y:            req.Y,
		Comment:      req.Comment,
	}

	created, err := h.annotations.CreateAnnotation(r.Context(), annotation)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAnnotationResponse(created))
}

func (h *SubmissionHandler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErr(w, err)
		return
	}

	annotations, err := h.annotations.ListAnnotations(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := make([]annotationResponse, 0, len(annotations))
	for _, a := range annotations {
		resp = append(resp, toAnnotationResponse(a))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"annotations": resp})
}
