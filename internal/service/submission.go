package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"redacao_service/internal/ctxdata"
	"redacao_service/internal/domain"
)

// SubmissionView is the read model for one essay: the stored fields
// plus everything recomputed on read (consolidated grade, divergence,
// review status).
type SubmissionView struct {
	Submission *domain.Submission
	Grade      domain.ConsolidatedGrade
	Divergence *domain.Divergence
	Review     domain.ReviewStatus
}

type SubmissionService struct {
	submissionRepo SubmissionStore
	threshold      int
}

func NewSubmissionService(submissionRepo SubmissionStore, divergenceThreshold int) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		threshold:      divergenceThreshold,
	}
}

func (s *SubmissionService) CreateSubmission(ctx context.Context, submission *domain.Submission) (*domain.Submission, error) {
	if submission.StudentName == "" || submission.StudentEmail == "" {
		return nil, fmt.Errorf("%w: student name and email are required", ErrValidation)
	}
	if submission.Theme == "" || submission.Body == "" {
		return nil, fmt.Errorf("%w: theme and essay body are required", ErrValidation)
	}
	if !submission.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, submission.Category)
	}
	if submission.Category == domain.CategorySimulado && submission.ExamID == nil {
		return nil, fmt.Errorf("%w: simulated exam submission requires an exam id", ErrValidation)
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	return submission, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, id uuid.UUID) (*SubmissionView, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.view(submission), nil
}

func (s *SubmissionService) ListSubmissions(ctx context.Context, filter domain.SubmissionFilter) ([]*SubmissionView, error) {
	submissions, err := s.submissionRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]*SubmissionView, 0, len(submissions))
	for _, submission := range submissions {
		views = append(views, s.view(submission))
	}
	return views, nil
}

func (s *SubmissionService) DeleteSubmission(ctx context.Context, id uuid.UUID) error {
	role, ok := ctxdata.GetUserRole(ctx)
	if !ok || role != string(domain.UserRoleAdmin) {
		return ErrPermissionDenied
	}

	return s.submissionRepo.Delete(ctx, id)
}

func (s *SubmissionService) view(submission *domain.Submission) *SubmissionView {
	return &SubmissionView{
		Submission: submission,
		Grade:      domain.Consolidate(submission.Corrector1, submission.Corrector2),
		Divergence: domain.ComputeDivergence(submission.Corrector1, submission.Corrector2, s.threshold),
		Review:     submission.ReviewStatus(s.threshold),
	}
}
