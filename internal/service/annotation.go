package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"redacao_service/internal/ctxdata"
	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
)

type AnnotationService struct {
	annotationRepo AnnotationStore
	submissionRepo SubmissionStore
	correctorRepo  CorrectorStore
}

func NewAnnotationService(
	annotationRepo AnnotationStore,
	submissionRepo SubmissionStore,
	correctorRepo CorrectorStore,
) *AnnotationService {
	return &AnnotationService{
		annotationRepo: annotationRepo,
		submissionRepo: submissionRepo,
		correctorRepo:  correctorRepo,
	}
}

func (s *AnnotationService) CreateAnnotation(ctx context.Context, annotation *domain.Annotation) (*domain.Annotation, error) {
	corrector, err := s.callingCorrector(ctx)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetByID(ctx, annotation.SubmissionID)
	if err != nil {
		return nil, err
	}
	if slotOf(submission, corrector.ID) == 0 {
		return nil, ErrPermissionDenied
	}

	annotation.CorrectorID = corrector.ID
	if err := annotation.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.annotationRepo.Create(ctx, annotation); err != nil {
		return nil, err
	}

	return annotation, nil
}

func (s *AnnotationService) UpdateAnnotation(ctx context.Context, annotation *domain.Annotation) error {
	corrector, err := s.callingCorrector(ctx)
	if err != nil {
		return err
	}

	existing, err := s.annotationRepo.GetByID(ctx, annotation.ID)
	if err != nil {
		return err
	}
	if existing.CorrectorID != corrector.ID {
		return ErrPermissionDenied
	}

	annotation.CorrectorID = corrector.ID
	annotation.SubmissionID = existing.SubmissionID
	if err := annotation.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.annotationRepo.Update(ctx, annotation)
}

func (s *AnnotationService) DeleteAnnotation(ctx context.Context, id uuid.UUID) error {
	corrector, err := s.callingCorrector(ctx)
	if err != nil {
		return err
	}

	existing, err := s.annotationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CorrectorID != corrector.ID {
		return ErrPermissionDenied
	}

	return s.annotationRepo.Delete(ctx, id)
}

func (s *AnnotationService) ListAnnotations(ctx context.Context, submissionID uuid.UUID) ([]*domain.Annotation, error) {
	role, ok := ctxdata.GetUserRole(ctx)
	if !ok || (role != string(domain.UserRoleAdmin) && role != string(domain.UserRoleCorrector)) {
		return nil, ErrPermissionDenied
	}

	return s.annotationRepo.ListBySubmission(ctx, submissionID)
}

func (s *AnnotationService) callingCorrector(ctx context.Context) (*domain.Corrector, error) {
	email, ok := ctxdata.GetUserEmail(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	corrector, err := s.correctorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}
	return corrector, nil
}
