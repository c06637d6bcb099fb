package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
)

func TestCreateAnnotation(t *testing.T) {
	submissionID := uuid.New()

	newAnnotation := func() *domain.Annotation {
		return &domain.Annotation{
			SubmissionID: submissionID,
			Competency:   2,
			X:            0.4,
			Y:            0.7,
			Comment:      "Conjunção mal empregada",
		}
	}

	t.Run("Assigned Corrector Annotates", func(t *testing.T) {
		corrector := availableCorrector("c@example.com")
		annotations := &mockAnnotationStore{}
		subs := &mockSubmissionStore{}
		correctors := &mockCorrectorStore{}

		correctors.On("GetByEmail", mock.Anything, corrector.Email).Return(corrector, nil)
		subs.On("GetByID", mock.Anything, submissionID).Return(&domain.Submission{
			ID:         submissionID,
			Corrector1: &domain.Evaluation{CorrectorID: corrector.ID, Status: domain.EvaluationPending},
		}, nil)
		annotations.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := NewAnnotationService(annotations, subs, correctors)

		created, err := svc.CreateAnnotation(correctorCtx(corrector.Email), newAnnotation())
		require.NoError(t, err)
		require.Equal(t, corrector.ID, created.CorrectorID)
		annotations.AssertExpectations(t)
	})

	t.Run("Unassigned Corrector Denied", func(t *testing.T) {
		corrector := availableCorrector("c@example.com")
		subs := &mockSubmissionStore{}
		correctors := &mockCorrectorStore{}

		correctors.On("GetByEmail", mock.Anything, corrector.Email).Return(corrector, nil)
		subs.On("GetByID", mock.Anything, submissionID).Return(&domain.Submission{ID: submissionID}, nil)

		svc := NewAnnotationService(&mockAnnotationStore{}, subs, correctors)

		_, err := svc.CreateAnnotation(correctorCtx(corrector.Email), newAnnotation())
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Unknown Caller Denied", func(t *testing.T) {
		correctors := &mockCorrectorStore{}
		correctors.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

		svc := NewAnnotationService(&mockAnnotationStore{}, &mockSubmissionStore{}, correctors)

		_, err := svc.CreateAnnotation(correctorCtx("ghost@example.com"), newAnnotation())
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Rejects Bad Competency Tag", func(t *testing.T) {
		corrector := availableCorrector("c@example.com")
		subs := &mockSubmissionStore{}
		correctors := &mockCorrectorStore{}

		correctors.On("GetByEmail", mock.Anything, corrector.Email).Return(corrector, nil)
		subs.On("GetByID", mock.Anything, submissionID).Return(&domain.Submission{
			ID:         submissionID,
			Corrector1: &domain.Evaluation{CorrectorID: corrector.ID, Status: domain.EvaluationPending},
		}, nil)

		svc := NewAnnotationService(&mockAnnotationStore{}, subs, correctors)

		annotation := newAnnotation()
		annotation.Competency = 6
		_, err := svc.CreateAnnotation(correctorCtx(corrector.Email), annotation)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateAnnotation(t *testing.T) {
	annotationID := uuid.New()
	submissionID := uuid.New()

	t.Run("Owner Updates", func(t *testing.T) {
		corrector := availableCorrector("c@example.com")
		annotations := &mockAnnotationStore{}
		correctors := &mockCorrectorStore{}

		correctors.On("GetByEmail", mock.Anything, corrector.Email).Return(corrector, nil)
		annotations.On("GetByID", mock.Anything, annotationID).Return(&domain.Annotation{
			ID:           annotationID,
			SubmissionID: submissionID,
			CorrectorID:  corrector.ID,
			Competency:   1,
			Comment:      "antigo",
		}, nil)
		annotations.On("Update", mock.Anything, mock.Anything).Return(nil)

		svc := NewAnnotationService(annotations, &mockSubmissionStore{}, correctors)

		err := svc.UpdateAnnotation(correctorCtx(corrector.Email), &domain.Annotation{
			ID:         annotationID,
			Competency: 3,
			Comment:    "novo",
		})
		require.NoError(t, err)
		annotations.AssertExpectations(t)
	})

	t.Run("Non-Owner Denied", func(t *testing.T) {
		corrector := availableCorrector("c@example.com")
		annotations := &mockAnnotationStore{}
		correctors := &mockCorrectorStore{}

		correctors.On("GetByEmail", mock.Anything, corrector.Email).Return(corrector, nil)
		annotations.On("GetByID", mock.Anything, annotationID).Return(&domain.Annotation{
			ID:          annotationID,
			CorrectorID: uuid.New(),
		}, nil)

		svc := NewAnnotationService(annotations, &mockSubmissionStore{}, correctors)

		err := svc.UpdateAnnotation(correctorCtx(corrector.Email), &domain.Annotation{
			ID:         annotationID,
			Competency: 3,
			Comment:    "novo",
		})
		require.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestDeleteAnnotation(t *testing.T) {
	annotationID := uuid.New()

	t.Run("Owner Deletes", func(t *testing.T) {
		corrector := availableCorrector("c@example.com")
		annotations := &mockAnnotationStore{}
		correctors := &mockCorrectorStore{}

		correctors.On("GetByEmail", mock.Anything, corrector.Email).Return(corrector, nil)
		annotations.On("GetByID", mock.Anything, annotationID).Return(&domain.Annotation{
			ID:          annotationID,
			CorrectorID: corrector.ID,
		}, nil)
		annotations.On("Delete", mock.Anything, annotationID).Return(nil)

		svc := NewAnnotationService(annotations, &mockSubmissionStore{}, correctors)

		require.NoError(t, svc.DeleteAnnotation(correctorCtx(corrector.Email), annotationID))
		annotations.AssertExpectations(t)
	})

	t.Run("Non-Owner Denied", func(t *testing.T) {
		corrector := availableCorrector("c@example.com")
		annotations := &mockAnnotationStore{}
		correctors := &mockCorrectorStore{}

		correctors.On("GetByEmail", mock.Anything, corrector.Email).Return(corrector, nil)
		annotations.On("GetByID", mock.Anything, annotationID).Return(&domain.Annotation{
			ID:          annotationID,
			CorrectorID: uuid.New(),
		}, nil)

		svc := NewAnnotationService(annotations, &mockSubmissionStore{}, correctors)

		err := svc.DeleteAnnotation(correctorCtx(corrector.Email), annotationID)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestListAnnotations(t *testing.T) {
	submissionID := uuid.New()

	t.Run("Students Denied", func(t *testing.T) {
		svc := NewAnnotationService(&mockAnnotationStore{}, &mockSubmissionStore{}, &mockCorrectorStore{})

		_, err := svc.ListAnnotations(studentCtx("ana@example.com"), submissionID)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Admin Lists", func(t *testing.T) {
		annotations := &mockAnnotationStore{}
		annotations.On("ListBySubmission", mock.Anything, submissionID).Return([]*domain.Annotation{
			{ID: uuid.New(), SubmissionID: submissionID},
		}, nil)

		svc := NewAnnotationService(annotations, &mockSubmissionStore{}, &mockCorrectorStore{})

		list, err := svc.ListAnnotations(adminCtx(), submissionID)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}
