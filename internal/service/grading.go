package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"redacao_service/internal/ctxdata"
	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
	"redacao_service/pkg/logger"
)

type GradingService struct {
	submissionRepo SubmissionStore
	correctorRepo  CorrectorStore
	producer       EventProducer
	cache          Cache
	log            *logger.Logger
	threshold      int
}

func NewGradingService(
	submissionRepo SubmissionStore,
	correctorRepo CorrectorStore,
	producer EventProducer,
	cache Cache,
	log *logger.Logger,
	divergenceThreshold int,
) *GradingService {
	return &GradingService{
		submissionRepo: submissionRepo,
		correctorRepo:  correctorRepo,
		producer:       producer,
		cache:          cache,
		log:            log,
		threshold:      divergenceThreshold,
	}
}

// AssignCorrector puts a corrector into the first free slot of a
// submission. At most two correctors, always distinct.
func (s *GradingService) AssignCorrector(ctx context.Context, submissionID, correctorID uuid.UUID) error {
	role, ok := ctxdata.GetUserRole(ctx)
	if !ok || role != string(domain.UserRoleAdmin) {
		return ErrPermissionDenied
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}

	corrector, err := s.correctorRepo.GetByID(ctx, correctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: corrector not found", ErrValidation)
		}
		return err
	}

	if !corrector.Active || !corrector.Visible {
		return ErrCorrectorUnavailable
	}
	if submission.ClassCode != nil && !corrector.AuthorizedFor(*submission.ClassCode) {
		return ErrCorrectorUnavailable
	}

	if alreadyAssigned(submission, correctorID) {
		return ErrCorrectorAlreadySelected
	}

	slot := 0
	switch {
	case submission.Corrector1 == nil:
		slot = 1
	case submission.Corrector2 == nil:
		slot = 2
	default:
		return ErrMaxCorrectors
	}

	return s.submissionRepo.AssignCorrector(ctx, submissionID, slot, correctorID)
}

// RecordScores stores the calling corrector's five competency marks and
// finishes their evaluation. When grading completes for the category,
// the submission is flagged corrected and an event goes out.
func (s *GradingService) RecordScores(ctx context.Context, submissionID uuid.UUID, scores domain.CompetencyScores) error {
	email, ok := ctxdata.GetUserEmail(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	corrector, err := s.correctorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPermissionDenied
		}
		return err
	}

	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}

	slot := slotOf(submission, corrector.ID)
	if slot == 0 {
		return ErrPermissionDenied
	}

	if err := scores.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	total := scores.Total()
	if err := s.submissionRepo.RecordEvaluation(ctx, submissionID, slot, scores, total); err != nil {
		return err
	}

	submission, err = s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}

	if submission.FullyGraded() && !submission.Corrected {
		if err := s.submissionRepo.SetCorrected(ctx, submissionID, true); err != nil {
			return err
		}
		submission.Corrected = true
		s.cache.Incr(ctx, leaderboardGenKey)
	}

	event := map[string]interface{}{
		"submission_id": submissionID,
		"corrector_id":  corrector.ID,
		"total":         total,
		"corrected":     submission.Corrected,
		"review_status": submission.ReviewStatus(s.threshold),
	}
	// delivery is best effort; the grades are already persisted
	if err := s.producer.Publish(ctx, TopicGradingEvents, submissionID.String(), event); err != nil {
		s.log.Errorf("Failed to publish grading event for submission %s: %v", submissionID, err)
	}

	return nil
}

func alreadyAssigned(submission *domain.Submission, correctorID uuid.UUID) bool {
	return slotOf(submission, correctorID) != 0
}

func slotOf(submission *domain.Submission, correctorID uuid.UUID) int {
	if submission.Corrector1 != nil && submission.Corrector1.CorrectorID == correctorID {
		return 1
	}
	if submission.Corrector2 != nil && submission.Corrector2.CorrectorID == correctorID {
		return 2
	}
	return 0
}
