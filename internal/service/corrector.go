package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
)

type CorrectorService struct {
	correctorRepo CorrectorStore
	studentRepo   StudentStore
}

func NewCorrectorService(correctorRepo CorrectorStore, studentRepo StudentStore) *CorrectorService {
	return &CorrectorService{
		correctorRepo: correctorRepo,
		studentRepo:   studentRepo,
	}
}

func (s *CorrectorService) CreateCorrector(ctx context.Context, corrector *domain.Corrector) (*domain.Corrector, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if corrector.Name == "" || corrector.Email == "" {
		return nil, fmt.Errorf("%w: corrector name and email are required", ErrValidation)
	}

	if err := s.correctorRepo.Create(ctx, corrector); err != nil {
		return nil, err
	}

	return corrector, nil
}

func (s *CorrectorService) UpdateCorrector(ctx context.Context, corrector *domain.Corrector) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if corrector.Name == "" || corrector.Email == "" {
		return fmt.Errorf("%w: corrector name and email are required", ErrValidation)
	}

	return s.correctorRepo.Update(ctx, corrector)
}

func (s *CorrectorService) DeleteCorrector(ctx context.Context, id uuid.UUID) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	return s.correctorRepo.Delete(ctx, id)
}

func (s *CorrectorService) GetCorrector(ctx context.Context, id uuid.UUID) (*domain.Corrector, error) {
	return s.correctorRepo.GetByID(ctx, id)
}

func (s *CorrectorService) ListCorrectors(ctx context.Context, onlyVisible bool) ([]*domain.Corrector, error) {
	return s.correctorRepo.List(ctx, onlyVisible)
}

func (s *CorrectorService) RegisterStudent(ctx context.Context, student *repository.Student) (*repository.Student, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if student.Name == "" || student.Email == "" {
		return nil, fmt.Errorf("%w: student name and email are required", ErrValidation)
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}
