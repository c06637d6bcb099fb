package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"redacao_service/internal/ctxdata"
	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
	"redacao_service/pkg/logger"
)

// CurrentClass is one row of the student-facing active-class banner: a
// displayable class with its status label resolved at request time.
type CurrentClass struct {
	Class    *domain.LiveClass
	Status   domain.ClassStatus
	StartsAt time.Time
	EndsAt   time.Time
}

type LiveClassService struct {
	classRepo   LiveClassStore
	studentRepo StudentStore
	log         *logger.Logger
	loc         *time.Location
	now         func() time.Time
}

func NewLiveClassService(classRepo LiveClassStore, studentRepo StudentStore, log *logger.Logger, loc *time.Location) *LiveClassService {
	return &LiveClassService{
		classRepo:   classRepo,
		studentRepo: studentRepo,
		log:         log,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *LiveClassService) CreateClass(ctx context.Context, class *domain.LiveClass) (*domain.LiveClass, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := class.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

func (s *LiveClassService) UpdateClass(ctx context.Context, class *domain.LiveClass) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := class.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.classRepo.Update(ctx, class)
}

func (s *LiveClassService) DeleteClass(ctx context.Context, id uuid.UUID) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	return s.classRepo.Delete(ctx, id)
}

func (s *LiveClassService) GetClass(ctx context.Context, id uuid.UUID) (*domain.LiveClass, error) {
	return s.classRepo.GetByID(ctx, id)
}

func (s *LiveClassService) ListClasses(ctx context.Context, activeOnly bool) ([]*domain.LiveClass, error) {
	return s.classRepo.List(ctx, activeOnly)
}

// ListCurrent returns the classes the caller may see right now. A class
// is included while displayable (until end + grace); its status label
// is computed independently, so an ended class can still appear here.
func (s *LiveClassService) ListCurrent(ctx context.Context) ([]CurrentClass, error) {
	classCode := ""
	isVisitor := true

	if email, ok := ctxdata.GetUserEmail(ctx); ok {
		student, err := s.studentRepo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			classCode = student.ClassCode
			isVisitor = student.IsVisitor
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	now := s.now().In(s.loc)
	classes, err := s.classRepo.ListAroundDate(ctx, now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	var current []CurrentClass
	for _, class := range classes {
		if !class.AuthorizedFor(classCode, isVisitor) {
			continue
		}

		start, end, err := class.Window(s.loc)
		if err != nil {
			s.log.Errorf("Skipping class %s with invalid schedule: %v", class.ID, err)
			continue
		}
		if !domain.DisplayableAt(end, now) {
			continue
		}

		current = append(current, CurrentClass{
			Class:    class,
			Status:   domain.StatusAt(start, end, now),
			StartsAt: start,
			EndsAt:   end,
		})
	}

	return current, nil
}

func requireAdmin(ctx context.Context) error {
	role, ok := ctxdata.GetUserRole(ctx)
	if !ok || role != string(domain.UserRoleAdmin) {
		return ErrPermissionDenied
	}
	return nil
}
