package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
)

// Kafka topics the service publishes to.
const (
	TopicGradingEvents    = "grading-events"
	TopicAttendanceEvents = "attendance-events"
	TopicAccessDenied     = "access-denied"
	TopicClassReminders   = "class-reminders"
)

type EventProducer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type SubmissionStore interface {
	Create(ctx context.Context, submission *domain.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByFilter(ctx context.Context, filter domain.SubmissionFilter) ([]*domain.Submission, error)
	ListCorrected(ctx context.Context, filter domain.SubmissionFilter) ([]*domain.Submission, error)
	AssignCorrector(ctx context.Context, id uuid.UUID, slot int, correctorID uuid.UUID) error
	RecordEvaluation(ctx context.Context, id uuid.UUID, slot int, scores domain.CompetencyScores, total int) error
	SetCorrected(ctx context.Context, id uuid.UUID, corrected bool) error
}

type CorrectorStore interface {
	Create(ctx context.Context, corrector *domain.Corrector) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Corrector, error)
	GetByEmail(ctx context.Context, email string) (*domain.Corrector, error)
	Update(ctx context.Context, corrector *domain.Corrector) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, onlyVisible bool) ([]*domain.Corrector, error)
}

type LiveClassStore interface {
	Create(ctx context.Context, class *domain.LiveClass) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LiveClass, error)
	Update(ctx context.Context, class *domain.LiveClass) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*domain.LiveClass, error)
	ListAroundDate(ctx context.Context, date string) ([]*domain.LiveClass, error)
}

type StudentStore interface {
	Create(ctx context.Context, student *repository.Student) error
	GetByEmail(ctx context.Context, email string) (*repository.Student, error)
	Roster(ctx context.Context, classCodes []string) ([]domain.RosterStudent, error)
}

type AnnotationStore interface {
	Create(ctx context.Context, annotation *domain.Annotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Annotation, error)
	Update(ctx context.Context, annotation *domain.Annotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]*domain.Annotation, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Incr(ctx context.Context, key string)
}
