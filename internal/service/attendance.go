package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"redacao_service/internal/ctxdata"
	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
	"redacao_service/pkg/logger"
)

type AttendanceService struct {
	attendanceRepo repository.AttendanceRepositoryInterface
	classRepo      LiveClassStore
	studentRepo    StudentStore
	producer       EventProducer
	log            *logger.Logger
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepositoryInterface,
	classRepo LiveClassStore,
	studentRepo StudentStore,
	producer EventProducer,
	log *logger.Logger,
	loc *time.Location,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
		studentRepo:    studentRepo,
		producer:       producer,
		log:            log,
		loc:            loc,
		now:            time.Now,
	}
}

// RecordEntry checks the caller into a class. Repeats are a no-op with
// an "already recorded" result, never an error.
func (s *AttendanceService) RecordEntry(ctx context.Context, classID uuid.UUID) (domain.AttendanceResult, error) {
	email, ok := ctxdata.GetUserEmail(ctx)
	if !ok || email == "" {
		return domain.ResultNotAuthenticated, nil
	}

	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return "", err
	}

	name, classCode, isVisitor, err := s.resolveStudent(ctx, email)
	if err != nil {
		return "", err
	}

	if !class.AuthorizedFor(classCode, isVisitor) {
		s.emitAccessDenied(ctx, class.ID, email)
		return "", ErrPermissionDenied
	}

	existing, err := s.attendanceRepo.Get(ctx, classID, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	result := domain.EntryResult(existing)
	if result != domain.ResultEntryOK {
		return result, nil
	}

	entryAt := s.now()
	record := &domain.AttendanceRecord{
		ClassID:      classID,
		StudentEmail: email,
		StudentName:  name,
		EntryAt:      &entryAt,
	}

	inserted, err := s.attendanceRepo.InsertEntry(ctx, record)
	if err != nil {
		return "", err
	}
	if !inserted {
		// lost a race against a concurrent entry; same outcome
		return domain.ResultEntryAlreadyRecorded, nil
	}

	s.emitAttendance(ctx, class.ID, email, name, "entrada", entryAt)
	return domain.ResultEntryOK, nil
}

// RecordExit checks the caller out. Requires a prior entry and is only
// accepted once the class has started.
func (s *AttendanceService) RecordExit(ctx context.Context, classID uuid.UUID) (domain.AttendanceResult, error) {
	email, ok := ctxdata.GetUserEmail(ctx)
	if !ok || email == "" {
		return domain.ResultNotAuthenticated, nil
	}

	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return "", err
	}

	start, _, err := class.Window(s.loc)
	if err != nil {
		return "", err
	}

	existing, err := s.attendanceRepo.Get(ctx, classID, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	now := s.now()
	result := domain.ExitResult(existing, start, now)
	if result != domain.ResultExitOK {
		return result, nil
	}

	updated, err := s.attendanceRepo.SetExit(ctx, classID, email, now)
	if err != nil {
		return "", err
	}
	if !updated {
		return domain.ResultExitAlreadyRecorded, nil
	}

	s.emitAttendance(ctx, class.ID, email, existing.StudentName, "saida", now)
	return domain.ResultExitOK, nil
}

// Report aggregates a class's attendance against its roster.
func (s *AttendanceService) Report(ctx context.Context, classID uuid.UUID) ([]domain.AttendanceReportRow, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	roster, err := s.studentRepo.Roster(ctx, class.AuthorizedClasses)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	return domain.BuildAttendanceReport(roster, records), nil
}

func (s *AttendanceService) resolveStudent(ctx context.Context, email string) (name, classCode string, isVisitor bool, err error) {
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// unknown emails attend as visitors
			return email, "", true, nil
		}
		return "", "", false, err
	}
	return student.Name, student.ClassCode, student.IsVisitor, nil
}

func (s *AttendanceService) emitAttendance(ctx context.Context, classID uuid.UUID, email, name, recordType string, at time.Time) {
	event := map[string]interface{}{
		"class_id":      classID,
		"student_email": email,
		"student_name":  name,
		"record_type":   recordType,
		"recorded_at":   at,
	}
	// delivery is best effort; the attendance record is already persisted
	key := classID.String() + ":" + email
	if err := s.producer.Publish(ctx, TopicAttendanceEvents, key, event); err != nil {
		s.log.Errorf("Failed to publish attendance event for class %s: %v", classID, err)
	}
}

func (s *AttendanceService) emitAccessDenied(ctx context.Context, classID uuid.UUID, email string) {
	event := map[string]interface{}{
		"class_id":      classID,
		"student_email": email,
		"denied_at":     s.now(),
	}
	key := classID.String() + ":" + email
	if err := s.producer.Publish(ctx, TopicAccessDenied, key, event); err != nil {
		s.log.Errorf("Failed to publish access denial for class %s: %v", classID, err)
	}
}
