package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"redacao_service/internal/ctxdata"
	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
	"redacao_service/internal/repository/mocks"
	"redacao_service/pkg/logger"
)

type attendanceFixture struct {
	svc        *AttendanceService
	attendance *mocks.MockAttendanceRepository
	classes    *mockLiveClassStore
	students   *mockStudentStore
	producer   *fakeProducer
	loc        *time.Location
	class      *domain.LiveClass
	classStart time.Time
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	f := &attendanceFixture{
		attendance: mocks.NewMockAttendanceRepository(ctrl),
		classes:    &mockLiveClassStore{},
		students:   &mockStudentStore{},
		producer:   &fakeProducer{},
		loc:        loc,
		class: &domain.LiveClass{
			ID:             uuid.New(),
			Title:          "Aula ao vivo",
			Date:           "2025-03-10",
			StartTime:      "09:00",
			EndTime:        "10:00",
			VisitorAllowed: true,
			Active:         true,
			IsLiveFormat:   true,
		},
	}
	f.classStart = time.Date(2025, 3, 10, 9, 0, 0, 0, loc)

	f.svc = NewAttendanceService(f.attendance, f.classes, f.students, f.producer, logger.NewNop(), loc)
	return f
}

func (f *attendanceFixture) at(t time.Time) {
	f.svc.now = func() time.Time { return t }
}

func studentCtx(email string) context.Context {
	ctx := ctxdata.WithUserEmail(context.Background(), email)
	return ctxdata.WithUserRole(ctx, string(domain.UserRoleStudent))
}

func TestRecordEntry(t *testing.T) {
	email := "ana@example.com"

	t.Run("Unauthenticated", func(t *testing.T) {
		f := newAttendanceFixture(t)

		result, err := f.svc.RecordEntry(context.Background(), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultNotAuthenticated, result)
	})

	t.Run("First Entry", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.at(f.classStart.Add(5 * time.Minute))

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.students.On("GetByEmail", mock.Anything, email).Return(&repository.Student{Name: "Ana", Email: email, ClassCode: "turma-a"}, nil)
		f.attendance.EXPECT().Get(gomock.Any(), f.class.ID, email).Return(nil, repository.ErrNotFound)
		f.attendance.EXPECT().InsertEntry(gomock.Any(), gomock.Any()).Return(true, nil)

		result, err := f.svc.RecordEntry(studentCtx(email), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultEntryOK, result)
		require.Equal(t, []string{TopicAttendanceEvents}, f.producer.topics)
	})

	t.Run("Repeated Entry Is No-Op", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.at(f.classStart.Add(5 * time.Minute))
		entry := f.classStart

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.students.On("GetByEmail", mock.Anything, email).Return(&repository.Student{Name: "Ana", Email: email}, nil)
		f.attendance.EXPECT().Get(gomock.Any(), f.class.ID, email).Return(&domain.AttendanceRecord{
			ClassID:      f.class.ID,
			StudentEmail: email,
			EntryAt:      &entry,
		}, nil)

		result, err := f.svc.RecordEntry(studentCtx(email), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultEntryAlreadyRecorded, result)
		require.Empty(t, f.producer.topics)
	})

	t.Run("Lost Race Reports Already Recorded", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.at(f.classStart)

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.students.On("GetByEmail", mock.Anything, email).Return(&repository.Student{Name: "Ana", Email: email}, nil)
		f.attendance.EXPECT().Get(gomock.Any(), f.class.ID, email).Return(nil, repository.ErrNotFound)
		f.attendance.EXPECT().InsertEntry(gomock.Any(), gomock.Any()).Return(false, nil)

		result, err := f.svc.RecordEntry(studentCtx(email), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultEntryAlreadyRecorded, result)
	})

	t.Run("Publish Failure Is Logged Not Returned", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.at(f.classStart.Add(5 * time.Minute))
		f.producer.err = errors.New("broker unreachable")

		core, logs := observer.New(zapcore.ErrorLevel)
		f.svc.log = &logger.Logger{ZapLogger: zap.New(core)}

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.students.On("GetByEmail", mock.Anything, email).Return(&repository.Student{Name: "Ana", Email: email}, nil)
		f.attendance.EXPECT().Get(gomock.Any(), f.class.ID, email).Return(nil, repository.ErrNotFound)
		f.attendance.EXPECT().InsertEntry(gomock.Any(), gomock.Any()).Return(true, nil)

		result, err := f.svc.RecordEntry(studentCtx(email), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultEntryOK, result)
		require.Equal(t, 1, logs.Len())
		require.Contains(t, logs.All()[0].Message, "Failed to publish attendance event")
	})

	t.Run("Unauthorized Class Denied", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.at(f.classStart)
		f.class.VisitorAllowed = false
		f.class.AuthorizedClasses = []string{"turma-a"}

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.students.On("GetByEmail", mock.Anything, email).Return(&repository.Student{Name: "Ana", Email: email, ClassCode: "turma-b"}, nil)

		_, err := f.svc.RecordEntry(studentCtx(email), f.class.ID)
		require.ErrorIs(t, err, ErrPermissionDenied)
		require.Equal(t, []string{TopicAccessDenied}, f.producer.topics)
	})
}

func TestRecordExit(t *testing.T) {
	email := "ana@example.com"

	t.Run("Exit Without Entry Rejected Before Class Start", func(t *testing.T) {
		// 08:55 exit for a 09:00 class with no entry: "must enter
		// first" wins over the time guard.
		f := newAttendanceFixture(t)
		f.at(f.classStart.Add(-5 * time.Minute))

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.attendance.EXPECT().Get(gomock.Any(), f.class.ID, email).Return(nil, repository.ErrNotFound)

		result, err := f.svc.RecordExit(studentCtx(email), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultNeedsEntry, result)
	})

	t.Run("Exit Before Class Start Rejected", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.at(f.classStart.Add(-time.Minute))
		entry := f.classStart.Add(-10 * time.Minute)

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.attendance.EXPECT().Get(gomock.Any(), f.class.ID, email).Return(&domain.AttendanceRecord{
			ClassID:      f.class.ID,
			StudentEmail: email,
			StudentName:  "Ana",
			EntryAt:      &entry,
		}, nil)

		result, err := f.svc.RecordExit(studentCtx(email), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultExitBeforeStart, result)
	})

	t.Run("Exit After Start", func(t *testing.T) {
		f := newAttendanceFixture(t)
		now := f.classStart.Add(50 * time.Minute)
		f.at(now)
		entry := f.classStart

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.attendance.EXPECT().Get(gomock.Any(), f.class.ID, email).Return(&domain.AttendanceRecord{
			ClassID:      f.class.ID,
			StudentEmail: email,
			StudentName:  "Ana",
			EntryAt:      &entry,
		}, nil)
		f.attendance.EXPECT().SetExit(gomock.Any(), f.class.ID, email, now).Return(true, nil)

		result, err := f.svc.RecordExit(studentCtx(email), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultExitOK, result)
		require.Equal(t, []string{TopicAttendanceEvents}, f.producer.topics)
	})

	t.Run("Repeated Exit Is No-Op", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.at(f.classStart.Add(2 * time.Hour))
		entry := f.classStart
		exit := f.classStart.Add(time.Hour)

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.attendance.EXPECT().Get(gomock.Any(), f.class.ID, email).Return(&domain.AttendanceRecord{
			ClassID:      f.class.ID,
			StudentEmail: email,
			EntryAt:      &entry,
			ExitAt:       &exit,
		}, nil)

		result, err := f.svc.RecordExit(studentCtx(email), f.class.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResultExitAlreadyRecorded, result)
	})
}

func TestAttendanceReport(t *testing.T) {
	t.Run("Requires Admin", func(t *testing.T) {
		f := newAttendanceFixture(t)

		_, err := f.svc.Report(studentCtx("ana@example.com"), f.class.ID)
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Joins Roster Against Records", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.class.AuthorizedClasses = []string{"turma-a"}
		entry := f.classStart
		exit := f.classStart.Add(50 * time.Minute)

		f.classes.On("GetByID", mock.Anything, f.class.ID).Return(f.class, nil)
		f.students.On("Roster", mock.Anything, []string{"turma-a"}).Return([]domain.RosterStudent{
			{Email: "ana@example.com", Name: "Ana"},
			{Email: "bruno@example.com", Name: "Bruno"},
		}, nil)
		f.attendance.EXPECT().ListByClass(gomock.Any(), f.class.ID).Return([]*domain.AttendanceRecord{
			{ClassID: f.class.ID, StudentEmail: "ana@example.com", EntryAt: &entry, ExitAt: &exit},
		}, nil)

		rows, err := f.svc.Report(adminCtx(), f.class.ID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, domain.AttendanceComplete, rows[0].Status)
		require.Equal(t, domain.AttendanceAbsent, rows[1].Status)
	})
}
