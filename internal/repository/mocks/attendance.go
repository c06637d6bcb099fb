package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"redacao_service/internal/domain"
)

type MockAttendanceRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAttendanceRepositoryMockRecorder
}

type MockAttendanceRepositoryMockRecorder struct {
	mock *MockAttendanceRepository
}

func NewMockAttendanceRepository(ctrl *gomock.Controller) *MockAttendanceRepository {
	mock := &MockAttendanceRepository{ctrl: ctrl}
	mock.recorder = &MockAttendanceRepositoryMockRecorder{mock}
	return mock
}

func (m *MockAttendanceRepository) EXPECT() *MockAttendanceRepositoryMockRecorder {
	return m.recorder
}

func (m *MockAttendanceRepository) Get(ctx context.Context, classID uuid.UUID, studentEmail string) (*domain.AttendanceRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, classID, studentEmail)
	ret0, _ := ret[0].(*domain.AttendanceRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAttendanceRepositoryMockRecorder) Get(ctx, classID, studentEmail interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockAttendanceRepository)(nil).Get), ctx, classID, studentEmail)
}

func (m *MockAttendanceRepository) InsertEntry(ctx context.Context, record *domain.AttendanceRecord) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertEntry", ctx, record)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAttendanceRepositoryMockRecorder) InsertEntry(ctx, record interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertEntry", reflect.TypeOf((*MockAttendanceRepository)(nil).InsertEntry), ctx, record)
}

func (m *MockAttendanceRepository) SetExit(ctx context.Context, classID uuid.UUID, studentEmail string, at time.Time) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetExit", ctx, classID, studentEmail, at)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAttendanceRepositoryMockRecorder) SetExit(ctx, classID, studentEmail, at interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetExit", reflect.TypeOf((*MockAttendanceRepository)(nil).SetExit), ctx, classID, studentEmail, at)
}

func (m *MockAttendanceRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]*domain.AttendanceRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByClass", ctx, classID)
	ret0, _ := ret[0].([]*domain.AttendanceRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAttendanceRepositoryMockRecorder) ListByClass(ctx, classID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByClass", reflect.TypeOf((*MockAttendanceRepository)(nil).ListByClass), ctx, classID)
}
