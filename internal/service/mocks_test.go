package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"redacao_service/internal/domain"
	"redacao_service/internal/repository"
)

type mockSubmissionStore struct {
	mock.Mock
}

func (m *mockSubmissionStore) Create(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *mockSubmissionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	var submission *domain.Submission
	if v := args.Get(0); v != nil {
		submission = v.(*domain.Submission)
	}
	return submission, args.Error(1)
}

func (m *mockSubmissionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSubmissionStore) ListByFilter(ctx context.Context, filter domain.SubmissionFilter) ([]*domain.Submission, error) {
	args := m.Called(ctx, filter)
	var submissions []*domain.Submission
	if v := args.Get(0); v != nil {
		submissions = v.([]*domain.Submission)
	}
	return submissions, args.Error(1)
}

func (m *mockSubmissionStore) ListCorrected(ctx context.Context, filter domain.SubmissionFilter) ([]*domain.Submission, error) {
	args := m.Called(ctx, filter)
	var submissions []*domain.Submission
	if v := args.Get(0); v != nil {
		submissions = v.([]*domain.Submission)
	}
	return submissions, args.Error(1)
}

func (m *mockSubmissionStore) AssignCorrector(ctx context.Context, id uuid.UUID, slot int, correctorID uuid.UUID) error {
	args := m.Called(ctx, id, slot, correctorID)
	return args.Error(0)
}

func (m *mockSubmissionStore) RecordEvaluation(ctx context.Context, id uuid.UUID, slot int, scores domain.CompetencyScores, total int) error {
	args := m.Called(ctx, id, slot, scores, total)
	return args.Error(0)
}

func (m *mockSubmissionStore) SetCorrected(ctx context.Context, id uuid.UUID, corrected bool) error {
	args := m.Called(ctx, id, corrected)
	return args.Error(0)
}

type mockCorrectorStore struct {
	mock.Mock
}

func (m *mockCorrectorStore) Create(ctx context.Context, corrector *domain.Corrector) error {
	args := m.Called(ctx, corrector)
	return args.Error(0)
}

func (m *mockCorrectorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Corrector, error) {
	args := m.Called(ctx, id)
	var corrector *domain.Corrector
	if v := args.Get(0); v != nil {
		corrector = v.(*domain.Corrector)
	}
	return corrector, args.Error(1)
}

func (m *mockCorrectorStore) GetByEmail(ctx context.Context, email string) (*domain.Corrector, error) {
	args := m.Called(ctx, email)
	var corrector *domain.Corrector
	if v := args.Get(0); v != nil {
		corrector = v.(*domain.Corrector)
	}
	return corrector, args.Error(1)
}

func (m *mockCorrectorStore) Update(ctx context.Context, corrector *domain.Corrector) error {
	args := m.Called(ctx, corrector)
	return args.Error(0)
}

func (m *mockCorrectorStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCorrectorStore) List(ctx context.Context, onlyVisible bool) ([]*domain.Corrector, error) {
	args := m.Called(ctx, onlyVisible)
	var correctors []*domain.Corrector
	if v := args.Get(0); v != nil {
		correctors = v.([]*domain.Corrector)
	}
	return correctors, args.Error(1)
}

type mockLiveClassStore struct {
	mock.Mock
}

func (m *mockLiveClassStore) Create(ctx context.Context, class *domain.LiveClass) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *mockLiveClassStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.LiveClass, error) {
	args := m.Called(ctx, id)
	var class *domain.LiveClass
	if v := args.Get(0); v != nil {
		class = v.(*domain.LiveClass)
	}
	return class, args.Error(1)
}

func (m *mockLiveClassStore) Update(ctx context.Context, class *domain.LiveClass) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *mockLiveClassStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLiveClassStore) List(ctx context.Context, activeOnly bool) ([]*domain.LiveClass, error) {
	args := m.Called(ctx, activeOnly)
	var classes []*domain.LiveClass
	if v := args.Get(0); v != nil {
		classes = v.([]*domain.LiveClass)
	}
	return classes, args.Error(1)
}

func (m *mockLiveClassStore) ListAroundDate(ctx context.Context, date string) ([]*domain.LiveClass, error) {
	args := m.Called(ctx, date)
	var classes []*domain.LiveClass
	if v := args.Get(0); v != nil {
		classes = v.([]*domain.LiveClass)
	}
	return classes, args.Error(1)
}

type mockStudentStore struct {
	mock.Mock
}

func (m *mockStudentStore) Create(ctx context.Context, student *repository.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *mockStudentStore) GetByEmail(ctx context.Context, email string) (*repository.Student, error) {
	args := m.Called(ctx, email)
	var student *repository.Student
	if v := args.Get(0); v != nil {
		student = v.(*repository.Student)
	}
	return student, args.Error(1)
}

func (m *mockStudentStore) Roster(ctx context.Context, classCodes []string) ([]domain.RosterStudent, error) {
	args := m.Called(ctx, classCodes)
	var roster []domain.RosterStudent
	if v := args.Get(0); v != nil {
		roster = v.([]domain.RosterStudent)
	}
	return roster, args.Error(1)
}

type mockAnnotationStore struct {
	mock.Mock
}

func (m *mockAnnotationStore) Create(ctx context.Context, annotation *domain.Annotation) error {
	args := m.Called(ctx, annotation)
	return args.Error(0)
}

func (m *mockAnnotationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Annotation, error) {
	args := m.Called(ctx, id)
	var annotation *domain.Annotation
	if v := args.Get(0); v != nil {
		annotation = v.(*domain.Annotation)
	}
	return annotation, args.Error(1)
}

func (m *mockAnnotationStore) Update(ctx context.Context, annotation *domain.Annotation) error {
	args := m.Called(ctx, annotation)
	return args.Error(0)
}

func (m *mockAnnotationStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAnnotationStore) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]*domain.Annotation, error) {
	args := m.Called(ctx, submissionID)
	var annotations []*domain.Annotation
	if v := args.Get(0); v != nil {
		annotations = v.([]*domain.Annotation)
	}
	return annotations, args.Error(1)
}

// fakeProducer records emitted events in order. Setting err makes
// every publish fail with it.
type fakeProducer struct {
	mu     sync.Mutex
	err    error
	topics []string
	keys   []string
	events []interface{}
}

func (p *fakeProducer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	p.events = append(p.events, payload)
	return nil
}

// fakeCache is an in-memory Cache; TTLs are ignored.
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	return data, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

func (c *fakeCache) Incr(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.Atoi(string(c.data[key]))
	c.data[key] = []byte(strconv.Itoa(n + 1))
}
