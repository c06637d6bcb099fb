package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"redacao_service/internal/domain"
)

type Student struct {
	ID        uuid.UUID
	Name      string
	Email     string
	ClassCode string
	IsVisitor bool
	CreatedAt time.Time
}

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, student *Student) error {
	query := `
		INSERT INTO students (id, name, email, class_code, is_visitor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		id,
		student.Name,
		student.Email,
		student.ClassCode,
		student.IsVisitor,
		time.Now(),
	)
	if err != nil {
		return err
	}

	student.ID = id
	return nil
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*Student, error) {
	query := `
		SELECT id, name, email, class_code, is_visitor, created_at
		FROM students
		WHERE email = $1
	`

	var s Student
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.ClassCode,
		&s.IsVisitor,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &s, nil
}

// Roster lists the students of the given class codes for attendance
// reporting. An empty code list yields every non-visitor student.
func (r *StudentRepository) Roster(ctx context.Context, classCodes []string) ([]domain.RosterStudent, error) {
	query := `
		SELECT name, email
		FROM students
		WHERE is_visitor = false
	`
	var args []interface{}
	if len(classCodes) > 0 {
		query += " AND class_code = ANY($1)"
		args = append(args, pq.Array(classCodes))
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var roster []domain.RosterStudent
	for rows.Next() {
		var s domain.RosterStudent
		if err := rows.Scan(&s.Name, &s.Email); err != nil {
			return nil, err
		}
		roster = append(roster, s)
	}

	return roster, rows.Err()
}
