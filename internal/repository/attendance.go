package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"redacao_service/internal/domain"
)

// AttendanceRepositoryInterface is what the attendance service depends
// on; the concrete type below is the Postgres implementation.
type AttendanceRepositoryInterface interface {
	Get(ctx context.Context, classID uuid.UUID, studentEmail string) (*domain.AttendanceRecord, error)
	InsertEntry(ctx context.Context, record *domain.AttendanceRecord) (bool, error)
	SetExit(ctx context.Context, classID uuid.UUID, studentEmail string, at time.Time) (bool, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]*domain.AttendanceRecord, error)
}

type AttendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Get(ctx context.Context, classID uuid.UUID, studentEmail string) (*domain.AttendanceRecord, error) {
	query := `
		SELECT id, class_id, student_email, student_name, entry_at, exit_at
		FROM attendance_records
		WHERE class_id = $1 AND student_email = $2
	`

	var rec domain.AttendanceRecord
	err := r.db.QueryRowContext(ctx, query, classID, studentEmail).Scan(
		&rec.ID,
		&rec.ClassID,
		&rec.StudentEmail,
		&rec.StudentName,
		&rec.EntryAt,
		&rec.ExitAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// InsertEntry records a check-in. The UNIQUE (class_id, student_email)
// constraint plus ON CONFLICT DO NOTHING makes a near-simultaneous
// double entry safe: exactly one write wins, the other reports false.
func (r *AttendanceRepository) InsertEntry(ctx context.Context, record *domain.AttendanceRecord) (bool, error) {
	query := `
		INSERT INTO attendance_records (id, class_id, student_email, student_name, entry_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (class_id, student_email) DO NOTHING
	`

	id, err := uuid.NewV7()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query,
		id,
		record.ClassID,
		record.StudentEmail,
		record.StudentName,
		record.EntryAt,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	record.ID = id
	return true, nil
}

// SetExit stamps the check-out. The WHERE clause enforces the state
// machine at the store level: only an entered, not yet exited record is
// updated, so a concurrent double exit writes once.
func (r *AttendanceRepository) SetExit(ctx context.Context, classID uuid.UUID, studentEmail string, at time.Time) (bool, error) {
	query := `
		UPDATE attendance_records
		SET exit_at = $1
		WHERE class_id = $2 AND student_email = $3 AND entry_at IS NOT NULL AND exit_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, at, classID, studentEmail)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *AttendanceRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT id, class_id, student_email, student_name, entry_at, exit_at
		FROM attendance_records
		WHERE class_id = $1
		ORDER BY student_name
	`

	rows, err := r.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		err := rows.Scan(
			&rec.ID,
			&rec.ClassID,
			&rec.StudentEmail,
			&rec.StudentName,
			&rec.EntryAt,
			&rec.ExitAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
