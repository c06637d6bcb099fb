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

const liveClassColumns = `
	id, title, to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	meeting_link, authorized_classes, visitor_allowed, active, is_live_format, created_at, edited_at
`

type LiveClassRepository struct {
	db *sql.DB
}

func NewLiveClassRepository(db *sql.DB) *LiveClassRepository {
	return &LiveClassRepository{db: db}
}

func (r *LiveClassRepository) Create(ctx context.Context, class *domain.LiveClass) error {
	query := `
		INSERT INTO live_classes (id, title, date, start_time, end_time, meeting_link, authorized_classes, visitor_allowed, active, is_live_format, created_at, edited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		id,
		class.Title,
		class.Date,
		class.StartTime,
		class.EndTime,
		class.MeetingLink,
		pq.Array(class.AuthorizedClasses),
		class.VisitorAllowed,
		class.Active,
		class.IsLiveFormat,
		now,
		now,
	)

	if err != nil {
		return err
	}

	class.ID = id
	return nil
}

func (r *LiveClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LiveClass, error) {
	query := `SELECT ` + liveClassColumns + ` FROM live_classes WHERE id = $1`

	class, err := scanLiveClass(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return class, nil
}

func (r *LiveClassRepository) Update(ctx context.Context, class *domain.LiveClass) error {
	query := `
		UPDATE live_classes
		SET title = $1, date = $2, start_time = $3, end_time = $4, meeting_link = $5,
		    authorized_classes = $6, visitor_allowed = $7, active = $8, is_live_format = $9, edited_at = $10
		WHERE id = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		class.Title,
		class.Date,
		class.StartTime,
		class.EndTime,
		class.MeetingLink,
		pq.Array(class.AuthorizedClasses),
		class.VisitorAllowed,
		class.Active,
		class.IsLiveFormat,
		time.Now(),
		class.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *LiveClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM live_classes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *LiveClassRepository) List(ctx context.Context, activeOnly bool) ([]*domain.LiveClass, error) {
	query := `SELECT ` + liveClassColumns + ` FROM live_classes`
	if activeOnly {
		query += " WHERE active = true"
	}
	query += " ORDER BY date DESC, start_time DESC"

	return r.queryMany(ctx, query)
}

// ListAroundDate narrows the candidate set for the current-classes view
// to classes on the given day or the day before, so the grace window
// around midnight is not cut off.
func (r *LiveClassRepository) ListAroundDate(ctx context.Context, date string) ([]*domain.LiveClass, error) {
	query := `SELECT ` + liveClassColumns + `
		FROM live_classes
		WHERE active = true AND date BETWEEN ($1::date - INTERVAL '1 day') AND $1::date
		ORDER BY date, start_time
	`

	return r.queryMany(ctx, query, date)
}

func (r *LiveClassRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*domain.LiveClass, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var classes []*domain.LiveClass
	for rows.Next() {
		class, err := scanLiveClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

func scanLiveClass(row rowScanner) (*domain.LiveClass, error) {
	var c domain.LiveClass
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Date,
		&c.StartTime,
		&c.EndTime,
		&c.MeetingLink,
		pq.Array(&c.AuthorizedClasses),
		&c.VisitorAllowed,
		&c.Active,
		&c.IsLiveFormat,
		&c.CreatedAt,
		&c.EditedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
