package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"redacao_service/internal/domain"
)

type AnnotationRepository struct {
	db *sql.DB
}

func NewAnnotationRepository(db *sql.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

func (r *AnnotationRepository) Create(ctx context.Context, annotation *domain.Annotation) error {
	query := `
		INSERT INTO annotations (id, submission_id, corrector_id, competency, x, y, comment, created_at, edited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		id,
		annotation.SubmissionID,
		annotation.CorrectorID,
		annotation.Competency,
		annotation.X,
		annotation.Y,
		annotation.Comment,
		now,
		now,
	)
	if err != nil {
		return err
	}

	annotation.ID = id
	return nil
}

func (r *AnnotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Annotation, error) {
	query := `
		SELECT id, submission_id, corrector_id, competency, x, y, comment, created_at, edited_at
		FROM annotations
		WHERE id = $1
	`

	var a domain.Annotation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.SubmissionID,
		&a.CorrectorID,
		&a.Competency,
		&a.X,
		&a.Y,
		&a.Comment,
		&a.CreatedAt,
		&a.EditedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *AnnotationRepository) Update(ctx context.Context, annotation *domain.Annotation) error {
	query := `
		UPDATE annotations
		SET competency = $1, x = $2, y = $3, comment = $4, edited_at = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		annotation.Competency,
		annotation.X,
		annotation.Y,
		annotation.Comment,
		time.Now(),
		annotation.ID,
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

func (r *AnnotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM annotations WHERE id = $1`, id)
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

func (r *AnnotationRepository) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]*domain.Annotation, error) {
	query := `
		SELECT id, submission_id, corrector_id, competency, x, y, comment, created_at, edited_at
		FROM annotations
		WHERE submission_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var annotations []*domain.Annotation
	for rows.Next() {
		var a domain.Annotation
		err := rows.Scan(
			&a.ID,
			&a.SubmissionID,
			&a.CorrectorID,
			&a.Competency,
			&a.X,
			&a.Y,
			&a.Comment,
			&a.CreatedAt,
			&a.EditedAt,
		)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, &a)
	}

	return annotations, rows.Err()
}
