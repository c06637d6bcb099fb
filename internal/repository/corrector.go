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

type CorrectorRepository struct {
	db *sql.DB
}

func NewCorrectorRepository(db *sql.DB) *CorrectorRepository {
	return &CorrectorRepository{db: db}
}

func (r *CorrectorRepository) Create(ctx context.Context, corrector *domain.Corrector) error {
	query := `
		INSERT INTO correctors (id, name, email, active, visible, class_codes, created_at, edited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		id,
		corrector.Name,
		corrector.Email,
		corrector.Active,
		corrector.Visible,
		pq.Array(corrector.ClassCodes),
		now,
		now,
	)

	if err != nil {
		return err
	}

	corrector.ID = id
	return nil
}

func (r *CorrectorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Corrector, error) {
	query := `
		SELECT id, name, email, active, visible, class_codes, created_at, edited_at
		FROM correctors
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *CorrectorRepository) GetByEmail(ctx context.Context, email string) (*domain.Corrector, error) {
	query := `
		SELECT id, name, email, active, visible, class_codes, created_at, edited_at
		FROM correctors
		WHERE email = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *CorrectorRepository) Update(ctx context.Context, corrector *domain.Corrector) error {
	query := `
		UPDATE correctors
		SET name = $1, email = $2, active = $3, visible = $4, class_codes = $5, edited_at = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		corrector.Name,
		corrector.Email,
		corrector.Active,
		corrector.Visible,
		pq.Array(corrector.ClassCodes),
		time.Now(),
		corrector.ID,
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

func (r *CorrectorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM correctors WHERE id = $1`, id)
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

func (r *CorrectorRepository) List(ctx context.Context, onlyVisible bool) ([]*domain.Corrector, error) {
	query := `
		SELECT id, name, email, active, visible, class_codes, created_at, edited_at
		FROM correctors
		WHERE active = true
	`
	if onlyVisible {
		query += " AND visible = true"
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var correctors []*domain.Corrector
	for rows.Next() {
		corrector, err := scanCorrector(rows)
		if err != nil {
			return nil, err
		}
		correctors = append(correctors, corrector)
	}

	return correctors, rows.Err()
}

func (r *CorrectorRepository) scanOne(row *sql.Row) (*domain.Corrector, error) {
	corrector, err := scanCorrector(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return corrector, nil
}

func scanCorrector(row rowScanner) (*domain.Corrector, error) {
	var c domain.Corrector
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Active,
		&c.Visible,
		pq.Array(&c.ClassCodes),
		&c.CreatedAt,
		&c.EditedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
