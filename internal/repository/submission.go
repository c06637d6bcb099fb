package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"redacao_service/internal/domain"
)

const submissionColumns = `
	id, student_name, student_email, class_code, theme, body, category,
	exam_id, corrected, submitted_at,
	corrector_id_1, status_corrector_1,
	c1_corrector_1, c2_corrector_1, c3_corrector_1, c4_corrector_1, c5_corrector_1,
	total_corrector_1,
	corrector_id_2, status_corrector_2,
	c1_corrector_2, c2_corrector_2, c3_corrector_2, c4_corrector_2, c5_corrector_2,
	total_corrector_2
`

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (id, student_name, student_email, class_code, theme, body, category, exam_id, corrected, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		id,
		submission.StudentName,
		submission.StudentEmail,
		submission.ClassCode,
		submission.Theme,
		submission.Body,
		submission.Category,
		submission.ExamID,
		false,
		time.Now(),
	)

	if err != nil {
		return err
	}

	submission.ID = id
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	submission, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return submission, nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = $1`, id)
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

func (r *SubmissionRepository) ListByFilter(ctx context.Context, filter domain.SubmissionFilter) ([]*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE 1=1`

	var args []interface{}
	argsCount := 1

	if filter.ClassCode != "" {
		query += fmt.Sprintf(" AND class_code = $%d", argsCount)
		args = append(args, filter.ClassCode)
		argsCount++
	}

	if filter.StudentEmail != "" {
		query += fmt.Sprintf(" AND student_email = $%d", argsCount)
		args = append(args, filter.StudentEmail)
		argsCount++
	}

	if filter.Category != domain.CategoryUnspecified {
		query += fmt.Sprintf(" AND category = $%d", argsCount)
		args = append(args, filter.Category)
		argsCount++
	}

	if filter.ExamID != uuid.Nil {
		query += fmt.Sprintf(" AND exam_id = $%d", argsCount)
		args = append(args, filter.ExamID)
		argsCount++
	}

	if filter.Year != 0 {
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM submitted_at)::int = $%d AND EXTRACT(MONTH FROM submitted_at)::int = $%d", argsCount, argsCount+1)
		args = append(args, filter.Year, int(filter.Month))
		argsCount += 2
	}

	query += " ORDER BY submitted_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var submissions []*domain.Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}

// ListCorrected returns submissions with both evaluations finished,
// the pool the leaderboard draws from.
func (r *SubmissionRepository) ListCorrected(ctx context.Context, filter domain.SubmissionFilter) ([]*domain.Submission, error) {
	submissions, err := r.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	corrected := submissions[:0]
	for _, s := range submissions {
		if s.Corrected {
			corrected = append(corrected, s)
		}
	}
	return corrected, nil
}

// AssignCorrector writes corrector id into the given slot (1 or 2) and
// resets that slot's evaluation status to pending.
func (r *SubmissionRepository) AssignCorrector(ctx context.Context, id uuid.UUID, slot int, correctorID uuid.UUID) error {
	if slot != 1 && slot != 2 {
		return fmt.Errorf("invalid corrector slot %d", slot)
	}

	query := fmt.Sprintf(`
		UPDATE submissions
		SET corrector_id_%d = $1, status_corrector_%d = $2
		WHERE id = $3
	`, slot, slot)

	result, err := r.db.ExecContext(ctx, query, correctorID, domain.EvaluationPending, id)
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

// RecordEvaluation stores one corrector slot's five scores and total and
// marks that slot done.
func (r *SubmissionRepository) RecordEvaluation(ctx context.Context, id uuid.UUID, slot int, scores domain.CompetencyScores, total int) error {
	if slot != 1 && slot != 2 {
		return fmt.Errorf("invalid corrector slot %d", slot)
	}

	cols := make([]string, 0, domain.CompetencyCount)
	args := []interface{}{}
	argsCount := 1
	for i := 0; i < domain.CompetencyCount; i++ {
		cols = append(cols, fmt.Sprintf("c%d_corrector_%d = $%d", i+1, slot, argsCount))
		args = append(args, scores[i])
		argsCount++
	}

	query := fmt.Sprintf(`
		UPDATE submissions
		SET %s, total_corrector_%d = $%d, status_corrector_%d = $%d
		WHERE id = $%d
	`, strings.Join(cols, ", "), slot, argsCount, slot, argsCount+1, argsCount+2)
	args = append(args, total, domain.EvaluationDone, id)

	result, err := r.db.ExecContext(ctx, query, args...)
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

func (r *SubmissionRepository) SetCorrected(ctx context.Context, id uuid.UUID, corrected bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE submissions SET corrected = $1 WHERE id = $2`, corrected, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*domain.Submission, error) {
	var s domain.Submission
	var (
		correctorID1, correctorID2 *uuid.UUID
		status1, status2           *string
		scores1, scores2           [domain.CompetencyCount]sql.NullInt64
		total1, total2             sql.NullInt64
	)

	err := row.Scan(
		&s.ID,
		&s.StudentName,
		&s.StudentEmail,
		&s.ClassCode,
		&s.Theme,
		&s.Body,
		&s.Category,
		&s.ExamID,
		&s.Corrected,
		&s.SubmittedAt,
		&correctorID1,
		&status1,
		&scores1[0], &scores1[1], &scores1[2], &scores1[3], &scores1[4],
		&total1,
		&correctorID2,
		&status2,
		&scores2[0], &scores2[1], &scores2[2], &scores2[3], &scores2[4],
		&total2,
	)
	if err != nil {
		return nil, err
	}

	s.Corrector1 = buildEvaluation(correctorID1, status1, scores1, total1)
	s.Corrector2 = buildEvaluation(correctorID2, status2, scores2, total2)
	return &s, nil
}

func buildEvaluation(correctorID *uuid.UUID, status *string, scores [domain.CompetencyCount]sql.NullInt64, total sql.NullInt64) *domain.Evaluation {
	if correctorID == nil {
		return nil
	}

	e := &domain.Evaluation{
		CorrectorID: *correctorID,
		Status:      domain.EvaluationPending,
	}
	if status != nil {
		e.Status = domain.EvaluationStatus(*status)
	}

	if scores[0].Valid {
		var cs domain.CompetencyScores
		for i := range cs {
			cs[i] = int(scores[i].Int64)
		}
		e.Scores = &cs
	}
	if total.Valid {
		e.Total = int(total.Int64)
	}

	return e
}
