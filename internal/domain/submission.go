package domain

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID           uuid.UUID
	StudentName  string
	StudentEmail string
	ClassCode    *string
	Theme        string
	Body         string
	Category     Category
	ExamID       *uuid.UUID
	Corrected    bool
	SubmittedAt  time.Time
	Corrector1   *Evaluation
	Corrector2   *Evaluation
}

// Evaluation is one corrector's rubric pass over a submission. Scores
// stays nil until the corrector records the five competency marks.
type Evaluation struct {
	CorrectorID uuid.UUID
	Status      EvaluationStatus
	Scores      *CompetencyScores
	Total       int
}

func (e *Evaluation) Done() bool {
	return e != nil && e.Status == EvaluationDone && e.Scores != nil
}

type SubmissionFilter struct {
	ClassCode    string
	StudentEmail string
	Category     Category
	ExamID       uuid.UUID
	// Year and Month restrict by submission timestamp. Both must be
	// set together; zero means no month filter.
	Year  int
	Month time.Month
}
