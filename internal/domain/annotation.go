package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Annotation is a corrector's positioned remark on an essay, tagged
// with the competency it concerns. Owned and persisted server-side.
type Annotation struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	CorrectorID  uuid.UUID
	Competency   int
	X            float64
	Y            float64
	Comment      string
	CreatedAt    time.Time
	EditedAt     time.Time
}

func (a *Annotation) Validate() error {
	if a.Competency < 1 || a.Competency > CompetencyCount {
		return fmt.Errorf("competency tag %d out of range [1, %d]", a.Competency, CompetencyCount)
	}
	if a.Comment == "" {
		return fmt.Errorf("annotation comment is required")
	}
	return nil
}
