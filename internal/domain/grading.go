package domain

import (
	"fmt"
	"math"
)

const (
	CompetencyCount    = 5
	MaxCompetencyScore = 200
	MaxTotalScore      = CompetencyCount * MaxCompetencyScore

	// DefaultDivergenceThreshold is the maximum gap between the two
	// correctors' totals before the submission needs admin resolution.
	DefaultDivergenceThreshold = 100
)

// CompetencyScores holds one corrector's marks for the five rubric
// competencies, C1 through C5, each on a 0-200 scale.
type CompetencyScores [CompetencyCount]int

func (s CompetencyScores) Validate() error {
	for i, score := range s {
		if score < 0 || score > MaxCompetencyScore {
			return fmt.Errorf("competency %d score %d out of range [0, %d]", i+1, score, MaxCompetencyScore)
		}
	}
	return nil
}

func (s CompetencyScores) Total() int {
	total := 0
	for _, score := range s {
		total += score
	}
	return total
}

// ConsolidatedGrade is the merged view of up to two evaluations. A nil
// competency or total means no corrector has scored it yet; missing is
// never reported as zero.
//
// Rounding rule: per-competency means are rounded to one decimal, the
// total mean to the nearest integer.
type ConsolidatedGrade struct {
	Competencies [CompetencyCount]*float64
	Total        *int
}

func Consolidate(e1, e2 *Evaluation) ConsolidatedGrade {
	var grade ConsolidatedGrade

	switch {
	case e1.Done() && e2.Done():
		for i := range grade.Competencies {
			mean := float64(e1.Scores[i]+e2.Scores[i]) / 2
			rounded := math.Round(mean*10) / 10
			grade.Competencies[i] = &rounded
		}
		total := int(math.Round(float64(e1.Total+e2.Total) / 2))
		grade.Total = &total
	case e1.Done():
		grade = singleGrade(e1)
	case e2.Done():
		grade = singleGrade(e2)
	}

	return grade
}

func singleGrade(e *Evaluation) ConsolidatedGrade {
	var grade ConsolidatedGrade
	for i := range grade.Competencies {
		v := float64(e.Scores[i])
		grade.Competencies[i] = &v
	}
	total := e.Total
	grade.Total = &total
	return grade
}

// Divergence reports how far apart two finished evaluations are, per
// competency and in total, so a reviewer can see which competency drove
// the disagreement.
type Divergence struct {
	Competencies [CompetencyCount]int
	Total        int
	Threshold    int
	Divergent    bool
}

// ComputeDivergence returns nil unless both evaluations are done.
func ComputeDivergence(e1, e2 *Evaluation, threshold int) *Divergence {
	if !e1.Done() || !e2.Done() {
		return nil
	}

	d := &Divergence{Threshold: threshold}
	for i := range d.Competencies {
		d.Competencies[i] = abs(e1.Scores[i] - e2.Scores[i])
	}
	d.Total = abs(e1.Total - e2.Total)
	d.Divergent = d.Total > threshold
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type ReviewStatus string

const (
	ReviewNoCorrector   ReviewStatus = "no_corrector"
	ReviewPending       ReviewStatus = "pending"
	ReviewPartial       ReviewStatus = "partial"
	ReviewAwaitingAdmin ReviewStatus = "awaiting_review"
	ReviewDivergent     ReviewStatus = "divergent"
)

// ReviewStatus derives the grading state of a submission. It is
// recomputed on every read; nothing is stored.
func (s *Submission) ReviewStatus(threshold int) ReviewStatus {
	if s.Corrector1 == nil && s.Corrector2 == nil {
		return ReviewNoCorrector
	}

	done := 0
	if s.Corrector1.Done() {
		done++
	}
	if s.Corrector2.Done() {
		done++
	}

	switch done {
	case 0:
		return ReviewPending
	case 1:
		return ReviewPartial
	}

	d := ComputeDivergence(s.Corrector1, s.Corrector2, threshold)
	if d.Divergent {
		return ReviewDivergent
	}
	return ReviewAwaitingAdmin
}

// FullyGraded reports whether grading is finished for the submission's
// category: a simulated exam needs both correctors done, anything else
// needs every assigned corrector done (and at least one assigned).
func (s *Submission) FullyGraded() bool {
	if s.Category == CategorySimulado {
		return s.Corrector1.Done() && s.Corrector2.Done()
	}

	assigned := false
	if s.Corrector1 != nil {
		assigned = true
		if !s.Corrector1.Done() {
			return false
		}
	}
	if s.Corrector2 != nil {
		assigned = true
		if !s.Corrector2.Done() {
			return false
		}
	}
	return assigned
}
