package domain

import (
	"time"

	"github.com/google/uuid"
)

type Corrector struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Active     bool
	// Visible marks the corrector as available for new assignments.
	Visible    bool
	ClassCodes []string
	CreatedAt  time.Time
	EditedAt   time.Time
}

func (c *Corrector) AuthorizedFor(classCode string) bool {
	if len(c.ClassCodes) == 0 {
		return true
	}
	for _, code := range c.ClassCodes {
		if code == classCode {
			return true
		}
	}
	return false
}
