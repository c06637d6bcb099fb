package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DisplayGrace is how long after its scheduled end a class is still
// fetched for the student-facing banner, allowing late check-out. It is
// a visibility rule only; the status label is already "ended".
const DisplayGrace = time.Hour

type LiveClass struct {
	ID                uuid.UUID
	Title             string
	// Date is the class day, "2006-01-02". StartTime and EndTime are
	// wall-clock values "15:04" in the service timezone; they are not
	// UTC instants.
	Date              string
	StartTime         string
	EndTime           string
	MeetingLink       *string
	AuthorizedClasses []string
	VisitorAllowed    bool
	Active            bool
	IsLiveFormat      bool
	CreatedAt         time.Time
	EditedAt          time.Time
}

type ClassStatus string

const (
	ClassScheduled ClassStatus = "scheduled"
	ClassLive      ClassStatus = "live"
	ClassEnded     ClassStatus = "ended"
)

// Window resolves the class's naive date and times into instants in
// loc. Both boundaries are inclusive for status purposes.
func (c *LiveClass) Window(loc *time.Location) (start, end time.Time, err error) {
	start, err = time.ParseInLocation("2006-01-02 15:04", c.Date+" "+c.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid class start: %w", err)
	}
	end, err = time.ParseInLocation("2006-01-02 15:04", c.Date+" "+c.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid class end: %w", err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("class start %s is not before end %s", c.StartTime, c.EndTime)
	}
	return start, end, nil
}

// StatusAt is total over the three outcomes: before start it is
// scheduled, from start through end inclusive it is live, after end it
// is ended.
func StatusAt(start, end, now time.Time) ClassStatus {
	if now.Before(start) {
		return ClassScheduled
	}
	if now.After(end) {
		return ClassEnded
	}
	return ClassLive
}

// DisplayableAt reports whether the class should still be fetched for
// the active-class banner. Distinct from StatusAt: an ended class stays
// displayable until end + DisplayGrace.
func DisplayableAt(end, now time.Time) bool {
	return !now.After(end.Add(DisplayGrace))
}

func (c *LiveClass) AuthorizedFor(classCode string, isVisitor bool) bool {
	if isVisitor {
		return c.VisitorAllowed
	}
	if len(c.AuthorizedClasses) == 0 {
		return true
	}
	for _, code := range c.AuthorizedClasses {
		if code == classCode {
			return true
		}
	}
	return false
}

func (c *LiveClass) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("class title is required")
	}
	if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		return fmt.Errorf("invalid class date: %w", err)
	}
	start, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse("15:04", c.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("start time must be before end time")
	}
	return nil
}
