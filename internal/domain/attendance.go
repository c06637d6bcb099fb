package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is the authoritative check-in/check-out fact for one
// (class, student) pair. ExitAt is only ever set after EntryAt.
type AttendanceRecord struct {
	ID           uuid.UUID
	ClassID      uuid.UUID
	StudentEmail string
	StudentName  string
	EntryAt      *time.Time
	ExitAt       *time.Time
}

type AttendanceState string

const (
	AttendanceNoRecord AttendanceState = "no_record"
	AttendanceEntered  AttendanceState = "entered"
	AttendanceExited   AttendanceState = "exited"
)

func (r *AttendanceRecord) State() AttendanceState {
	switch {
	case r == nil || r.EntryAt == nil:
		return AttendanceNoRecord
	case r.ExitAt == nil:
		return AttendanceEntered
	default:
		return AttendanceExited
	}
}

// AttendanceResult is the symbolic outcome code returned to callers.
// The wire values match the platform's established Portuguese codes.
type AttendanceResult string

const (
	ResultEntryOK              AttendanceResult = "entrada_ok"
	ResultEntryAlreadyRecorded AttendanceResult = "entrada_ja_registrada"
	ResultNeedsEntry           AttendanceResult = "precisa_entrada"
	ResultExitOK               AttendanceResult = "saida_ok"
	ResultExitAlreadyRecorded  AttendanceResult = "saida_ja_registrada"
	ResultExitBeforeStart      AttendanceResult = "saida_antes_do_inicio"
	ResultNotAuthenticated     AttendanceResult = "usuario_nao_autenticado"
)

// EntryResult decides a check-in attempt. Repeated entries are a no-op,
// not an error; an existing entry timestamp is never overwritten.
func EntryResult(existing *AttendanceRecord) AttendanceResult {
	if existing.State() == AttendanceNoRecord {
		return ResultEntryOK
	}
	return ResultEntryAlreadyRecorded
}

// ExitResult decides a check-out attempt. Exit requires a prior entry
// and is only accepted once the class has started; entry carries no
// such time guard.
func ExitResult(existing *AttendanceRecord, classStart, now time.Time) AttendanceResult {
	switch existing.State() {
	case AttendanceNoRecord:
		return ResultNeedsEntry
	case AttendanceExited:
		return ResultExitAlreadyRecorded
	}
	if now.Before(classStart) {
		return ResultExitBeforeStart
	}
	return ResultExitOK
}

type AttendanceStatus string

const (
	AttendanceComplete   AttendanceStatus = "complete"
	AttendanceIncomplete AttendanceStatus = "incomplete"
	AttendanceAbsent     AttendanceStatus = "absent"
)

type RosterStudent struct {
	Email string
	Name  string
}

type AttendanceReportRow struct {
	StudentEmail    string
	StudentName     string
	EntryAt         *time.Time
	ExitAt          *time.Time
	Status          AttendanceStatus
	DurationMinutes *int
}

// BuildAttendanceReport joins a class roster against its attendance
// records: complete when both timestamps exist, incomplete with exactly
// one, absent when the student never checked in or out. Duration is
// reported in whole minutes for complete rows.
func BuildAttendanceReport(roster []RosterStudent, records []*AttendanceRecord) []AttendanceReportRow {
	byEmail := make(map[string]*AttendanceRecord, len(records))
	for _, rec := range records {
		byEmail[rec.StudentEmail] = rec
	}

	rows := make([]AttendanceReportRow, 0, len(roster))
	for _, student := range roster {
		row := AttendanceReportRow{
			StudentEmail: student.Email,
			StudentName:  student.Name,
			Status:       AttendanceAbsent,
		}

		if rec, ok := byEmail[student.Email]; ok {
			row.EntryAt = rec.EntryAt
			row.ExitAt = rec.ExitAt
			switch rec.State() {
			case AttendanceExited:
				row.Status = AttendanceComplete
				minutes := int(rec.ExitAt.Sub(*rec.EntryAt).Minutes())
				row.DurationMinutes = &minutes
			case AttendanceEntered:
				row.Status = AttendanceIncomplete
			}
		}

		rows = append(rows, row)
	}

	return rows
}
