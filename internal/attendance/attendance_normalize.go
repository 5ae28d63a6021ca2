package attendance

import (
	attendanceerrors "contractor-erp/internal/attendance/errors"
)

const (
	// OvertimeThreshold is the number of daily working hours above which
	// hours count as overtime.
	OvertimeThreshold = 10.0
	MaxWorkingHours   = 24.0
)

// Normalize applies the ledger invariants to a record before it is written.
// Paid leave wins over everything the caller supplied.
func Normalize(a Attendance) (Attendance, error) {
	if a.IsPaidLeave {
		a.Present = false
		a.WorkingHours = 0
		a.OvertimeHours = 0
		return a, nil
	}

	if a.WorkingHours < 0 || a.WorkingHours > MaxWorkingHours {
		return Attendance{}, attendanceerrors.ErrInvalidWorkingHours
	}

	if !a.Present {
		a.OvertimeHours = 0
		return a, nil
	}

	a.OvertimeHours = max(0, a.WorkingHours-OvertimeThreshold)
	return a, nil
}
