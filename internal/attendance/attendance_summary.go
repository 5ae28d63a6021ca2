package attendance

import "time"

// dayStatus ranks what a calendar date counts as; higher wins when one date
// carries several records.
type dayStatus int

const (
	dayAbsent dayStatus = iota
	dayDutyOff
	dayPresent
)

func statusOf(r Attendance) dayStatus {
	switch {
	case r.Present && !r.IsPaidLeave:
		return dayPresent
	case r.IsPaidLeave:
		return dayDutyOff
	default:
		return dayAbsent
	}
}

// Summarize folds the records of one employee into month totals. Day counts
// are per calendar date: a date with any present record is a present day,
// otherwise paid leave beats absence. Hours are summed over every present
// record, so a NORMAL and a PROJECT shift on one date both add their hours.
// Sunday work is reported separately because it is paid under a different
// bonus policy.
func Summarize(records []Attendance) Summary {
	var s Summary
	days := make(map[string]dayStatus, len(records))
	sundays := make(map[string]struct{})

	for _, r := range records {
		key := r.AttendanceDate.Format(dateLayout)
		st := statusOf(r)
		if prev, ok := days[key]; !ok || st > prev {
			days[key] = st
		}
		if st != dayPresent {
			continue
		}

		s.TotalHours += r.WorkingHours
		s.OvertimeHours += r.OvertimeHours
		if r.AttendanceDate.Weekday() == time.Sunday {
			sundays[key] = struct{}{}
			s.SundayOvertimeHours += r.OvertimeHours
		}
	}

	for _, st := range days {
		switch st {
		case dayPresent:
			s.PresentDays++
		case dayDutyOff:
			s.DutyOffDays++
		default:
			s.AbsentDays++
		}
	}

	s.TotalDays = len(days)
	s.SundayWorkingDays = len(sundays)
	return s
}
