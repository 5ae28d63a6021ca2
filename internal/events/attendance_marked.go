package events

import "time"

const AttendanceMarkedTopic = "erp.attendance.marked.v1"

// AttendanceMarkedEvent is published by the attendance-marking collaborator
// (time clocks, site supervisors) and ingested into the ledger.
type AttendanceMarkedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	Date         string    `json:"date"`
	Present      bool      `json:"present"`
	IsPaidLeave  bool      `json:"is_paid_leave"`
	WorkingHours float64   `json:"working_hours"`
	RecordType   string    `json:"record_type"`
	ProjectRef   *string   `json:"project_ref,omitempty"`
	MarkedBy     string    `json:"marked_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
