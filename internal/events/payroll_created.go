package events

import "time"

const PayrollCreatedTopic = "erp.payroll.created.v1"

type PayrollCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PayrollID  string    `json:"payroll_id"`
	EmployeeID string    `json:"employee_id"`
	Period     string    `json:"period"`
	Net        string    `json:"net"`
	Overtime   string    `json:"overtime"`
	CreatedBy  string    `json:"created_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
