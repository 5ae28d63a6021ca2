package overtime

type PreviewRequest struct {
	Period string `form:"period"`
}

type PreviewResponse struct {
	EmployeeID     string `json:"employee_id"`
	Period         string `json:"period"`
	BasicSalary    string `json:"basic_salary"`
	DaysInMonth    int    `json:"days_in_month"`
	OvertimeHours  string `json:"overtime_hours"`
	HourlyRate     string `json:"hourly_rate"`
	OvertimeAmount string `json:"overtime_amount"`
	Degraded       bool   `json:"degraded"`
}

func (r Result) ToResponse(employeeID, basicSalary string) PreviewResponse {
	return PreviewResponse{
		EmployeeID:     employeeID,
		Period:         r.Period.String(),
		BasicSalary:    basicSalary,
		DaysInMonth:    r.DaysInMonth,
		OvertimeHours:  r.OvertimeHours.StringFixed(2),
		HourlyRate:     r.HourlyRate.StringFixed(2),
		OvertimeAmount: r.OvertimeAmount.StringFixed(2),
		Degraded:       r.Degraded,
	}
}
