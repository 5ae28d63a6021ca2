package attendance

type RecordAttendanceRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"required,uuid"`
	Date         string  `json:"date" binding:"required"`
	Present      bool    `json:"present"`
	IsPaidLeave  bool    `json:"is_paid_leave"`
	WorkingHours float64 `json:"working_hours"`
	RecordType   string  `json:"record_type" binding:"omitempty,oneof=NORMAL PROJECT"`
	ProjectRef   *string `json:"project_ref"`
	Notes        *string `json:"notes"`
}

type ListAttendanceFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	From       string `form:"from"`
	To         string `form:"to"`
	RecordType string `form:"record_type" binding:"omitempty,oneof=NORMAL PROJECT"`
}

type SummaryRequest struct {
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
	Year       int    `form:"year" binding:"required,min=1"`
	RecordType string `form:"record_type" binding:"omitempty,oneof=NORMAL PROJECT"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	Weekday        string  `json:"weekday"`
	RecordType     string  `json:"record_type"`
	Present        bool    `json:"present"`
	IsPaidLeave    bool    `json:"is_paid_leave"`
	WorkingHours   float64 `json:"working_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	ProjectRef     *string `json:"project_ref,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type Summary struct {
	TotalDays           int     `json:"total_days"`
	PresentDays         int     `json:"present_days"`
	AbsentDays          int     `json:"absent_days"`
	DutyOffDays         int     `json:"duty_off_days"`
	TotalHours          float64 `json:"total_hours"`
	OvertimeHours       float64 `json:"overtime_hours"`
	SundayWorkingDays   int     `json:"sunday_working_days"`
	SundayOvertimeHours float64 `json:"sunday_overtime_hours"`
}

type SummaryResponse struct {
	EmployeeID string               `json:"employee_id"`
	Period     string               `json:"period"`
	Records    []AttendanceResponse `json:"records"`
	Summary    Summary              `json:"summary"`
}
