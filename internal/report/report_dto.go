package report

import "contractor-erp/internal/attendance"

type RoleTotals struct {
	Count         int    `json:"count"`
	TotalSalary   string `json:"total_salary"`
	AverageSalary string `json:"average_salary"`
}

type PayrollSummary struct {
	Count               int                   `json:"count"`
	TotalPayroll        string                `json:"total_payroll"`
	AverageSalary       string                `json:"average_salary"`
	TotalOvertimeHours  string                `json:"total_overtime_hours"`
	TotalOvertimeAmount string                `json:"total_overtime_amount"`
	ByRole              map[string]RoleTotals `json:"by_role"`
}

type Line struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type Payslip struct {
	PayrollID            string              `json:"payroll_id"`
	EmployeeID           string              `json:"employee_id"`
	EmployeeName         string              `json:"employee_name"`
	Role                 string              `json:"role"`
	LabourCard           string              `json:"labour_card"`
	LabourCardPersonalNo string              `json:"labour_card_personal_no"`
	Period               string              `json:"period"`
	Earnings             []Line              `json:"earnings"`
	Deductions           []Line              `json:"deductions"`
	Gross                string              `json:"gross"`
	TotalDeductions      string              `json:"total_deductions"`
	Net                  string              `json:"net"`
	OvertimeHours        string              `json:"overtime_hours"`
	OvertimeRate         string              `json:"overtime_rate"`
	Remark               *string             `json:"remark,omitempty"`
	Attendance           *attendance.Summary `json:"attendance,omitempty"`
}
