package payroll

import "github.com/shopspring/decimal"

// Earnings and deductions that a payroll officer enters by hand. Omitted
// values are zero, except allowance which defaults to the expense profile.
type Components struct {
	Allowance     *decimal.Decimal `json:"allowance"`
	Transport     *decimal.Decimal `json:"transport"`
	SpecialOT     *decimal.Decimal `json:"special_ot"`
	Medical       *decimal.Decimal `json:"medical"`
	Bonus         *decimal.Decimal `json:"bonus"`
	Mess          *decimal.Decimal `json:"mess"`
	SalaryAdvance *decimal.Decimal `json:"salary_advance"`
	LoanDeduction *decimal.Decimal `json:"loan_deduction"`
	FineAmount    *decimal.Decimal `json:"fine_amount"`
	VisaDeduction *decimal.Decimal `json:"visa_deduction"`
}

type CreatePayrollRequest struct {
	EmployeeID           string  `json:"employee_id" binding:"required"`
	LabourCard           string  `json:"labour_card" binding:"required"`
	LabourCardPersonalNo string  `json:"labour_card_personal_no" binding:"required"`
	Remark               *string `json:"remark"`
	Components
}

type UpdatePayrollRequest struct {
	EmployeeID           *string          `json:"employee_id" binding:"omitempty,uuid"`
	LabourCard           *string          `json:"labour_card" binding:"omitempty,min=1"`
	LabourCardPersonalNo *string          `json:"labour_card_personal_no" binding:"omitempty,min=1"`
	BasicSalary          *decimal.Decimal `json:"basic_salary"`
	Remark               *string          `json:"remark"`
	Components

	// Immutable after creation; accepted only so they can be ignored.
	Period   *string          `json:"period"`
	Overtime *decimal.Decimal `json:"overtime"`
	Net      *decimal.Decimal `json:"net"`
}

type ListPayrollFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Period     string `form:"period"`
	Month      int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year       int    `form:"year" binding:"omitempty,min=1"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type PayrollResponse struct {
	ID                   string  `json:"id"`
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         string  `json:"employee_name,omitempty"`
	Role                 string  `json:"role,omitempty"`
	LabourCard           string  `json:"labour_card"`
	LabourCardPersonalNo string  `json:"labour_card_personal_no"`
	Period               string  `json:"period"`
	BasicSalary          string  `json:"basic_salary"`
	Allowance            string  `json:"allowance"`
	Transport            string  `json:"transport"`
	Overtime             string  `json:"overtime"`
	SpecialOT            string  `json:"special_ot"`
	Medical              string  `json:"medical"`
	Bonus                string  `json:"bonus"`
	Mess                 string  `json:"mess"`
	SalaryAdvance        string  `json:"salary_advance"`
	LoanDeduction        string  `json:"loan_deduction"`
	FineAmount           string  `json:"fine_amount"`
	VisaDeduction        string  `json:"visa_deduction"`
	OvertimeHours        string  `json:"overtime_hours"`
	OvertimeRate         string  `json:"overtime_rate"`
	Net                  string  `json:"net"`
	Remark               *string `json:"remark,omitempty"`
	CreatedBy            string  `json:"created_by"`
	CreatedAt            string  `json:"created_at"`
	UpdatedBy            *string `json:"updated_by,omitempty"`
	UpdatedAt            string  `json:"updated_at,omitempty"`
}

// PreviewResponse is a payroll computed but not persisted.
type PreviewResponse struct {
	Payroll          PayrollResponse `json:"payroll"`
	OvertimeDegraded bool            `json:"overtime_degraded"`
	AlreadyExists    bool            `json:"already_exists"`
}

type Totals struct {
	Count           int    `json:"count"`
	TotalBasic      string `json:"total_basic"`
	TotalOvertime   string `json:"total_overtime"`
	TotalDeductions string `json:"total_deductions"`
	TotalNet        string `json:"total_net"`
}

type ListResponse struct {
	Items  []PayrollResponse `json:"items"`
	Totals Totals            `json:"totals"`
}
