package expense

type ExpenseResponse struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	BasicSalary   string `json:"basic_salary"`
	Allowance     string `json:"allowance"`
	EffectiveDate string `json:"effective_date"`
}
