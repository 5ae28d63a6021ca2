package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	uniqueEmployeePeriod = "uq_payroll_employee_period"
	moneyPlaces          = 2
)

type PayrollRecord struct {
	ID                   uuid.UUID    `gorm:"type:uuid;primaryKey"`
	EmployeeID           uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period,priority:1"`
	Employee             *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	LabourCard           string       `gorm:"type:varchar(64);not null"`
	LabourCardPersonalNo string       `gorm:"type:varchar(64);not null"`
	// Period is the MM-YYYY token of the covered month.
	Period string `gorm:"type:varchar(7);not null;uniqueIndex:uq_payroll_employee_period,priority:2"`

	BasicSalary decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Earnings
	Allowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Transport decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Overtime  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	SpecialOT decimal.Decimal `gorm:"column:special_ot;type:numeric(14,2);not null;default:0"`
	Medical   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Bonus     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	// Deductions
	Mess          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	SalaryAdvance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	LoanDeduction decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	FineAmount    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	VisaDeduction decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	OvertimeHours decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	OvertimeRate  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Net           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	Remark    *string    `gorm:"type:text"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt time.Time  `gorm:"index"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Role     string    `gorm:"column:role"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// Gross is the sum of basic salary and all earning components.
func (r PayrollRecord) Gross() decimal.Decimal {
	return decimal.Sum(r.BasicSalary, r.Allowance, r.Transport, r.Overtime, r.SpecialOT, r.Medical, r.Bonus)
}

func (r PayrollRecord) TotalDeductions() decimal.Decimal {
	return decimal.Sum(r.Mess, r.SalaryAdvance, r.LoanDeduction, r.FineAmount, r.VisaDeduction)
}

// ComputeNet derives net pay from the components as numeric(14,2) stores
// them, so net always equals the sum of the persisted values.
func (r PayrollRecord) ComputeNet() decimal.Decimal {
	c := r.rounded()
	return c.Gross().Sub(c.TotalDeductions())
}

func (r PayrollRecord) rounded() PayrollRecord {
	for _, v := range r.amountRefs() {
		*v = v.Round(moneyPlaces)
	}
	return r
}

// roundAmounts rounds every money component to cents in place.
func (r *PayrollRecord) roundAmounts() {
	for _, v := range r.amountRefs() {
		*v = v.Round(moneyPlaces)
	}
}

func (r *PayrollRecord) amountRefs() []*decimal.Decimal {
	return []*decimal.Decimal{
		&r.BasicSalary, &r.Allowance, &r.Transport, &r.Overtime, &r.SpecialOT, &r.Medical, &r.Bonus,
		&r.Mess, &r.SalaryAdvance, &r.LoanDeduction, &r.FineAmount, &r.VisaDeduction,
	}
}

// hasSubCent reports whether v carries more precision than numeric(14,2).
func hasSubCent(v decimal.Decimal) bool {
	return !v.Equal(v.Round(moneyPlaces))
}

func (r *PayrollRecord) amounts() []decimal.Decimal {
	return []decimal.Decimal{
		r.BasicSalary, r.Allowance, r.Transport, r.Overtime, r.SpecialOT, r.Medical, r.Bonus,
		r.Mess, r.SalaryAdvance, r.LoanDeduction, r.FineAmount, r.VisaDeduction,
	}
}

func (r *PayrollRecord) hasNegativeAmount() bool {
	for _, v := range r.amounts() {
		if v.IsNegative() {
			return true
		}
	}
	return false
}
