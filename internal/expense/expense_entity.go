package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeExpense is the salary profile maintained outside of payroll.
// The engine only reads it.
type EmployeeExpense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:uq_employee_expense_employee"`
	BasicSalary   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Allowance     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	EffectiveDate time.Time       `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	EmployeeName string `gorm:"->;-:migration"`
}

func (EmployeeExpense) TableName() string {
	return "employee_expenses"
}
