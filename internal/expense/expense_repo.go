package expense

import (
	"context"
	"database/sql"

	"contractor-erp/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=expense_repo.go -destination=mock/expense_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployee(ctx context.Context, employeeID string) (*EmployeeExpense, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*EmployeeExpense, error) {
	var profile EmployeeExpense
	err := connection.Bind(ctx, r.db, r.tx).
		Table("employee_expenses").
		Select("employee_expenses.*, employees.full_name AS employee_name").
		Joins("LEFT JOIN employees ON employees.id = employee_expenses.employee_id").
		Where("employee_expenses.employee_id = ?", employeeID).
		Order("employee_expenses.effective_date DESC").
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
