package expense

import (
	"context"

	expenseerrors "contractor-erp/internal/expense/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=expense_service.go -destination=mock/expense_service_mock.go -package=mock
type Service interface {
	GetByEmployee(ctx context.Context, employeeID string) (ExpenseResponse, error)
	Profile(ctx context.Context, employeeID string) (*EmployeeExpense, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("expense.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expense.service")
	}
	return &service{repo: repo, logger: l}
}

// Profile returns the current expense profile of an employee. Profiles with
// negative amounts are rejected so they never reach payroll arithmetic.
func (s *service) Profile(ctx context.Context, employeeID string) (*EmployeeExpense, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, expenseerrors.ErrInvalidEmployeeID
	}

	profile, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if profile.BasicSalary.IsNegative() || profile.Allowance.IsNegative() {
		s.logger.Warn("negative expense profile",
			zap.String("employee_id", employeeID),
			zap.String("basic_salary", profile.BasicSalary.String()),
			zap.String("allowance", profile.Allowance.String()),
		)
		return nil, expenseerrors.ErrInvalidExpenseProfile
	}
	return profile, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (ExpenseResponse, error) {
	profile, err := s.Profile(ctx, employeeID)
	if err != nil {
		return ExpenseResponse{}, err
	}
	return mapToResponse(*profile), nil
}

func mapToResponse(p EmployeeExpense) ExpenseResponse {
	return ExpenseResponse{
		EmployeeID:    p.EmployeeID.String(),
		EmployeeName:  p.EmployeeName,
		BasicSalary:   p.BasicSalary.StringFixed(2),
		Allowance:     p.Allowance.StringFixed(2),
		EffectiveDate: p.EffectiveDate.Format("2006-01-02"),
	}
}
