package expense_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"contractor-erp/internal/expense"
	expenseerrors "contractor-erp/internal/expense/errors"
	"contractor-erp/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeExpenseRepository struct {
	findByEmployeeFn func(ctx context.Context, employeeID string) (*expense.EmployeeExpense, error)
}

func (f *fakeExpenseRepository) WithTx(tx *sql.Tx) expense.Repository {
	return f
}

func (f *fakeExpenseRepository) FindByEmployee(ctx context.Context, employeeID string) (*expense.EmployeeExpense, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func TestService_GetByEmployee(t *testing.T) {
	employeeID := uuid.New()
	effective := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo := &fakeExpenseRepository{
			findByEmployeeFn: func(ctx context.Context, id string) (*expense.EmployeeExpense, error) {
				assert.Equal(t, employeeID.String(), id)
				return &expense.EmployeeExpense{
					ID:            uuid.New(),
					EmployeeID:    employeeID,
					BasicSalary:   decimal.RequireFromString("3000"),
					Allowance:     decimal.RequireFromString("500.5"),
					EffectiveDate: effective,
					EmployeeName:  "Ahmed Khan",
				}, nil
			},
		}
		svc := expense.NewService(repo)

		resp, err := svc.GetByEmployee(context.Background(), employeeID.String())
		require.NoError(t, err)
		assert.Equal(t, "3000.00", resp.BasicSalary)
		assert.Equal(t, "500.50", resp.Allowance)
		assert.Equal(t, "2024-01-01", resp.EffectiveDate)
		assert.Equal(t, "Ahmed Khan", resp.EmployeeName)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		svc := expense.NewService(&fakeExpenseRepository{})

		_, err := svc.GetByEmployee(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, expenseerrors.ErrInvalidEmployeeID)
	})

	t.Run("missing profile", func(t *testing.T) {
		svc := expense.NewService(&fakeExpenseRepository{})

		_, err := svc.GetByEmployee(context.Background(), employeeID.String())
		assert.ErrorIs(t, err, expenseerrors.ErrExpenseProfileNotFound)
		assert.True(t, apperror.Is(err, apperror.CodeNotFound))
	})

	t.Run("negative profile", func(t *testing.T) {
		repo := &fakeExpenseRepository{
			findByEmployeeFn: func(ctx context.Context, id string) (*expense.EmployeeExpense, error) {
				return &expense.EmployeeExpense{
					EmployeeID:  employeeID,
					BasicSalary: decimal.NewFromInt(-1),
				}, nil
			},
		}
		svc := expense.NewService(repo)

		_, err := svc.Profile(context.Background(), employeeID.String())
		assert.ErrorIs(t, err, expenseerrors.ErrInvalidExpenseProfile)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeExpenseRepository{
			findByEmployeeFn: func(ctx context.Context, id string) (*expense.EmployeeExpense, error) {
				return nil, errors.New("connection reset")
			},
		}
		svc := expense.NewService(repo)

		_, err := svc.Profile(context.Background(), employeeID.String())
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.CodeInternalError))
	})
}
