package expense_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"contractor-erp/internal/expense"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHandler_GetByEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New()

	repo := &fakeExpenseRepository{}
	h := expense.NewHandler(expense.NewService(repo))

	r := gin.New()
	r.GET("/employees/:id/expense", h.GetByEmployee)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+employeeID.String()+"/expense", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"NOT_FOUND"`)

	repo.findByEmployeeFn = func(_ context.Context, id string) (*expense.EmployeeExpense, error) {
		return &expense.EmployeeExpense{EmployeeID: employeeID, BasicSalary: decimal.NewFromInt(4200)}, nil
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+employeeID.String()+"/expense", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"basic_salary":"4200.00"`)
}
