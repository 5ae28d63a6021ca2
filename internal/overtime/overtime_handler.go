package overtime

import (
	"context"
	"net/http"

	"contractor-erp/internal/expense"
	"contractor-erp/internal/period"
	"contractor-erp/internal/shared/apperror"
	"contractor-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type SalaryProfiles interface {
	Profile(ctx context.Context, employeeID string) (*expense.EmployeeExpense, error)
}

type Handler struct {
	calc     *Calculator
	profiles SalaryProfiles
}

func NewHandler(calc *Calculator, profiles SalaryProfiles) *Handler {
	return &Handler{calc: calc, profiles: profiles}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Preview reports the overtime the employee would be paid for the previous
// month, or for the period given in the query.
func (h *Handler) Preview(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("employee_id")

	var req PreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	profile, err := h.profiles.Profile(ctx, employeeID)
	if err != nil {
		writeError(c, err)
		return
	}

	var res Result
	if req.Period == "" {
		res = h.calc.Calculate(ctx, employeeID, profile.BasicSalary)
	} else {
		p, err := period.Parse(req.Period)
		if err != nil {
			writeError(c, err)
			return
		}
		res = h.calc.CalculateForPeriod(ctx, employeeID, profile.BasicSalary, p)
	}

	response.Success(c, http.StatusOK, res.ToResponse(employeeID, profile.BasicSalary.StringFixed(2)), nil)
}
