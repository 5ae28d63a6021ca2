package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"contractor-erp/internal/payroll"
	payrollerrors "contractor-erp/internal/payroll/errors"
	"contractor-erp/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeReportService struct {
	summaryReq payroll.ListPayrollFilterRequest
}

func (f *fakeReportService) PayrollSummary(ctx context.Context, req payroll.ListPayrollFilterRequest) (report.PayrollSummary, error) {
	f.summaryReq = req
	return report.PayrollSummary{Count: 2, TotalPayroll: "6000.00"}, nil
}

func (f *fakeReportService) Payslip(ctx context.Context, id string) (report.Payslip, error) {
	if id == "missing" {
		return report.Payslip{}, payrollerrors.ErrPayrollNotFound
	}
	return report.Payslip{PayrollID: id, Net: "3382.14"}, nil
}

func newReportRouter(svc report.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := report.NewHandler(svc)
	r := gin.New()
	r.GET("/reports/payroll-summary", h.PayrollSummary)
	r.GET("/reports/payslips/:id", h.Payslip)
	return r
}

func TestHandler_PayrollSummary(t *testing.T) {
	svc := &fakeReportService{}
	r := newReportRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/payroll-summary?year=2025&period=03-2025", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_payroll":"6000.00"`)
	assert.Equal(t, 2025, svc.summaryReq.Year)
	assert.Equal(t, "03-2025", svc.summaryReq.Period)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/payroll-summary?month=13&year=2025", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Payslip(t *testing.T) {
	r := newReportRouter(&fakeReportService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/payslips/abc", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"net":"3382.14"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/payslips/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
