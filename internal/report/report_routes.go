package report

import (
	"contractor-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	reports := r.Group("/reports")
	reports.Use(auth, middleware.RateLimitByUser(2, 5))
	{
		reports.GET("/payroll-summary", middleware.RBACAuthorize(rbacService, "report", "read"), handler.PayrollSummary)
		reports.GET("/payslips/:id", middleware.RBACAuthorize(rbacService, "report", "read"), handler.Payslip)
	}
}
