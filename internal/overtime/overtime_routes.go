package overtime

import (
	"contractor-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	r.GET("/overtime/:employee_id",
		auth,
		middleware.RateLimitByUser(2, 5),
		middleware.RBACAuthorize(rbacService, "payroll", "read"),
		h.Preview,
	)
}
