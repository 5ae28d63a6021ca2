package expense

import (
	"contractor-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	employees := r.Group("/employees")
	employees.Use(auth)
	{
		employees.GET("/:id/expense",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "expense", "read"),
			h.GetByEmployee,
		)
	}
}
