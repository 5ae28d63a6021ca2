package attendance

import (
	"contractor-erp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	attendances.Use(auth)
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/summary", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetSummary)
		attendances.POST("", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.Record)
	}
}
