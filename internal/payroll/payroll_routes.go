package payroll

import (
	"contractor-erp/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	create := []gin.HandlerFunc{
		middleware.RateLimitByUser(0.5, 3),
		middleware.RBACAuthorize(rbacService, "payroll", "create"),
	}
	if len(rdb) > 0 && rdb[0] != nil {
		create = append(create, middleware.Idempotency(rdb[0]))
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(auth)
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payrolls.POST("", append(create, handler.Create)...)
		payrolls.POST("/preview", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Preview)
		payrolls.PATCH("/:id", middleware.RBACAuthorize(rbacService, "payroll", "update"), handler.Update)
		payrolls.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), handler.Delete)
	}
}
