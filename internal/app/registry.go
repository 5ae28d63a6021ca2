package app

import (
	"context"
	"net/http"

	"contractor-erp/internal/attendance"
	"contractor-erp/internal/config"
	"contractor-erp/internal/expense"
	"contractor-erp/internal/messaging/kafka"
	"contractor-erp/internal/middleware"
	"contractor-erp/internal/overtime"
	"contractor-erp/internal/payroll"
	"contractor-erp/internal/period"
	"contractor-erp/internal/rbac"
	"contractor-erp/internal/rbac/infra"
	"contractor-erp/internal/report"
	"contractor-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(ctx context.Context, router *gin.Engine, cfg *config.Config, in *resources, logger *zap.Logger) error {
	resolver := period.NewResolver(cfg.App.Timezone)

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(in.gormDB)
	expenseRepo := expense.NewRepository(in.gormDB)
	payrollRepo := payroll.NewRepository(in.gormDB)
	rbacRepo := rbac.NewRepository(in.gormDB)
	outboxRepo := kafka.NewOutboxRepository(in.sqlDB)

	// --- RBAC ---
	enforcer, err := infra.NewEnforcer("")
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.Reload(ctx); err != nil {
		return err
	}

	// --- Services ---
	attendanceService := attendance.NewService(in.sqlDB, attendanceRepo, logger)
	expenseService := expense.NewService(expenseRepo, logger)
	calculator := overtime.NewCalculator(attendanceRepo, resolver, cfg.Payroll.RoundRateFirst, logger)
	payrollService := payroll.NewService(payroll.Deps{
		DB:         in.sqlDB,
		Repo:       payrollRepo,
		Profiles:   expenseService,
		Calculator: calculator,
		Resolver:   resolver,
		Outbox:     outboxRepo,
		Redis:      in.redis,
	}, logger)
	reportService := report.NewService(payrollRepo, attendanceService, resolver, in.redis, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	expenseHandler := expense.NewHandler(expenseService)
	overtimeHandler := overtime.NewHandler(calculator, expenseService)
	payrollHandler := payroll.NewHandler(payrollService)
	reportHandler := report.NewHandler(reportService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes ---
	router.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	auth := middleware.Auth(cfg.JWT.Secret)
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(cfg.Limits.PerSecond), cfg.Limits.Burst))
	{
		attendance.RegisterRoutes(api, attendanceHandler, auth, rbacService)
		expense.RegisterRoutes(api, expenseHandler, auth, rbacService)
		overtime.RegisterRoutes(api, overtimeHandler, auth, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, auth, rbacService, in.redis)
		report.RegisterRoutes(api, reportHandler, auth, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, auth)
	}

	return nil
}

// BuildApp connects infrastructure and mounts every module on router. The
// returned function releases the connections.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L()

	in, err := connectInfra(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.App.AutoMigrate {
		if err := Migrate(ctx, in.gormDB); err != nil {
			in.Close()
			return nil, err
		}
		logger.Info("database migrated")
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
	)

	if err := registerModules(ctx, router, cfg, in, logger); err != nil {
		in.Close()
		return nil, err
	}

	return in.Close, nil
}
