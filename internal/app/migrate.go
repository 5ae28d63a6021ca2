package app

import (
	"context"

	"contractor-erp/internal/attendance"
	"contractor-erp/internal/messaging/kafka"
	"contractor-erp/internal/payroll"
	"contractor-erp/internal/rbac"

	"gorm.io/gorm"
)

// Migrate creates the tables this service owns. employees and
// employee_expenses belong to the wider ERP and are only read here.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&attendance.Attendance{},
		&payroll.PayrollRecord{},
		&rbac.RolePermission{},
		&kafka.OutboxRecord{},
	); err != nil {
		return err
	}
	return rbac.NewRepository(db).Seed(ctx, rbac.DefaultPolicies)
}
