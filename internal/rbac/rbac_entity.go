package rbac

import "github.com/google/uuid"

const Wildcard = "*"

type RolePermission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role     string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_role_permission,priority:1"`
	Resource string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_role_permission,priority:2"`
	Action   string    `gorm:"type:varchar(32);not null;uniqueIndex:uq_role_permission,priority:3"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

func grant(role, resource, action string) RolePermission {
	return RolePermission{Role: role, Resource: resource, Action: action}
}

// DefaultPolicies is seeded into an empty role_permissions table.
var DefaultPolicies = []RolePermission{
	grant("admin", Wildcard, Wildcard),

	grant("payroll_officer", "payroll", Wildcard),
	grant("payroll_officer", "report", "read"),
	grant("payroll_officer", "expense", "read"),
	grant("payroll_officer", "attendance", "read"),

	grant("hr", "attendance", Wildcard),
	grant("hr", "expense", "read"),
	grant("hr", "report", "read"),

	grant("supervisor", "attendance", "create"),
	grant("supervisor", "attendance", "read"),
}
