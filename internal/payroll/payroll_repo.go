package payroll

import (
	"context"
	"database/sql"

	"contractor-erp/internal/period"
	"contractor-erp/internal/shared/connection"
	"contractor-erp/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *PayrollRecord) error
	FindByID(ctx context.Context, id string) (*PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, employeeID, period string, excludeID string) (bool, error)
	Update(ctx context.Context, record *PayrollRecord) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context, filter QueryFilter) ([]PayrollRecord, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

// QueryFilter selects payroll rows. Every window restricts created_at.
type QueryFilter struct {
	EmployeeID string
	Period     string
	Windows    []period.Window
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, record *PayrollRecord) error {
	return r.conn(ctx).Omit("Employee").Create(record).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.conn(ctx).
		Preload("Employee").
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID, period string, excludeID string) (bool, error) {
	db := r.conn(ctx).
		Model(&PayrollRecord{}).
		Scopes(scope.Employee(employeeID)).
		Where("period = ?", period)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, record *PayrollRecord) error {
	res := r.conn(ctx).
		Model(record).
		Select("*").
		Omit("ID", "Employee", "Period", "Overtime", "OvertimeHours", "OvertimeRate", "CreatedBy", "CreatedAt").
		Updates(record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&PayrollRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]PayrollRecord, error) {
	db := r.conn(ctx).Preload("Employee")
	if filter.EmployeeID != "" {
		db = db.Scopes(scope.Employee(filter.EmployeeID))
	}
	if filter.Period != "" {
		db = db.Where("period = ?", filter.Period)
	}
	for _, w := range filter.Windows {
		db = db.Scopes(scope.CreatedWithin(w.Start, w.End))
	}

	var records []PayrollRecord
	err := db.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&EmployeeRef{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
