package attendance

import (
	"context"
	"database/sql"
	"time"

	"contractor-erp/internal/shared/connection"
	"contractor-erp/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByEmployeeDateType(ctx context.Context, employeeID string, date time.Time, recordType string) (*Attendance, error)
	FindByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time, recordType string) ([]Attendance, error)
	FindAll(ctx context.Context, filter QueryFilter) ([]Attendance, error)
	FindPresentInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type QueryFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	RecordType string
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit("Employee").Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit("Employee").Save(a).Error
}

func (r *repository) FindByEmployeeDateType(ctx context.Context, employeeID string, date time.Time, recordType string) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Scopes(scope.Employee(employeeID)).
		Where("attendance_date = ?", date).
		Where("record_type = ?", recordType).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time, recordType string) ([]Attendance, error) {
	return r.FindAll(ctx, QueryFilter{
		EmployeeID: employeeID,
		From:       &from,
		To:         &to,
		RecordType: recordType,
	})
}

func (r *repository) FindAll(ctx context.Context, filter QueryFilter) ([]Attendance, error) {
	db := r.conn(ctx).Preload("Employee")

	if filter.EmployeeID != "" {
		db = db.Scopes(scope.Employee(filter.EmployeeID))
	}
	if filter.From != nil {
		db = db.Where("attendance_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("attendance_date <= ?", *filter.To)
	}
	if filter.RecordType != "" {
		db = db.Where("record_type = ?", filter.RecordType)
	}

	var rows []Attendance
	err := db.Order("attendance_date ASC, record_type ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindPresentInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Scopes(scope.Employee(employeeID), scope.DateBetween("attendance_date", from, to)).
		Where("present = ?", true).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&EmployeeRef{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
