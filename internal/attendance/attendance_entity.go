package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	RecordTypeNormal  = "NORMAL"
	RecordTypeProject = "PROJECT"
)

const uniqueEmployeeDateType = "uq_attendance_employee_date_type"

type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date_type,priority:1"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date_type,priority:2"`
	RecordType     string       `gorm:"column:record_type;type:varchar(20);not null;default:'NORMAL';uniqueIndex:uq_attendance_employee_date_type,priority:3"`
	Present        bool         `gorm:"column:present;not null;default:false"`
	IsPaidLeave    bool         `gorm:"column:is_paid_leave;not null;default:false"`
	WorkingHours   float64      `gorm:"column:working_hours;type:numeric(5,2);not null;default:0"`
	OvertimeHours  float64      `gorm:"column:overtime_hours;type:numeric(5,2);not null;default:0"`
	ProjectRef     *string      `gorm:"column:project_ref;type:varchar(100)"`
	Notes          *string      `gorm:"column:notes;type:text"`
	CreatedBy      *uuid.UUID   `gorm:"column:created_by;type:uuid"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendance_records"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
