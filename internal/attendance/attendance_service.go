package attendance

import (
	"context"
	"database/sql"
	"time"

	attendanceerrors "contractor-erp/internal/attendance/errors"
	"contractor-erp/internal/period"
	"contractor-erp/internal/shared/apperror"
	"contractor-erp/internal/shared/contextutil"
	"contractor-erp/internal/shared/dberror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, actorID string, req RecordAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, filter ListAttendanceFilterRequest) ([]AttendanceResponse, error)
	GetSummary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Record writes the attendance of one employee for one day and record type.
// An existing row for the same key is overwritten.
func (s *service) Record(ctx context.Context, actorID string, req RecordAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	row, err := buildRecord(actorID, req)
	if err != nil {
		return AttendanceResponse{}, err
	}
	row, err = Normalize(row)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, apperror.Internal(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, row.EmployeeID.String())
	if err != nil {
		return AttendanceResponse{}, apperror.Internal(err)
	}
	if !exists {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	existing, err := qtx.FindByEmployeeDateType(ctx, row.EmployeeID.String(), row.AttendanceDate, row.RecordType)
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
		if row.CreatedBy == nil {
			row.CreatedBy = existing.CreatedBy
		}
		err = qtx.Update(ctx, &row)
	case dberror.IsNotFound(err):
		row.ID = uuid.New()
		err = qtx.Create(ctx, &row)
	}
	if err != nil {
		log.Error("record attendance persist failed",
			zap.String("employee_id", row.EmployeeID.String()),
			zap.String("date", row.AttendanceDate.Format(dateLayout)),
			zap.Error(err),
		)
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	log.Debug("attendance recorded",
		zap.String("employee_id", row.EmployeeID.String()),
		zap.String("date", row.AttendanceDate.Format(dateLayout)),
		zap.String("record_type", row.RecordType),
		zap.Float64("overtime_hours", row.OvertimeHours),
	)
	return mapToResponse(row), nil
}

func (s *service) GetAll(ctx context.Context, req ListAttendanceFilterRequest) ([]AttendanceResponse, error) {
	filter := QueryFilter{EmployeeID: req.EmployeeID, RecordType: req.RecordType}

	if req.From != "" {
		from, err := parseDate(req.From)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := parseDate(req.To)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetSummary(ctx context.Context, req SummaryRequest) (SummaryResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return SummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if req.RecordType != "" && !validRecordType(req.RecordType) {
		return SummaryResponse{}, attendanceerrors.ErrInvalidRecordType
	}
	p, err := period.New(req.Month, req.Year)
	if err != nil {
		return SummaryResponse{}, err
	}

	rng := p.DateRange()
	rows, err := s.repo.FindByEmployeeInRange(ctx, req.EmployeeID, rng.From, rng.To, req.RecordType)
	if err != nil {
		return SummaryResponse{}, apperror.Internal(err)
	}

	return SummaryResponse{
		EmployeeID: req.EmployeeID,
		Period:     p.String(),
		Records:    mapToListResponse(rows),
		Summary:    Summarize(rows),
	}, nil
}

func buildRecord(actorID string, req RecordAttendanceRequest) (Attendance, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return Attendance{}, attendanceerrors.ErrInvalidEmployeeID
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return Attendance{}, err
	}

	recordType := req.RecordType
	if recordType == "" {
		recordType = RecordTypeNormal
	}
	if !validRecordType(recordType) {
		return Attendance{}, attendanceerrors.ErrInvalidRecordType
	}

	row := Attendance{
		EmployeeID:     employeeID,
		AttendanceDate: date,
		RecordType:     recordType,
		Present:        req.Present,
		IsPaidLeave:    req.IsPaidLeave,
		WorkingHours:   req.WorkingHours,
		ProjectRef:     req.ProjectRef,
		Notes:          req.Notes,
	}

	if actorID != "" {
		actor, err := uuid.Parse(actorID)
		if err != nil {
			return Attendance{}, attendanceerrors.ErrInvalidActorID
		}
		row.CreatedBy = &actor
	}

	return row, nil
}

func validRecordType(v string) bool {
	return v == RecordTypeNormal || v == RecordTypeProject
}

// parseDate keeps attendance dates as UTC calendar days.
func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		Weekday:        a.AttendanceDate.Weekday().String(),
		RecordType:     a.RecordType,
		Present:        a.Present,
		IsPaidLeave:    a.IsPaidLeave,
		WorkingHours:   a.WorkingHours,
		OvertimeHours:  a.OvertimeHours,
		ProjectRef:     a.ProjectRef,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
