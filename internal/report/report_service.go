package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"contractor-erp/internal/attendance"
	"contractor-erp/internal/payroll"
	payrollerrors "contractor-erp/internal/payroll/errors"
	"contractor-erp/internal/period"
	"contractor-erp/internal/shared/apperror"
	"contractor-erp/internal/shared/contextutil"
	"contractor-erp/internal/shared/dberror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	summaryKeyPrefix = "report:payroll_summary"
	summaryTTL       = 5 * time.Minute
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	PayrollSummary(ctx context.Context, req payroll.ListPayrollFilterRequest) (PayrollSummary, error)
	Payslip(ctx context.Context, payrollID string) (Payslip, error)
}

type PayrollReader interface {
	FindByID(ctx context.Context, id string) (*payroll.PayrollRecord, error)
	FindAll(ctx context.Context, filter payroll.QueryFilter) ([]payroll.PayrollRecord, error)
}

type AttendanceSummaries interface {
	GetSummary(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error)
}

type service struct {
	payrolls   PayrollReader
	attendance AttendanceSummaries
	resolver   *period.Resolver
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(
	payrolls PayrollReader,
	summaries AttendanceSummaries,
	resolver *period.Resolver,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		payrolls:   payrolls,
		attendance: summaries,
		resolver:   resolver,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

// SummaryKey is the cache key of a filtered summary at a cache version.
func SummaryKey(version int64, req payroll.ListPayrollFilterRequest) string {
	return fmt.Sprintf("%s:v%d:emp=%s:period=%s:m=%d:y=%d:from=%s:to=%s",
		summaryKeyPrefix, version, req.EmployeeID, req.Period, req.Month, req.Year, req.From, req.To)
}

func (s *service) PayrollSummary(ctx context.Context, req payroll.ListPayrollFilterRequest) (PayrollSummary, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	filter, err := payroll.ResolveFilter(s.resolver, req)
	if err != nil {
		return PayrollSummary{}, err
	}

	load := func() (PayrollSummary, error) {
		records, err := s.payrolls.FindAll(ctx, filter)
		if err != nil {
			return PayrollSummary{}, apperror.Internal(err)
		}
		return Summarize(records), nil
	}

	if s.rdb == nil {
		return load()
	}

	version, err := s.rdb.Get(ctx, payroll.SummaryCacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		log.Warn("summary cache unavailable", zap.Error(err))
		return load()
	}
	cacheKey := SummaryKey(version, req)

	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var resp PayrollSummary
		if json.Unmarshal([]byte(cached), &resp) == nil {
			log.Debug("payroll summary cache hit", zap.String("key", cacheKey))
			return resp, nil
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := load()
		if err != nil {
			return nil, err
		}
		if jsonData, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, jsonData, summaryTTL).Err(); err != nil {
				log.Warn("store payroll summary failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		return resp, nil
	})
	if err != nil {
		return PayrollSummary{}, err
	}
	return v.(PayrollSummary), nil
}

// Payslip assembles the figures a payslip renderer needs. The attendance
// summary is best effort and left out when it cannot be loaded.
func (s *service) Payslip(ctx context.Context, payrollID string) (Payslip, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(payrollID); err != nil {
		return Payslip{}, payrollerrors.ErrPayrollNotFound
	}
	r, err := s.payrolls.FindByID(ctx, payrollID)
	if err != nil {
		if dberror.IsNotFound(err) {
			return Payslip{}, payrollerrors.ErrPayrollNotFound
		}
		return Payslip{}, apperror.Internal(err)
	}

	slip := Payslip{
		PayrollID:            r.ID.String(),
		EmployeeID:           r.EmployeeID.String(),
		LabourCard:           r.LabourCard,
		LabourCardPersonalNo: r.LabourCardPersonalNo,
		Period:               r.Period,
		Earnings: []Line{
			line("Basic Salary", r.BasicSalary),
			line("Allowance", r.Allowance),
			line("Transport", r.Transport),
			line("Overtime", r.Overtime),
			line("Special OT", r.SpecialOT),
			line("Medical", r.Medical),
			line("Bonus", r.Bonus),
		},
		Deductions: []Line{
			line("Mess", r.Mess),
			line("Salary Advance", r.SalaryAdvance),
			line("Loan Deduction", r.LoanDeduction),
			line("Fine", r.FineAmount),
			line("Visa Deduction", r.VisaDeduction),
		},
		Gross:           r.Gross().StringFixed(2),
		TotalDeductions: r.TotalDeductions().StringFixed(2),
		Net:             r.Net.StringFixed(2),
		OvertimeHours:   r.OvertimeHours.StringFixed(2),
		OvertimeRate:    r.OvertimeRate.StringFixed(2),
		Remark:          r.Remark,
	}
	if r.Employee != nil {
		slip.EmployeeName = r.Employee.FullName
		slip.Role = r.Employee.Role
	}

	p, err := period.Parse(r.Period)
	if err == nil && s.attendance != nil {
		att, err := s.attendance.GetSummary(ctx, attendance.SummaryRequest{
			EmployeeID: r.EmployeeID.String(),
			Month:      int(p.Month),
			Year:       p.Year,
		})
		if err != nil {
			log.Warn("payslip attendance summary unavailable",
				zap.String("payroll_id", payrollID),
				zap.Error(err),
			)
		} else {
			slip.Attendance = &att.Summary
		}
	}

	return slip, nil
}

func line(label string, amount decimal.Decimal) Line {
	return Line{Label: label, Amount: amount.StringFixed(2)}
}
