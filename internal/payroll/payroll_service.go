package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"contractor-erp/internal/events"
	"contractor-erp/internal/expense"
	"contractor-erp/internal/messaging/kafka"
	"contractor-erp/internal/overtime"
	payrollerrors "contractor-erp/internal/payroll/errors"
	"contractor-erp/internal/period"
	"contractor-erp/internal/shared/apperror"
	"contractor-erp/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SummaryCacheVersionKey is bumped on every payroll write so cached
// dashboard summaries become unreachable.
const SummaryCacheVersionKey = "report:payroll_summary:version"

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	Preview(ctx context.Context, req CreatePayrollRequest) (PreviewResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	List(ctx context.Context, req ListPayrollFilterRequest) (ListResponse, error)
}

type ExpenseProfiles interface {
	Profile(ctx context.Context, employeeID string) (*expense.EmployeeExpense, error)
}

type OvertimeCalculator interface {
	CalculateForPeriod(ctx context.Context, employeeID string, basicSalary decimal.Decimal, p period.Period) overtime.Result
}

type Deps struct {
	DB         *sql.DB
	Repo       Repository
	Profiles   ExpenseProfiles
	Calculator OvertimeCalculator
	Resolver   *period.Resolver
	// Optional
	Outbox kafka.OutboxRepository
	Redis  *redis.Client
	Now    func() time.Time
}

type service struct {
	db       *sql.DB
	repo     Repository
	profiles ExpenseProfiles
	calc     OvertimeCalculator
	resolver *period.Resolver
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:       deps.DB,
		repo:     deps.Repo,
		profiles: deps.Profiles,
		calc:     deps.Calculator,
		resolver: deps.Resolver,
		outbox:   deps.Outbox,
		rdb:      deps.Redis,
		now:      now,
		logger:   l,
	}
}

// Create builds the payroll of the previous month for one employee.
func (s *service) Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	if err := validateCreateRequest(req); err != nil {
		return PayrollResponse{}, err
	}

	now := s.now()
	p := s.resolver.Resolve(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, apperror.Internal(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, res, err := s.build(ctx, qtx, req, p)
	if err != nil {
		return PayrollResponse{}, err
	}
	if res.Degraded {
		log.Warn("payroll created with zero overtime",
			zap.String("employee_id", req.EmployeeID),
			zap.String("period", p.String()),
		)
	}

	record.ID = uuid.New()
	record.CreatedBy = createdBy
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := qtx.Create(ctx, record); err != nil {
		log.Error("create payroll persist failed", zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		if err := s.queueCreated(ctx, tx, rid, record); err != nil {
			log.Error("create payroll outbox persist failed",
				zap.String("payroll_id", record.ID.String()),
				zap.Error(err),
			)
			return PayrollResponse{}, apperror.Internal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return PayrollResponse{}, apperror.Internal(err)
	}

	s.invalidateSummaries(ctx)

	log.Info("create payroll success",
		zap.String("payroll_id", record.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", record.Period),
		zap.String("net", record.Net.StringFixed(2)),
	)
	return mapToResponse(*record), nil
}

// Preview runs the create computation without writing anything.
func (s *service) Preview(ctx context.Context, req CreatePayrollRequest) (PreviewResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		return PreviewResponse{}, err
	}
	p := s.resolver.Resolve(s.now())

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return PreviewResponse{}, apperror.Internal(err)
	}
	if !exists {
		return PreviewResponse{}, payrollerrors.ErrEmployeeNotFound
	}
	taken, err := s.repo.ExistsForPeriod(ctx, req.EmployeeID, p.String(), "")
	if err != nil {
		return PreviewResponse{}, apperror.Internal(err)
	}

	record, res, err := s.compute(ctx, req, p)
	if err != nil {
		return PreviewResponse{}, err
	}
	return PreviewResponse{
		Payroll:          mapToResponse(*record),
		OvertimeDegraded: res.Degraded,
		AlreadyExists:    taken,
	}, nil
}

// build checks the employee and the period slot, then computes the record.
func (s *service) build(ctx context.Context, qtx Repository, req CreatePayrollRequest, p period.Period) (*PayrollRecord, overtime.Result, error) {
	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return nil, overtime.Result{}, apperror.Internal(err)
	}
	if !exists {
		return nil, overtime.Result{}, payrollerrors.ErrEmployeeNotFound
	}

	taken, err := qtx.ExistsForPeriod(ctx, req.EmployeeID, p.String(), "")
	if err != nil {
		return nil, overtime.Result{}, apperror.Internal(err)
	}
	if taken {
		return nil, overtime.Result{}, payrollerrors.ErrPayrollConflict
	}

	return s.compute(ctx, req, p)
}

func (s *service) compute(ctx context.Context, req CreatePayrollRequest, p period.Period) (*PayrollRecord, overtime.Result, error) {
	profile, err := s.profiles.Profile(ctx, req.EmployeeID)
	if err != nil {
		return nil, overtime.Result{}, err
	}

	res := s.calc.CalculateForPeriod(ctx, req.EmployeeID, profile.BasicSalary, p)

	employeeID, _ := uuid.Parse(req.EmployeeID)
	record := &PayrollRecord{
		EmployeeID:           employeeID,
		LabourCard:           strings.TrimSpace(req.LabourCard),
		LabourCardPersonalNo: strings.TrimSpace(req.LabourCardPersonalNo),
		Period:               p.String(),
		BasicSalary:          profile.BasicSalary,
		Allowance:            valueOr(req.Allowance, profile.Allowance),
		Overtime:             res.OvertimeAmount,
		OvertimeHours:        res.OvertimeHours,
		OvertimeRate:         res.HourlyRate,
		Remark:               req.Remark,
	}
	applyComponents(record, req.Components, false)
	record.roundAmounts()
	record.Net = record.ComputeNet()

	return record, res, nil
}

// Update revises the editable fields of a payroll. Period and overtime are
// fixed at creation and never recalculated.
func (s *service) Update(ctx context.Context, actorID, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	updatedBy, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	if req.Period != nil || req.Overtime != nil || req.Net != nil {
		log.Warn("immutable payroll fields ignored on update",
			zap.String("payroll_id", id),
			zap.Bool("period", req.Period != nil),
			zap.Bool("overtime", req.Overtime != nil),
			zap.Bool("net", req.Net != nil),
		)
		req.Period, req.Overtime, req.Net = nil, nil, nil
	}
	if err := validateMoney(append(req.Components.values(), req.BasicSalary)...); err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, apperror.Internal(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if req.EmployeeID != nil && *req.EmployeeID != record.EmployeeID.String() {
		employeeID, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
		}
		exists, err := qtx.EmployeeExists(ctx, employeeID.String())
		if err != nil {
			return PayrollResponse{}, apperror.Internal(err)
		}
		if !exists {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		taken, err := qtx.ExistsForPeriod(ctx, employeeID.String(), record.Period, record.ID.String())
		if err != nil {
			return PayrollResponse{}, apperror.Internal(err)
		}
		if taken {
			return PayrollResponse{}, payrollerrors.ErrPayrollConflict
		}
		record.EmployeeID = employeeID
		record.Employee = nil
	}

	if req.LabourCard != nil {
		record.LabourCard = strings.TrimSpace(*req.LabourCard)
	}
	if req.LabourCardPersonalNo != nil {
		record.LabourCardPersonalNo = strings.TrimSpace(*req.LabourCardPersonalNo)
	}
	if record.LabourCard == "" {
		return PayrollResponse{}, payrollerrors.ErrLabourCardRequired
	}
	if record.LabourCardPersonalNo == "" {
		return PayrollResponse{}, payrollerrors.ErrLabourCardPersonalNoRequired
	}
	if req.BasicSalary != nil {
		record.BasicSalary = *req.BasicSalary
	}
	if req.Remark != nil {
		record.Remark = req.Remark
	}
	applyComponents(record, req.Components, true)
	if record.hasNegativeAmount() {
		return PayrollResponse{}, payrollerrors.ErrInvalidMoneyValue
	}
	record.roundAmounts()

	record.Net = record.ComputeNet()
	record.UpdatedBy = &updatedBy
	record.UpdatedAt = s.now()

	if err := qtx.Update(ctx, record); err != nil {
		log.Error("update payroll persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, apperror.Internal(err)
	}

	s.invalidateSummaries(ctx)

	log.Info("update payroll success", zap.String("payroll_id", id), zap.String("net", record.Net.StringFixed(2)))
	return mapToResponse(*record), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return apperror.Internal(err)
	}

	s.invalidateSummaries(ctx)
	log.Info("delete payroll success", zap.String("payroll_id", id))
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*record), nil
}

func (s *service) List(ctx context.Context, req ListPayrollFilterRequest) (ListResponse, error) {
	filter, err := ResolveFilter(s.resolver, req)
	if err != nil {
		return ListResponse{}, err
	}

	records, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return ListResponse{}, mapRepositoryError(err)
	}

	return ListResponse{
		Items:  mapToListResponse(records),
		Totals: computeTotals(records),
	}, nil
}

func (s *service) queueCreated(ctx context.Context, tx *sql.Tx, rid string, record *PayrollRecord) error {
	event := events.PayrollCreatedEvent{
		EventType:  "payroll_created",
		RequestID:  rid,
		PayrollID:  record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		Period:     record.Period,
		Net:        record.Net.StringFixed(2),
		Overtime:   record.Overtime.StringFixed(2),
		CreatedBy:  record.CreatedBy.String(),
		OccurredAt: record.CreatedAt.UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "payroll",
		AggregateID:   record.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateSummaries(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, SummaryCacheVersionKey).Err(); err != nil {
		s.logger.Error("failed to invalidate payroll summary cache",
			zap.String("key", SummaryCacheVersionKey),
			zap.Error(err),
		)
	}
}

func validateCreateRequest(req CreatePayrollRequest) error {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return payrollerrors.ErrInvalidEmployeeID
	}
	if strings.TrimSpace(req.LabourCard) == "" {
		return payrollerrors.ErrLabourCardRequired
	}
	if strings.TrimSpace(req.LabourCardPersonalNo) == "" {
		return payrollerrors.ErrLabourCardPersonalNoRequired
	}
	return validateMoney(req.Components.values()...)
}

// validateMoney rejects negative amounts and amounts finer than a cent.
func validateMoney(values ...*decimal.Decimal) error {
	for _, v := range values {
		if v == nil {
			continue
		}
		if v.IsNegative() {
			return payrollerrors.ErrInvalidMoneyValue
		}
		if hasSubCent(*v) {
			return payrollerrors.ErrInvalidMoneyPrecision
		}
	}
	return nil
}

func (c Components) values() []*decimal.Decimal {
	return []*decimal.Decimal{
		c.Allowance, c.Transport, c.SpecialOT, c.Medical, c.Bonus,
		c.Mess, c.SalaryAdvance, c.LoanDeduction, c.FineAmount, c.VisaDeduction,
	}
}

// applyComponents copies supplied components onto r. With keep set, omitted
// components retain their current value, otherwise they become zero.
// Allowance is never reset here; create fills it from the expense profile.
func applyComponents(r *PayrollRecord, c Components, keep bool) {
	set := func(dst *decimal.Decimal, v *decimal.Decimal) {
		switch {
		case v != nil:
			*dst = *v
		case !keep:
			*dst = decimal.Zero
		}
	}
	if c.Allowance != nil {
		r.Allowance = *c.Allowance
	}
	set(&r.Transport, c.Transport)
	set(&r.SpecialOT, c.SpecialOT)
	set(&r.Medical, c.Medical)
	set(&r.Bonus, c.Bonus)
	set(&r.Mess, c.Mess)
	set(&r.SalaryAdvance, c.SalaryAdvance)
	set(&r.LoanDeduction, c.LoanDeduction)
	set(&r.FineAmount, c.FineAmount)
	set(&r.VisaDeduction, c.VisaDeduction)
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v != nil {
		return *v
	}
	return fallback
}

func computeTotals(records []PayrollRecord) Totals {
	basic, ot, deductions, net := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, r := range records {
		basic = basic.Add(r.BasicSalary)
		ot = ot.Add(r.Overtime)
		deductions = deductions.Add(r.TotalDeductions())
		net = net.Add(r.Net)
	}
	return Totals{
		Count:           len(records),
		TotalBasic:      basic.StringFixed(2),
		TotalOvertime:   ot.StringFixed(2),
		TotalDeductions: deductions.StringFixed(2),
		TotalNet:        net.StringFixed(2),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func mapToResponse(r PayrollRecord) PayrollResponse {
	resp := PayrollResponse{
		ID:                   r.ID.String(),
		EmployeeID:           r.EmployeeID.String(),
		LabourCard:           r.LabourCard,
		LabourCardPersonalNo: r.LabourCardPersonalNo,
		Period:               r.Period,
		BasicSalary:          money(r.BasicSalary),
		Allowance:            money(r.Allowance),
		Transport:            money(r.Transport),
		Overtime:             money(r.Overtime),
		SpecialOT:            money(r.SpecialOT),
		Medical:              money(r.Medical),
		Bonus:                money(r.Bonus),
		Mess:                 money(r.Mess),
		SalaryAdvance:        money(r.SalaryAdvance),
		LoanDeduction:        money(r.LoanDeduction),
		FineAmount:           money(r.FineAmount),
		VisaDeduction:        money(r.VisaDeduction),
		OvertimeHours:        money(r.OvertimeHours),
		OvertimeRate:         money(r.OvertimeRate),
		Net:                  money(r.Net),
		Remark:               r.Remark,
		CreatedBy:            r.CreatedBy.String(),
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	if !r.UpdatedAt.IsZero() {
		resp.UpdatedAt = r.UpdatedAt.Format(time.RFC3339)
	}
	if r.UpdatedBy != nil {
		v := r.UpdatedBy.String()
		resp.UpdatedBy = &v
	}
	if r.Employee != nil {
		resp.EmployeeName = r.Employee.FullName
		resp.Role = r.Employee.Role
	}
	return resp
}

func mapToListResponse(records []PayrollRecord) []PayrollResponse {
	resp := make([]PayrollResponse, len(records))
	for i, r := range records {
		resp[i] = mapToResponse(r)
	}
	return resp
}
