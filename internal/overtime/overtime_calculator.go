package overtime

import (
	"context"
	"fmt"
	"time"

	"contractor-erp/internal/attendance"
	"contractor-erp/internal/period"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// StandardDailyHours divides the daily wage into the hourly overtime rate.
	StandardDailyHours = 10
	fallbackDays       = 30
	moneyPlaces        = 2
)

//go:generate mockgen -source=overtime_calculator.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	FindPresentInRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error)
}

type Result struct {
	OvertimeHours  decimal.Decimal
	OvertimeAmount decimal.Decimal
	HourlyRate     decimal.Decimal
	DaysInMonth    int
	Period         period.Period
	Degraded       bool
}

type Calculator struct {
	ledger         Ledger
	resolver       *period.Resolver
	now            func() time.Time
	roundRateFirst bool
	logger         *zap.Logger
}

func NewCalculator(ledger Ledger, resolver *period.Resolver, roundRateFirst bool, logger ...*zap.Logger) *Calculator {
	l := zap.L().Named("overtime.calculator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("overtime.calculator")
	}
	return &Calculator{
		ledger:         ledger,
		resolver:       resolver,
		now:            time.Now,
		roundRateFirst: roundRateFirst,
		logger:         l,
	}
}

// WithClock replaces the time source used to resolve the payroll period.
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	cp := *c
	cp.now = now
	return &cp
}

func (c *Calculator) Resolver() *period.Resolver {
	return c.resolver
}

// Calculate computes the overtime pay of the month preceding the current
// one. It never fails: on any fault a zero result flagged as degraded is
// returned and the fault is logged. The amount is hours times the unrounded
// hourly rate, rounded once to cents; OVERTIME_ROUND_RATE_FIRST rounds the
// rate to cents before multiplying instead.
func (c *Calculator) Calculate(ctx context.Context, employeeID string, basicSalary decimal.Decimal) Result {
	return c.CalculateForPeriod(ctx, employeeID, basicSalary, c.resolver.Resolve(c.now()))
}

func (c *Calculator) CalculateForPeriod(ctx context.Context, employeeID string, basicSalary decimal.Decimal, p period.Period) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = c.degrade(employeeID, p, fmt.Errorf("panic: %v", r))
		}
	}()

	res, err := c.calculate(ctx, employeeID, basicSalary, p)
	if err != nil {
		return c.degrade(employeeID, p, err)
	}
	return res
}

func (c *Calculator) calculate(ctx context.Context, employeeID string, basicSalary decimal.Decimal, p period.Period) (Result, error) {
	if basicSalary.IsNegative() {
		return Result{}, fmt.Errorf("negative basic salary %s", basicSalary)
	}
	if p.IsZero() {
		return Result{}, fmt.Errorf("empty period")
	}

	dr := p.DateRange()
	records, err := c.ledger.FindPresentInRange(ctx, employeeID, dr.From, dr.To)
	if err != nil {
		return Result{}, fmt.Errorf("load attendance: %w", err)
	}

	hours := decimal.Zero
	for _, r := range records {
		hours = hours.Add(decimal.NewFromFloat(r.OvertimeHours))
	}

	exactRate := basicSalary.
		Div(decimal.NewFromInt(int64(dr.DaysInMonth))).
		Div(decimal.NewFromInt(StandardDailyHours))
	rate := exactRate.Round(moneyPlaces)

	amount := hours.Mul(exactRate).Round(moneyPlaces)
	if c.roundRateFirst {
		amount = hours.Mul(rate).Round(moneyPlaces)
	}

	return Result{
		OvertimeHours:  hours.Round(moneyPlaces),
		OvertimeAmount: amount,
		HourlyRate:     rate,
		DaysInMonth:    dr.DaysInMonth,
		Period:         p,
	}, nil
}

func (c *Calculator) degrade(employeeID string, p period.Period, err error) Result {
	c.logger.Warn("overtime calculation degraded to zero",
		zap.String("employee_id", employeeID),
		zap.String("period", p.String()),
		zap.Error(err),
	)
	return Zero(p)
}

// Zero is the result reported when overtime cannot be computed.
func Zero(p period.Period) Result {
	return Result{
		OvertimeHours:  decimal.Zero,
		OvertimeAmount: decimal.Zero,
		HourlyRate:     decimal.Zero,
		DaysInMonth:    fallbackDays,
		Period:         p,
		Degraded:       true,
	}
}
