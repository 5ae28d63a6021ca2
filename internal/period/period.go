// Package period maps instants to payroll periods and back.
//
// A payroll for month M is always created during month M+1, so the period
// of a payroll is the calendar month preceding its creation instant and the
// creation window of a period is the month that follows it.
package period

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"contractor-erp/internal/shared/apperror"
)

const tokenLayout = "%02d-%04d"

var tokenPattern = regexp.MustCompile(`^(\d{2})-(\d{4})$`)

var ErrInvalidPeriod = apperror.New(
	apperror.CodeInvalidInput,
	"invalid period format, expected MM-YYYY",
	http.StatusBadRequest,
)

type Period struct {
	Month time.Month
	Year  int
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From        time.Time
	To          time.Time
	DaysInMonth int
}

// Window is a half-open range of instants [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func New(month, year int) (Period, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Month: time.Month(month), Year: year}, nil
}

// Parse reads a "MM-YYYY" token.
func Parse(token string) (Period, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return Period{}, ErrInvalidPeriod
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	return New(month, year)
}

func (p Period) String() string {
	return fmt.Sprintf(tokenLayout, int(p.Month), p.Year)
}

func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Month: time.January, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Month: time.December, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// DaysInMonth is the real length of the month, leap years included.
func (p Period) DaysInMonth() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateRange returns the first and last day of the period as UTC calendar
// dates, the representation attendance dates are stored in.
func (p Period) DateRange() DateRange {
	days := p.DaysInMonth()
	return DateRange{
		From:        time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(p.Year, p.Month, days, 0, 0, 0, 0, time.UTC),
		DaysInMonth: days,
	}
}

type Resolver struct {
	loc *time.Location
}

func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Resolve returns the period a payroll created at t covers.
func (r *Resolver) Resolve(t time.Time) Period {
	local := t.In(r.loc)
	return Period{Month: local.Month(), Year: local.Year()}.Previous()
}

// CreationWindow is the month during which payroll for p is created.
func (r *Resolver) CreationWindow(p Period) Window {
	next := p.Next()
	start := time.Date(next.Year, next.Month, 1, 0, 0, 0, 0, r.loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// YearCreationWindow spans the creation windows of January to December of
// year.
func (r *Resolver) YearCreationWindow(year int) Window {
	return Window{
		Start: r.CreationWindow(Period{Month: time.January, Year: year}).Start,
		End:   r.CreationWindow(Period{Month: time.December, Year: year}).End,
	}
}
