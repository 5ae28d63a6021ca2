package payroll

import (
	"time"

	payrollerrors "contractor-erp/internal/payroll/errors"
	"contractor-erp/internal/period"
)

const dateLayout = "2006-01-02"

// ResolveFilter turns list query parameters into a repository filter.
// month and year select payroll by its creation window, year alone by the
// windows of the whole year, and from/to by an inclusive range of creation
// days in the resolver location.
func ResolveFilter(resolver *period.Resolver, req ListPayrollFilterRequest) (QueryFilter, error) {
	filter := QueryFilter{EmployeeID: req.EmployeeID}

	if req.Period != "" {
		p, err := period.Parse(req.Period)
		if err != nil {
			return QueryFilter{}, err
		}
		filter.Period = p.String()
	}

	switch {
	case req.Month != 0 && req.Year == 0:
		return QueryFilter{}, payrollerrors.ErrMonthWithoutYear
	case req.Month != 0:
		p, err := period.New(req.Month, req.Year)
		if err != nil {
			return QueryFilter{}, err
		}
		filter.Windows = append(filter.Windows, resolver.CreationWindow(p))
	case req.Year != 0:
		filter.Windows = append(filter.Windows, resolver.YearCreationWindow(req.Year))
	}

	if req.From != "" || req.To != "" {
		w, err := dayRange(resolver.Location(), req.From, req.To)
		if err != nil {
			return QueryFilter{}, err
		}
		filter.Windows = append(filter.Windows, w)
	}

	return filter, nil
}

func dayRange(loc *time.Location, from, to string) (period.Window, error) {
	w := period.Window{
		Start: time.Date(1, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(9999, time.January, 1, 0, 0, 0, 0, loc),
	}
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return period.Window{}, payrollerrors.ErrInvalidDateFormat
		}
		w.Start = t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return period.Window{}, payrollerrors.ErrInvalidDateFormat
		}
		w.End = t.AddDate(0, 0, 1)
	}
	if !w.Start.Before(w.End) {
		return period.Window{}, payrollerrors.ErrInvalidDateRange
	}
	return w, nil
}
