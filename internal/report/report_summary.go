package report

import (
	"contractor-erp/internal/payroll"

	"github.com/shopspring/decimal"
)

const unassignedRole = "unassigned"

type roleAcc struct {
	count int
	total decimal.Decimal
}

// Summarize folds payroll records into dashboard totals. Averages are
// derived only after every record has been added.
func Summarize(records []payroll.PayrollRecord) PayrollSummary {
	total, otHours, otAmount := decimal.Zero, decimal.Zero, decimal.Zero
	roles := map[string]*roleAcc{}

	for _, r := range records {
		total = total.Add(r.Net)
		otHours = otHours.Add(r.OvertimeHours)
		otAmount = otAmount.Add(r.Overtime)

		role := unassignedRole
		if r.Employee != nil && r.Employee.Role != "" {
			role = r.Employee.Role
		}
		acc, ok := roles[role]
		if !ok {
			acc = &roleAcc{total: decimal.Zero}
			roles[role] = acc
		}
		acc.count++
		acc.total = acc.total.Add(r.Net)
	}

	byRole := make(map[string]RoleTotals, len(roles))
	for role, acc := range roles {
		byRole[role] = RoleTotals{
			Count:         acc.count,
			TotalSalary:   acc.total.StringFixed(2),
			AverageSalary: average(acc.total, acc.count).StringFixed(2),
		}
	}

	return PayrollSummary{
		Count:               len(records),
		TotalPayroll:        total.StringFixed(2),
		AverageSalary:       average(total, len(records)).StringFixed(2),
		TotalOvertimeHours:  otHours.StringFixed(2),
		TotalOvertimeAmount: otAmount.StringFixed(2),
		ByRole:              byRole,
	}
}

func average(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}
