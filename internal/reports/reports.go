// Package reports computes the read models the presentation layer
// renders. Everything here is a pure function over a snapshot; nothing
// is cached, results are recomputed per call against the clock passed
// in.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfarias/grana/internal/models"
)

const dateLayout = "2006-01-02"

// Period selects the date window a transaction list is filtered to.
type Period string

const (
	PeriodAll        Period = "all"
	PeriodToday      Period = "today"
	PeriodLast7Days  Period = "7days"
	PeriodLast30Days Period = "30days"
	PeriodLast3Mon   Period = "3months"
	PeriodCustom     Period = "custom"
)

// FilterByPeriod keeps the transactions inside the window ending at
// now. Window starts are inclusive: a transaction dated exactly seven
// days before now is part of the 7-day window. Dates are compared as
// ISO strings, which order the same as the calendar.
func FilterByPeriod(txs []models.Transaction, period Period, customDate string, now time.Time) []models.Transaction {
	today := now.Format(dateLayout)

	var keep func(date string) bool
	switch period {
	case PeriodToday:
		keep = func(date string) bool { return date == today }
	case PeriodLast7Days:
		cutoff := now.AddDate(0, 0, -7).Format(dateLayout)
		keep = func(date string) bool { return date >= cutoff }
	case PeriodLast30Days:
		cutoff := now.AddDate(0, 0, -30).Format(dateLayout)
		keep = func(date string) bool { return date >= cutoff }
	case PeriodLast3Mon:
		cutoff := now.AddDate(0, -3, 0).Format(dateLayout)
		keep = func(date string) bool { return date >= cutoff }
	case PeriodCustom:
		keep = func(date string) bool { return date == customDate }
	default:
		return txs
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if keep(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// IncomeTotal sums the income transactions.
func IncomeTotal(txs []models.Transaction) decimal.Decimal {
	return sumByType(txs, models.Income)
}

// ExpenseTotal sums the expense transactions.
func ExpenseTotal(txs []models.Transaction) decimal.Decimal {
	return sumByType(txs, models.Expense)
}

// Balance is income minus expenses.
func Balance(txs []models.Transaction) decimal.Decimal {
	return IncomeTotal(txs).Sub(ExpenseTotal(txs))
}

func sumByType(txs []models.Transaction, kind models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Type == kind {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// ExpensesByCategory groups expense amounts by category for charting.
func ExpensesByCategory(txs []models.Transaction) map[models.Category]decimal.Decimal {
	out := make(map[models.Category]decimal.Decimal)
	for _, t := range txs {
		if t.Type != models.Expense {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}

// LateBills returns the unpaid bills whose due day has passed this
// month. Due dates carry only a day of month, so this comparison is
// blind to month boundaries; a bill due on the 5th stops looking late
// again every 1st.
func LateBills(bills []models.Bill, now time.Time) []models.Bill {
	day := now.Day()
	out := make([]models.Bill, 0, len(bills))
	for _, b := range bills {
		if !b.IsPaid && b.DueDate < day {
			out = append(out, b)
		}
	}
	return out
}

// UpcomingBills returns the unpaid bills due today or later this
// month, under the same day-of-month caveat as LateBills.
func UpcomingBills(bills []models.Bill, now time.Time) []models.Bill {
	day := now.Day()
	out := make([]models.Bill, 0, len(bills))
	for _, b := range bills {
		if !b.IsPaid && b.DueDate >= day {
			out = append(out, b)
		}
	}
	return out
}

// GoalProgress is the percentage of the target reached, capped at 100.
// A zero or negative target reads as 0 rather than dividing by zero.
func GoalProgress(g models.Goal) float64 {
	if g.TargetAmount.Sign() <= 0 {
		return 0
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		return 100
	}
	return pct
}

// SuggestedMonthlySaving spreads the remaining amount over the whole
// months left until the deadline. Past or current-month deadlines
// suggest the full remaining amount.
func SuggestedMonthlySaving(g models.Goal, now time.Time) decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.Sign() <= 0 {
		return decimal.Zero
	}
	months := monthsUntil(now, g.Deadline)
	if months <= 0 {
		return remaining
	}
	return remaining.Div(decimal.NewFromInt(int64(months))).Round(2)
}

// monthsUntil is the whole-month difference between now and an ISO
// deadline; unparseable deadlines count as already due.
func monthsUntil(now time.Time, deadline string) int {
	d, err := time.Parse(dateLayout, deadline)
	if err != nil {
		return 0
	}
	months := (d.Year()-now.Year())*12 + int(d.Month()) - int(now.Month())
	if d.Day() < now.Day() {
		months--
	}
	return months
}
