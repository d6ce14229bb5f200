package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfarias/grana/internal/models"
)

// Summary is the dashboard headline view of a transaction window.
type Summary struct {
	Income     decimal.Decimal                     `json:"income"`
	Expense    decimal.Decimal                     `json:"expense"`
	Balance    decimal.Decimal                     `json:"balance"`
	ByCategory map[models.Category]decimal.Decimal `json:"byCategory"`
}

func BuildSummary(txs []models.Transaction) Summary {
	income := IncomeTotal(txs)
	expense := ExpenseTotal(txs)
	return Summary{
		Income:     income,
		Expense:    expense,
		Balance:    income.Sub(expense),
		ByCategory: ExpensesByCategory(txs),
	}
}

// GoalReport pairs a goal with its derived progress figures.
type GoalReport struct {
	models.Goal
	Progress         float64         `json:"progress"`
	SuggestedMonthly decimal.Decimal `json:"suggestedMonthly"`
}

func BuildGoalReports(goals []models.Goal, now time.Time) []GoalReport {
	out := make([]GoalReport, len(goals))
	for i, g := range goals {
		out[i] = GoalReport{
			Goal:             g,
			Progress:         GoalProgress(g),
			SuggestedMonthly: SuggestedMonthlySaving(g, now),
		}
	}
	return out
}

// BillsOverview splits the unpaid bills into late and still-upcoming.
type BillsOverview struct {
	Late     []models.Bill `json:"late"`
	Upcoming []models.Bill `json:"upcoming"`
}

func BuildBillsOverview(bills []models.Bill, now time.Time) BillsOverview {
	return BillsOverview{
		Late:     LateBills(bills, now),
		Upcoming: UpcomingBills(bills, now),
	}
}
