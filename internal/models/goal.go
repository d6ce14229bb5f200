package models

import "github.com/shopspring/decimal"

// Goal is a savings target. CurrentAmount only ever grows; there is no
// withdraw operation.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"` // YYYY-MM-DD
}

type GoalDraft struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     string          `json:"deadline"`
}
