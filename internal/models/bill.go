package models

import "github.com/shopspring/decimal"

// Bill is a recurring or one-off obligation. DueDate is a day of month
// in [1,31] with no month or year component, so lateness checks only
// compare day-of-month. That matches the backend schema; cross-month
// detection is known to be coarse.
type Bill struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     int             `json:"dueDate"`
	IsRecurring bool            `json:"isRecurring"`
	IsPaid      bool            `json:"isPaid"`
	PaidDate    string          `json:"paidDate,omitempty"` // YYYY-MM of the last payment
}

type BillDraft struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     int             `json:"dueDate"`
	IsRecurring bool            `json:"isRecurring"`
}
