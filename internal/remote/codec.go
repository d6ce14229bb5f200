package remote

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/lfarias/grana/internal/models"
)

// The codec is total: a missing or mistyped column decodes to the zero
// value and a zero-valued optional field is simply not encoded. No
// business logic lives here, only the camelCase⇄snake_case renames.

func EncodeTransaction(ownerID string, d models.TransactionDraft) Row {
	row := Row{
		"user_id":        ownerID,
		"type":           string(d.Type),
		"amount":         d.Amount.InexactFloat64(),
		"date":           d.Date,
		"category":       string(d.Category),
		"payment_method": string(d.PaymentMethod),
	}
	if d.Description != "" {
		row["description"] = d.Description
	}
	return row
}

func DecodeTransaction(row Row) models.Transaction {
	return models.Transaction{
		ID:            rowString(row, "id"),
		Type:          models.TransactionType(rowString(row, "type")),
		Amount:        rowDecimal(row, "amount"),
		Date:          rowString(row, "date"),
		Category:      models.Category(rowString(row, "category")),
		PaymentMethod: models.PaymentMethod(rowString(row, "payment_method")),
		Description:   rowString(row, "description"),
	}
}

func EncodeBill(ownerID string, d models.BillDraft) Row {
	return Row{
		"user_id":      ownerID,
		"name":         d.Name,
		"amount":       d.Amount.InexactFloat64(),
		"due_date":     int64(d.DueDate),
		"is_recurring": d.IsRecurring,
		"is_paid":      false,
	}
}

func DecodeBill(row Row) models.Bill {
	return models.Bill{
		ID:          rowString(row, "id"),
		Name:        rowString(row, "name"),
		Amount:      rowDecimal(row, "amount"),
		DueDate:     rowInt(row, "due_date"),
		IsRecurring: rowBool(row, "is_recurring"),
		IsPaid:      rowBool(row, "is_paid"),
		PaidDate:    rowString(row, "paid_date"),
	}
}

func EncodeGoal(ownerID string, d models.GoalDraft, initialDeposit decimal.Decimal) Row {
	return Row{
		"user_id":        ownerID,
		"name":           d.Name,
		"target_amount":  d.TargetAmount.InexactFloat64(),
		"current_amount": initialDeposit.InexactFloat64(),
		"deadline":       d.Deadline,
	}
}

func DecodeGoal(row Row) models.Goal {
	return models.Goal{
		ID:            rowString(row, "id"),
		Name:          rowString(row, "name"),
		TargetAmount:  rowDecimal(row, "target_amount"),
		CurrentAmount: rowDecimal(row, "current_amount"),
		Deadline:      rowString(row, "deadline"),
	}
}

// --- Column readers ---

func rowString(row Row, key string) string {
	s, _ := row[key].(string)
	return s
}

func rowBool(row Row, key string) bool {
	b, _ := row[key].(bool)
	return b
}

func rowInt(row Row, key string) int {
	switch v := row[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// rowDecimal accepts the numeric shapes backends hand back for a
// numeric column. Firestore doubles can be NaN or infinite, which
// decimal refuses; those read as zero like any other bad column.
func rowDecimal(row Row, key string) decimal.Decimal {
	switch v := row[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	return decimal.Zero
}
