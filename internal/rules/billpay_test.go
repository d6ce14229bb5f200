package rules

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lfarias/grana/internal/models"
)

func TestBillPaymentTransaction(t *testing.T) {
	bill := models.Bill{
		ID:     "bill-1",
		Name:   "Internet",
		Amount: decimal.NewFromInt(150),
	}

	draft := BillPaymentTransaction(bill, "2025-08-20")

	if draft.Type != models.Expense {
		t.Fatalf("type = %q, want expense", draft.Type)
	}
	if !draft.Amount.Equal(bill.Amount) {
		t.Fatalf("amount = %s, want %s", draft.Amount, bill.Amount)
	}
	if draft.Date != "2025-08-20" {
		t.Fatalf("date = %q", draft.Date)
	}
	if draft.Category != models.CategoryHousing || draft.PaymentMethod != models.PaymentBoleto {
		t.Fatalf("defaults wrong: %+v", draft)
	}
	if draft.Description != "Pagamento: Internet" {
		t.Fatalf("description = %q", draft.Description)
	}
}
