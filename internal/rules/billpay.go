// Package rules holds the cross-entity business rules.
package rules

import (
	"fmt"

	"github.com/lfarias/grana/internal/models"
)

// Defaults used for the transaction synthesized by a bill payment.
const (
	BillPaymentCategory = models.CategoryHousing
	BillPaymentMethod   = models.PaymentBoleto
)

// BillPaymentTransaction is the expense recorded when a bill flips from
// unpaid to paid: the bill's amount, dated the day of payment, with the
// fixed category/method defaults. It goes through the normal
// optimistic-insert path; nothing reverses it when the bill is
// un-paid later.
func BillPaymentTransaction(bill models.Bill, date string) models.TransactionDraft {
	return models.TransactionDraft{
		Type:          models.Expense,
		Amount:        bill.Amount,
		Date:          date,
		Category:      BillPaymentCategory,
		PaymentMethod: BillPaymentMethod,
		Description:   fmt.Sprintf("Pagamento: %s", bill.Name),
	}
}
