package models

import "github.com/shopspring/decimal"

type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Category is the closed set of spending categories. Values keep the
// original pt-BR labels because that is what lives in the backend rows.
type Category string

const (
	CategoryFood      Category = "Alimentação"
	CategoryTransport Category = "Transporte"
	CategoryLeisure   Category = "Lazer"
	CategoryHousing   Category = "Casa"
	CategoryEducation Category = "Educação"
	CategoryHealth    Category = "Saúde"
	CategorySalary    Category = "Salário"
	CategoryExtra     Category = "Extra"
	CategoryOther     Category = "Outros"
)

var Categories = []Category{
	CategoryFood, CategoryTransport, CategoryLeisure, CategoryHousing,
	CategoryEducation, CategoryHealth, CategorySalary, CategoryExtra,
	CategoryOther,
}

// PaymentMethod is the closed set of payment instruments.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Dinheiro"
	PaymentPix    PaymentMethod = "Pix"
	PaymentCredit PaymentMethod = "Cartão de Crédito"
	PaymentDebit  PaymentMethod = "Cartão de Débito"
	PaymentBoleto PaymentMethod = "Boleto"
)

var PaymentMethods = []PaymentMethod{
	PaymentCash, PaymentPix, PaymentCredit, PaymentDebit, PaymentBoleto,
}

// Transaction is a single money movement. The ID is assigned by the
// backend on insert; between the optimistic insert and the confirmation
// it holds a locally generated temporary id.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Category      Category        `json:"category"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Description   string          `json:"description,omitempty"`
}

// TransactionDraft carries the user-supplied fields of a transaction
// before the store assigns an id.
type TransactionDraft struct {
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Category      Category        `json:"category"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Description   string          `json:"description,omitempty"`
}
