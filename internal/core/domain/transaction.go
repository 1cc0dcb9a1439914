package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes money coming in from money going out.
// Each kind has its own category set; the two sets never overlap.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// RecurringFrequency enumerates the supported recurrence periods.
type RecurringFrequency string

const (
	FreqDaily    RecurringFrequency = "diario"
	FreqWeekly   RecurringFrequency = "semanal"
	FreqBiweekly RecurringFrequency = "quincenal"
	FreqMonthly  RecurringFrequency = "mensual"
	FreqYearly   RecurringFrequency = "anual"
)

// IncomeCategories is the fixed category set for income transactions.
// Values are stored as-is; membership checks are case-sensitive.
var IncomeCategories = []string{
	"salario",
	"freelance",
	"inversiones",
	"ventas",
	"regalo",
	"otros",
}

// ExpenseCategories is the fixed category set for expense transactions.
var ExpenseCategories = []string{
	"alimentacion",
	"transporte",
	"vivienda",
	"salud",
	"entretenimiento",
	"educacion",
	"servicios",
	"compras",
	"otros",
}

// PaymentMethods enumerates the accepted payment methods for both kinds.
var PaymentMethods = []string{
	"efectivo",
	"tarjeta_credito",
	"tarjeta_debito",
	"transferencia",
	"otro",
}

// CategoriesFor returns the authoritative category set for a kind.
func CategoriesFor(kind TransactionKind) []string {
	if kind == KindIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ValidCategory reports whether category belongs to the set for kind.
func ValidCategory(kind TransactionKind, category string) bool {
	for _, c := range CategoriesFor(kind) {
		if c == category {
			return true
		}
	}
	return false
}

// Transaction is a persisted income or expense record.
type Transaction struct {
	TransactionID      string             `json:"transactionID"`
	UserID             string             `json:"userID"`
	Kind               TransactionKind    `json:"kind"`
	Description        string             `json:"description"`
	Amount             decimal.Decimal    `json:"amount"`
	Category           string             `json:"category"`
	Date               time.Time          `json:"date"`
	PaymentMethod      string             `json:"paymentMethod"`
	Notes              string             `json:"notes,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
	IsRecurring        bool               `json:"isRecurring"`
	RecurringFrequency RecurringFrequency `json:"recurringFrequency,omitempty"`
	IsEssential        bool               `json:"isEssential"` // expenses only
	IsActive           bool               `json:"isActive"`
	AuditFields
}
