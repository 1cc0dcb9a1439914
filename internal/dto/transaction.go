package dto

import (
	"encoding/json"
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Date layouts accepted on input. The sanitizer canonicalizes to RFC3339;
// the plain date form survives when a client bypasses sanitization in tests.
const (
	DateLayoutFull = time.RFC3339
	DateLayoutDay  = "2006-01-02"
)

// TransactionDraft is the untrusted input for creating or updating a
// transaction. Amount stays a json.Number so the fractional-digit rule can
// inspect the decimal string exactly as the client sent it; Date stays a
// string until the schema validator has vouched for it.
type TransactionDraft struct {
	Kind               domain.TransactionKind `json:"-"`
	Description        string                 `json:"description" validate:"required,max=200"`
	Amount             json.Number            `json:"amount" validate:"required,txamount,maxdecimals"`
	Category           string                 `json:"category" validate:"required"`
	Date               string                 `json:"date" validate:"required,txdate"`
	PaymentMethod      string                 `json:"paymentMethod" validate:"required,oneof=efectivo tarjeta_credito tarjeta_debito transferencia otro"`
	Notes              string                 `json:"notes" validate:"omitempty,max=500"`
	Tags               []string               `json:"tags" validate:"omitempty,max=10,dive,min=1,max=20"`
	IsRecurring        bool                   `json:"isRecurring"`
	RecurringFrequency string                 `json:"recurringFrequency" validate:"required_if=IsRecurring true,omitempty,oneof=diario semanal quincenal mensual anual"`
	IsEssential        *bool                  `json:"isEssential"`
}

// AmountDecimal parses the draft amount. The schema validator guarantees
// this succeeds for payloads that passed the pipeline.
func (d *TransactionDraft) AmountDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(d.Amount.String())
}

// DateTime parses the draft date, accepting the canonical RFC3339 form and
// the bare calendar-day form.
func (d *TransactionDraft) DateTime() (time.Time, error) {
	if t, err := time.Parse(DateLayoutFull, d.Date); err == nil {
		return t, nil
	}
	return time.Parse(DateLayoutDay, d.Date)
}

// TransactionResponse is the representation returned for a transaction.
type TransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	Kind               string          `json:"kind"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	FormattedAmount    string          `json:"formattedAmount"`
	Category           string          `json:"category"`
	Date               time.Time       `json:"date"`
	PaymentMethod      string          `json:"paymentMethod"`
	Notes              string          `json:"notes,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
	IsRecurring        bool            `json:"isRecurring"`
	RecurringFrequency string          `json:"recurringFrequency,omitempty"`
	IsEssential        bool            `json:"isEssential"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
// formattedAmount is computed here, not stored: amounts are formatted per
// the owner's currency preference at render time.
func ToTransactionResponse(txn *domain.Transaction, formatted string) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		Kind:               string(txn.Kind),
		Description:        txn.Description,
		Amount:             txn.Amount,
		FormattedAmount:    formatted,
		Category:           txn.Category,
		Date:               txn.Date,
		PaymentMethod:      txn.PaymentMethod,
		Notes:              txn.Notes,
		Tags:               txn.Tags,
		IsRecurring:        txn.IsRecurring,
		RecurringFrequency: string(txn.RecurringFrequency),
		IsEssential:        txn.IsEssential,
		CreatedAt:          txn.CreatedAt,
		LastUpdatedAt:      txn.LastUpdatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit    int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset   int    `form:"offset,default=0" binding:"omitempty,min=0"`
	Category string `form:"category" binding:"omitempty,max=50"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}
