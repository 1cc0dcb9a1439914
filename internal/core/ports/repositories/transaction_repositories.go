package repositories

import (
	"context"
	"time"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListFilter narrows a transaction listing.
type ListFilter struct {
	Limit    int
	Offset   int
	Category string
	From     *time.Time
	To       *time.Time
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves an active transaction of the given kind
	// owned by userID. Returns apperrors.ErrNotFound when absent or not owned.
	FindTransactionByID(ctx context.Context, kind domain.TransactionKind, transactionID string, userID string) (*domain.Transaction, error)

	// FindTransactions retrieves a filtered page of active transactions.
	FindTransactions(ctx context.Context, kind domain.TransactionKind, userID string, filter ListFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction's mutable fields.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// MarkTransactionDeleted soft-deletes a transaction.
	MarkTransactionDeleted(ctx context.Context, kind domain.TransactionKind, transactionID string, userID string, deletedAt time.Time) error
}

// TransactionPolicyReader is the store surface the business-rule evaluator
// consults. All counts span both transaction kinds.
type TransactionPolicyReader interface {
	// CountTransactionsOnDay counts a user's active transactions dated on
	// the same calendar day as day.
	CountTransactionsOnDay(ctx context.Context, userID string, day time.Time) (int64, error)

	// CountActiveTransactions counts all of a user's active transactions.
	CountActiveTransactions(ctx context.Context, userID string) (int64, error)

	// FindDuplicateTransaction looks for an active transaction with the same
	// amount, calendar day and category. Returns nil when there is none.
	FindDuplicateTransaction(ctx context.Context, userID string, amount decimal.Decimal, day time.Time, category string) (*domain.Transaction, error)
}

// TransactionReporter defines the aggregation queries behind the dashboard.
type TransactionReporter interface {
	// SummarizeMonth totals a user's active transactions of one kind for a
	// month, broken down by category.
	SummarizeMonth(ctx context.Context, kind domain.TransactionKind, userID string, year int, month time.Month) ([]domain.CategoryTotal, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionPolicyReader
	TransactionReporter
}
