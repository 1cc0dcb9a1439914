package services

import (
	"context"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
)

// RuleEvaluator runs the ordered business-rule checks for a draft about to
// be persisted. The first failing check wins; its error carries the HTTP
// status for the rejection. A nil return means every rule passed.
type RuleEvaluator interface {
	EvaluateCreate(ctx context.Context, principal *domain.User, draft *dto.TransactionDraft) error

	// EvaluateUpdate runs the subset of rules that apply when a draft
	// replaces an existing record. The counting rules skip here because
	// the record being replaced already counts toward them.
	EvaluateUpdate(ctx context.Context, principal *domain.User, draft *dto.TransactionDraft) error
}

// TransactionSvcFacade covers the transaction CRUD surface. Reads, updates
// and deletes address records through the domain.Resource sum type so each
// route fixes the kind it operates on.
type TransactionSvcFacade interface {
	// CreateTransaction persists a draft that already passed the pipeline.
	CreateTransaction(ctx context.Context, principal *domain.User, draft *dto.TransactionDraft) (*domain.Transaction, error)

	// GetTransaction resolves an owned transaction or apperrors.ErrNotFound.
	GetTransaction(ctx context.Context, res domain.Resource, userID string) (*domain.Transaction, error)

	// ListTransactions returns a filtered page of the user's transactions.
	ListTransactions(ctx context.Context, kind domain.TransactionKind, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// UpdateTransaction replaces the mutable fields of an owned transaction
	// with a draft that already passed the pipeline.
	UpdateTransaction(ctx context.Context, res domain.Resource, principal *domain.User, draft *dto.TransactionDraft) (*domain.Transaction, error)

	// DeleteTransaction soft-deletes an owned transaction.
	DeleteTransaction(ctx context.Context, res domain.Resource, userID string) error
}

// ReportingSvcFacade aggregates transactions for dashboards.
type ReportingSvcFacade interface {
	// MonthlySummary builds the income/expense totals and category
	// breakdown for one month.
	MonthlySummary(ctx context.Context, principal *domain.User, year int, month int) (*dto.MonthlySummaryResponse, error)
}
