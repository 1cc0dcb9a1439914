package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-io/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-io/fintrack_backend/internal/dto"
	"github.com/fintrack-io/fintrack_backend/internal/middleware"
)

// transactionService persists drafts that already cleared the request
// pipeline; it does not re-run schema validation or business rules.
type transactionService struct {
	txRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txRepo: txRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// resourceTarget maps a resource variant to the transaction it addresses.
// The bool is false for variants that do not address transactions.
func resourceTarget(res domain.Resource) (domain.TransactionKind, string, bool) {
	switch r := res.(type) {
	case domain.IncomeResource:
		return domain.KindIncome, r.TransactionID, true
	case domain.ExpenseResource:
		return domain.KindExpense, r.TransactionID, true
	}
	return "", "", false
}

func (s *transactionService) CreateTransaction(ctx context.Context, principal *domain.User, draft *dto.TransactionDraft) (*domain.Transaction, error) {
	txn, err := fromDraft(draft, principal.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.txRepo.SaveTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID), slog.String("kind", string(txn.Kind)))
	return txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, res domain.Resource, userID string) (*domain.Transaction, error) {
	kind, id, ok := resourceTarget(res)
	if !ok {
		return nil, fmt.Errorf("resource %T does not address a transaction", res)
	}
	return s.txRepo.FindTransactionByID(ctx, kind, id, userID)
}

func (s *transactionService) ListTransactions(ctx context.Context, kind domain.TransactionKind, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.ListFilter{
		Limit:    params.Limit,
		Offset:   params.Offset,
		Category: params.Category,
	}
	if params.From != "" {
		from, err := time.Parse(dto.DateLayoutDay, params.From)
		if err != nil {
			return nil, apperrors.ErrValidation
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.Parse(dto.DateLayoutDay, params.To)
		if err != nil {
			return nil, apperrors.ErrValidation
		}
		filter.To = &to
	}
	return s.txRepo.FindTransactions(ctx, kind, userID, filter)
}

func (s *transactionService) UpdateTransaction(ctx context.Context, res domain.Resource, principal *domain.User, draft *dto.TransactionDraft) (*domain.Transaction, error) {
	kind, id, ok := resourceTarget(res)
	if !ok {
		return nil, fmt.Errorf("resource %T does not address a transaction", res)
	}

	existing, err := s.txRepo.FindTransactionByID(ctx, kind, id, principal.UserID)
	if err != nil {
		return nil, err
	}

	updated, err := fromDraft(draft, principal.UserID)
	if err != nil {
		return nil, err
	}
	updated.TransactionID = existing.TransactionID
	updated.CreatedAt = existing.CreatedAt
	updated.LastUpdatedAt = time.Now()

	if err := s.txRepo.UpdateTransaction(ctx, *updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction updated", slog.String("transaction_id", id))
	return updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, res domain.Resource, userID string) error {
	kind, id, ok := resourceTarget(res)
	if !ok {
		return fmt.Errorf("resource %T does not address a transaction", res)
	}

	// Resolve first so a missing or foreign record surfaces as ErrNotFound.
	if _, err := s.txRepo.FindTransactionByID(ctx, kind, id, userID); err != nil {
		return err
	}

	if err := s.txRepo.MarkTransactionDeleted(ctx, kind, id, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transaction deleted", slog.String("transaction_id", id))
	return nil
}

// fromDraft maps a validated draft to a persistable transaction. The
// expense-only isEssential flag is dropped for incomes; the recurrence
// frequency only survives when the draft is actually recurring.
func fromDraft(draft *dto.TransactionDraft, userID string) (*domain.Transaction, error) {
	amount, err := draft.AmountDecimal()
	if err != nil {
		return nil, fmt.Errorf("parsing draft amount: %w", err)
	}
	date, err := draft.DateTime()
	if err != nil {
		return nil, fmt.Errorf("parsing draft date: %w", err)
	}

	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Kind:          draft.Kind,
		Description:   draft.Description,
		Amount:        amount,
		Category:      draft.Category,
		Date:          date,
		PaymentMethod: draft.PaymentMethod,
		Notes:         draft.Notes,
		Tags:          draft.Tags,
		IsRecurring:   draft.IsRecurring,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now(),
			LastUpdatedAt: time.Now(),
		},
	}
	if draft.IsRecurring {
		txn.RecurringFrequency = domain.RecurringFrequency(draft.RecurringFrequency)
	}
	if draft.Kind == domain.KindExpense && draft.IsEssential != nil {
		txn.IsEssential = *draft.IsEssential
	}
	return txn, nil
}
