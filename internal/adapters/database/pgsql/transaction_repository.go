package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

// TransactionRepository persists both transaction kinds in one table,
// discriminated by the kind column. Soft-deleted rows keep their data but
// are invisible to every query here.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, kind, description, amount, category, date,
	payment_method, notes, tags, is_recurring, recurring_frequency, is_essential, is_active,
	created_at, last_updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var frequency *string
	err := row.Scan(
		&txn.TransactionID,
		&txn.UserID,
		&txn.Kind,
		&txn.Description,
		&txn.Amount,
		&txn.Category,
		&txn.Date,
		&txn.PaymentMethod,
		&txn.Notes,
		&txn.Tags,
		&txn.IsRecurring,
		&frequency,
		&txn.IsEssential,
		&txn.IsActive,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction row: %w", err)
	}
	if frequency != nil {
		txn.RecurringFrequency = domain.RecurringFrequency(*frequency)
	}
	return &txn, nil
}

// dayBounds returns the UTC calendar-day window containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        INSERT INTO transactions (transaction_id, user_id, kind, description, amount, category, date,
            payment_method, notes, tags, is_recurring, recurring_frequency, is_essential, is_active,
            created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.db.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.Kind,
		txn.Description,
		txn.Amount,
		txn.Category,
		txn.Date,
		txn.PaymentMethod,
		txn.Notes,
		txn.Tags,
		txn.IsRecurring,
		nullableFrequency(txn.RecurringFrequency),
		txn.IsEssential,
		txn.IsActive,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, kind domain.TransactionKind, transactionID string, userID string) (*domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE transaction_id = $1 AND user_id = $2 AND kind = $3 AND deleted_at IS NULL;
    `
	return scanTransaction(r.db.QueryRow(ctx, query, transactionID, userID, kind))
}

func (r *TransactionRepository) FindTransactions(ctx context.Context, kind domain.TransactionKind, userID string, filter portsrepo.ListFilter) ([]domain.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE user_id = $1 AND kind = $2 AND deleted_at IS NULL
    `
	args := []any{userID, kind}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		// Inclusive upper bound: the filter names a day, not an instant.
		args = append(args, filter.To.Add(24*time.Hour))
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        UPDATE transactions
        SET description = $1, amount = $2, category = $3, date = $4, payment_method = $5,
            notes = $6, tags = $7, is_recurring = $8, recurring_frequency = $9,
            is_essential = $10, last_updated_at = $11
        WHERE transaction_id = $12 AND user_id = $13 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		txn.Description,
		txn.Amount,
		txn.Category,
		txn.Date,
		txn.PaymentMethod,
		txn.Notes,
		txn.Tags,
		txn.IsRecurring,
		nullableFrequency(txn.RecurringFrequency),
		txn.IsEssential,
		txn.LastUpdatedAt,
		txn.TransactionID,
		txn.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) MarkTransactionDeleted(ctx context.Context, kind domain.TransactionKind, transactionID string, userID string, deletedAt time.Time) error {
	query := `
        UPDATE transactions
        SET deleted_at = $1, is_active = FALSE, last_updated_at = $1
        WHERE transaction_id = $2 AND user_id = $3 AND kind = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, transactionID, userID, kind)
	if err != nil {
		return fmt.Errorf("failed to mark transaction deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) CountTransactionsOnDay(ctx context.Context, userID string, day time.Time) (int64, error) {
	start, end := dayBounds(day)
	query := `
        SELECT COUNT(*)
        FROM transactions
        WHERE user_id = $1 AND date >= $2 AND date < $3 AND deleted_at IS NULL;
    `
	var count int64
	if err := r.db.QueryRow(ctx, query, userID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for day: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) CountActiveTransactions(ctx context.Context, userID string) (int64, error) {
	query := `
        SELECT COUNT(*)
        FROM transactions
        WHERE user_id = $1 AND deleted_at IS NULL;
    `
	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active transactions: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) FindDuplicateTransaction(ctx context.Context, userID string, amount decimal.Decimal, day time.Time, category string) (*domain.Transaction, error) {
	start, end := dayBounds(day)
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE user_id = $1 AND amount = $2 AND category = $3
            AND date >= $4 AND date < $5 AND deleted_at IS NULL
        LIMIT 1;
    `
	txn, err := scanTransaction(r.db.QueryRow(ctx, query, userID, amount, category, start, end))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *TransactionRepository) SummarizeMonth(ctx context.Context, kind domain.TransactionKind, userID string, year int, month time.Month) ([]domain.CategoryTotal, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	query := `
        SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
        FROM transactions
        WHERE user_id = $1 AND kind = $2 AND date >= $3 AND date < $4 AND deleted_at IS NULL
        GROUP BY category
        ORDER BY category;
    `
	rows, err := r.db.Query(ctx, query, userID, kind, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summary: %w", err)
	}
	defer rows.Close()

	totals := []domain.CategoryTotal{}
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		totals = append(totals, ct)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", rows.Err())
	}
	return totals, nil
}

func nullableFrequency(f domain.RecurringFrequency) *string {
	if f == "" {
		return nil
	}
	s := string(f)
	return &s
}
