package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintrack-io/fintrack_backend/internal/apperrors"
	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

const userColumns = `user_id, name, email, password_hash, auth_provider, provider_user_id,
	plan, currency, locale, is_active, last_login_at, created_at, last_updated_at, deleted_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.AuthProvider,
		&user.ProviderUserID,
		&user.Plan,
		&user.Preferences.Currency,
		&user.Preferences.Locale,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.LastUpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (user_id, name, email, password_hash, auth_provider, provider_user_id,
            plan, currency, locale, is_active, last_login_at, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.AuthProvider,
		user.ProviderUserID,
		user.Plan,
		user.Preferences.Currency,
		user.Preferences.Locale,
		user.IsActive,
		user.LastLoginAt,
		user.CreatedAt,
		user.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE user_id = $1 AND deleted_at IS NULL;
    `
	return scanUser(r.db.QueryRow(ctx, query, userID))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1 AND deleted_at IS NULL;
    `
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE auth_provider = $1 AND provider_user_id = $2 AND deleted_at IS NULL;
    `
	return scanUser(r.db.QueryRow(ctx, query, authProvider, providerUserID))
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET name = $1, currency = $2, locale = $3, last_updated_at = $4
        WHERE user_id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		user.Name,
		user.Preferences.Currency,
		user.Preferences.Locale,
		user.LastUpdatedAt,
		user.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := `
        UPDATE users
        SET last_login_at = $1, last_updated_at = $1
        WHERE user_id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, at, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	query := `
        UPDATE users
        SET deleted_at = $1, is_active = FALSE, last_updated_at = $1
        WHERE user_id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
