package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// PostgreSQLPasswordResetRepository handles password reset persistence for PostgreSQL
type PostgreSQLPasswordResetRepository struct {
	db *sql.DB
}

// NewPostgreSQLPasswordResetRepository creates a new PostgreSQLPasswordResetRepository
func NewPostgreSQLPasswordResetRepository(db *sql.DB) *PostgreSQLPasswordResetRepository {
	return &PostgreSQLPasswordResetRepository{db: db}
}

// Create inserts a new password reset
func (r *PostgreSQLPasswordResetRepository) Create(ctx context.Context, reset *accountDomain.PasswordReset) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO password_resets (id, account_id, token_hash, expires_at, used_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		reset.ID,
		reset.AccountID,
		reset.TokenHash,
		reset.ExpiresAt,
		reset.UsedAt,
		reset.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create password reset")
	}
	return nil
}

// GetByTokenHash retrieves a password reset by token hash
func (r *PostgreSQLPasswordResetRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*accountDomain.PasswordReset, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, account_id, token_hash, expires_at, used_at, created_at
			  FROM password_resets WHERE token_hash = $1`

	var reset accountDomain.PasswordReset
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&reset.ID,
		&reset.AccountID,
		&reset.TokenHash,
		&reset.ExpiresAt,
		&reset.UsedAt,
		&reset.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrPasswordResetNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get password reset")
	}
	return &reset, nil
}

// MarkUsed sets used_at on an unused password reset
func (r *PostgreSQLPasswordResetRepository) MarkUsed(ctx context.Context, resetID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE password_resets SET used_at = $1 WHERE id = $2 AND used_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), resetID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark password reset used")
	}
	// A concurrent redemption already consumed the token.
	return requireAffected(result, accountDomain.ErrInvalidResetToken)
}
