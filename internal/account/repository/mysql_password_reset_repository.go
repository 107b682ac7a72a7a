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

// MySQLPasswordResetRepository handles password reset persistence for MySQL
type MySQLPasswordResetRepository struct {
	db *sql.DB
}

// NewMySQLPasswordResetRepository creates a new MySQLPasswordResetRepository
func NewMySQLPasswordResetRepository(db *sql.DB) *MySQLPasswordResetRepository {
	return &MySQLPasswordResetRepository{db: db}
}

// Create inserts a new password reset
func (r *MySQLPasswordResetRepository) Create(ctx context.Context, reset *accountDomain.PasswordReset) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO password_resets (id, account_id, token_hash, expires_at, used_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

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
func (r *MySQLPasswordResetRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*accountDomain.PasswordReset, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, account_id, token_hash, expires_at, used_at, created_at
			  FROM password_resets WHERE token_hash = ?`

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
func (r *MySQLPasswordResetRepository) MarkUsed(ctx context.Context, resetID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE password_resets SET used_at = ? WHERE id = ? AND used_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), resetID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark password reset used")
	}
	// A concurrent redemption already consumed the token.
	return requireAffected(result, accountDomain.ErrInvalidResetToken)
}
