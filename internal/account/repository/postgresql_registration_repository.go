package repository

import (
	"context"
	"database/sql"
	"errors"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// PostgreSQLRegistrationRepository handles pending registration persistence for PostgreSQL
type PostgreSQLRegistrationRepository struct {
	db *sql.DB
}

// NewPostgreSQLRegistrationRepository creates a new PostgreSQLRegistrationRepository
func NewPostgreSQLRegistrationRepository(db *sql.DB) *PostgreSQLRegistrationRepository {
	return &PostgreSQLRegistrationRepository{db: db}
}

// Create inserts a new pending registration
func (r *PostgreSQLRegistrationRepository) Create(
	ctx context.Context,
	registration *accountDomain.PendingRegistration,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO pending_registrations (` + registrationColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		registration.ID,
		registration.Username,
		registration.Email,
		registration.Name,
		registration.Password.Ciphertext,
		registration.Password.Tag,
		registration.Password.Nonce,
		registration.Password.Salt,
		registration.OTPHash,
		registration.Attempts,
		registration.ExpiresAt,
		registration.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create pending registration")
	}
	return nil
}

// Get retrieves a pending registration by ID
func (r *PostgreSQLRegistrationRepository) Get(
	ctx context.Context,
	registrationID string,
) (*accountDomain.PendingRegistration, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + registrationColumns + ` FROM pending_registrations WHERE id = $1`

	registration, err := scanRegistration(querier.QueryRowContext(ctx, query, registrationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrRegistrationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get pending registration")
	}
	return registration, nil
}

// IncrementAttempts atomically counts one more wrong code and returns the new total
func (r *PostgreSQLRegistrationRepository) IncrementAttempts(
	ctx context.Context,
	registrationID string,
) (int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE pending_registrations SET attempts = attempts + 1 WHERE id = $1 RETURNING attempts`

	var attempts int
	err := querier.QueryRowContext(ctx, query, registrationID).Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, accountDomain.ErrRegistrationNotFound
		}
		return 0, apperrors.Wrap(err, "failed to update pending registration")
	}
	return attempts, nil
}

// Delete removes a pending registration
func (r *PostgreSQLRegistrationRepository) Delete(ctx context.Context, registrationID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM pending_registrations WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, registrationID); err != nil {
		return apperrors.Wrap(err, "failed to delete pending registration")
	}
	return nil
}

// DeleteByUsernameOrEmail removes pending registrations for a username or email
func (r *PostgreSQLRegistrationRepository) DeleteByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM pending_registrations WHERE username = $1 OR email = $2`

	if _, err := querier.ExecContext(ctx, query, username, email); err != nil {
		return apperrors.Wrap(err, "failed to delete pending registrations")
	}
	return nil
}
