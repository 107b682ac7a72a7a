package repository

import (
	"context"
	"database/sql"
	"errors"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// MySQLRegistrationRepository handles pending registration persistence for MySQL
type MySQLRegistrationRepository struct {
	db *sql.DB
}

// NewMySQLRegistrationRepository creates a new MySQLRegistrationRepository
func NewMySQLRegistrationRepository(db *sql.DB) *MySQLRegistrationRepository {
	return &MySQLRegistrationRepository{db: db}
}

// Create inserts a new pending registration
func (r *MySQLRegistrationRepository) Create(
	ctx context.Context,
	registration *accountDomain.PendingRegistration,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO pending_registrations (` + registrationColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
func (r *MySQLRegistrationRepository) Get(
	ctx context.Context,
	registrationID string,
) (*accountDomain.PendingRegistration, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + registrationColumns + ` FROM pending_registrations WHERE id = ?`

	registration, err := scanRegistration(querier.QueryRowContext(ctx, query, registrationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrRegistrationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get pending registration")
	}
	return registration, nil
}

// IncrementAttempts atomically counts one more wrong code and returns the new total.
// The follow-up read must run in the same transaction as the update to see its own row lock.
func (r *MySQLRegistrationRepository) IncrementAttempts(
	ctx context.Context,
	registrationID string,
) (int, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE pending_registrations SET attempts = attempts + 1 WHERE id = ?`,
		registrationID,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to update pending registration")
	}
	if err := requireAffected(result, accountDomain.ErrRegistrationNotFound); err != nil {
		return 0, err
	}

	var attempts int
	err = querier.QueryRowContext(
		ctx,
		`SELECT attempts FROM pending_registrations WHERE id = ?`,
		registrationID,
	).Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, accountDomain.ErrRegistrationNotFound
		}
		return 0, apperrors.Wrap(err, "failed to read pending registration attempts")
	}
	return attempts, nil
}

// Delete removes a pending registration
func (r *MySQLRegistrationRepository) Delete(ctx context.Context, registrationID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM pending_registrations WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, registrationID); err != nil {
		return apperrors.Wrap(err, "failed to delete pending registration")
	}
	return nil
}

// DeleteByUsernameOrEmail removes pending registrations for a username or email
func (r *MySQLRegistrationRepository) DeleteByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM pending_registrations WHERE username = ? OR email = ?`

	if _, err := querier.ExecContext(ctx, query, username, email); err != nil {
		return apperrors.Wrap(err, "failed to delete pending registrations")
	}
	return nil
}
