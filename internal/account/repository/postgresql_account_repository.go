package repository

import (
	"context"
	"database/sql"
	"errors"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// PostgreSQLAccountRepository handles account persistence for PostgreSQL
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{db: db}
}

// Create inserts a new account
func (r *PostgreSQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)
	creditCardNumber, address, phone := customerArgs(account)

	query := `INSERT INTO accounts (` + accountColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := querier.ExecContext(
		ctx,
		query,
		account.ID,
		account.Username,
		account.Email,
		account.Password.Ciphertext,
		account.Password.Tag,
		account.Password.Nonce,
		account.Password.Salt,
		account.ProfilePicture,
		account.IsAdmin,
		account.Name,
		creditCardNumber,
		address,
		phone,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Update modifies an existing account
func (r *PostgreSQLAccountRepository) Update(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)
	creditCardNumber, address, phone := customerArgs(account)

	query := `UPDATE accounts
			  SET email = $1, password_ciphertext = $2, password_tag = $3, password_nonce = $4,
			      password_salt = $5, profile_picture = $6, is_admin = $7, name = $8,
			      credit_card_number = $9, address = $10, phone = $11, updated_at = $12
			  WHERE id = $13`

	result, err := querier.ExecContext(
		ctx,
		query,
		account.Email,
		account.Password.Ciphertext,
		account.Password.Tag,
		account.Password.Nonce,
		account.Password.Salt,
		account.ProfilePicture,
		account.IsAdmin,
		account.Name,
		creditCardNumber,
		address,
		phone,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update account")
	}
	return requireAffected(result, accountDomain.ErrAccountNotFound)
}

// Get retrieves an account by ID
func (r *PostgreSQLAccountRepository) Get(ctx context.Context, accountID string) (*accountDomain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.getOne(ctx, query, accountID)
}

// GetByUsername retrieves an account by username
func (r *PostgreSQLAccountRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*accountDomain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return r.getOne(ctx, query, username)
}

// GetByEmail retrieves an account by email
func (r *PostgreSQLAccountRepository) GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *PostgreSQLAccountRepository) getOne(
	ctx context.Context,
	query string,
	arg string,
) (*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	account, err := scanAccount(querier.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accountDomain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}
	return account, nil
}

// List retrieves accounts ordered by username
func (r *PostgreSQLAccountRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY username ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	defer rows.Close() //nolint:errcheck

	accounts := make([]*accountDomain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account")
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate accounts")
	}

	return accounts, nil
}

// Delete removes an account
func (r *PostgreSQLAccountRepository) Delete(ctx context.Context, accountID string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete account")
	}
	return requireAffected(result, accountDomain.ErrAccountNotFound)
}
