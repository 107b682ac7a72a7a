package repository

import (
	"context"
	"database/sql"
	"errors"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// MySQLAccountRepository handles account persistence for MySQL
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{db: db}
}

// Create inserts a new account
func (r *MySQLAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)
	creditCardNumber, address, phone := customerArgs(account)

	query := `INSERT INTO accounts (` + accountColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
		if isMySQLDuplicateEntry(err) {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Update modifies an existing account
func (r *MySQLAccountRepository) Update(ctx context.Context, account *accountDomain.Account) error {
	querier := database.GetTx(ctx, r.db)
	creditCardNumber, address, phone := customerArgs(account)

	query := `UPDATE accounts
			  SET email = ?, password_ciphertext = ?, password_tag = ?, password_nonce = ?,
			      password_salt = ?, profile_picture = ?, is_admin = ?, name = ?,
			      credit_card_number = ?, address = ?, phone = ?, updated_at = ?
			  WHERE id = ?`

	// MySQL reports changed rather than matched rows, so a no-op update affects zero rows.
	_, err := querier.ExecContext(
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
		if isMySQLDuplicateEntry(err) {
			return accountDomain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update account")
	}
	return nil
}

// Get retrieves an account by ID
func (r *MySQLAccountRepository) Get(ctx context.Context, accountID string) (*accountDomain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	return r.getOne(ctx, query, accountID)
}

// GetByUsername retrieves an account by username
func (r *MySQLAccountRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*accountDomain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = ?`
	return r.getOne(ctx, query, username)
}

// GetByEmail retrieves an account by email
func (r *MySQLAccountRepository) GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = ?`
	return r.getOne(ctx, query, email)
}

func (r *MySQLAccountRepository) getOne(
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
func (r *MySQLAccountRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*accountDomain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY username ASC LIMIT ? OFFSET ?`

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
func (r *MySQLAccountRepository) Delete(ctx context.Context, accountID string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, accountID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete account")
	}
	return requireAffected(result, accountDomain.ErrAccountNotFound)
}
