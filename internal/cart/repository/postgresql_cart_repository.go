// Package repository provides shopping cart persistence on PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// PostgreSQLCartRepository handles cart persistence for PostgreSQL
type PostgreSQLCartRepository struct {
	db *sql.DB
}

// NewPostgreSQLCartRepository creates a new PostgreSQLCartRepository
func NewPostgreSQLCartRepository(db *sql.DB) *PostgreSQLCartRepository {
	return &PostgreSQLCartRepository{db: db}
}

// GetItem retrieves one cart item, locking it for the transaction in ctx
func (r *PostgreSQLCartRepository) GetItem(ctx context.Context, accountID, bookID string) (*cartDomain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM cart_items WHERE account_id = $1 AND book_id = $2 FOR UPDATE`

	item, err := scanItem(querier.QueryRowContext(ctx, query, accountID, bookID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cartDomain.ErrCartItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get cart item")
	}
	return item, nil
}

// CreateItem inserts a new cart item
func (r *PostgreSQLCartRepository) CreateItem(ctx context.Context, item *cartDomain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO cart_items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(ctx, query, item.AccountID, item.BookID, item.Quantity, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return cartDomain.ErrCartItemConflict
		}
		return apperrors.Wrap(err, "failed to create cart item")
	}
	return nil
}

// UpdateItem stores the quantity of an existing cart item
func (r *PostgreSQLCartRepository) UpdateItem(ctx context.Context, item *cartDomain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE account_id = $3 AND book_id = $4`

	result, err := querier.ExecContext(ctx, query, item.Quantity, item.UpdatedAt, item.AccountID, item.BookID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update cart item")
	}
	return requireAffected(result)
}

// DeleteItem removes one book from a cart
func (r *PostgreSQLCartRepository) DeleteItem(ctx context.Context, accountID, bookID string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM cart_items WHERE account_id = $1 AND book_id = $2`,
		accountID,
		bookID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete cart item")
	}
	return requireAffected(result)
}

// Clear removes every item of a cart
func (r *PostgreSQLCartRepository) Clear(ctx context.Context, accountID string) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM cart_items WHERE account_id = $1`, accountID); err != nil {
		return apperrors.Wrap(err, "failed to clear cart")
	}
	return nil
}

// ListLines retrieves the items of a cart joined with their books, ordered by title
func (r *PostgreSQLCartRepository) ListLines(ctx context.Context, accountID string) ([]*cartDomain.Line, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + lineColumns + `
			  FROM cart_items c
			  JOIN books b ON b.id = c.book_id
			  WHERE c.account_id = $1
			  ORDER BY b.title ASC, b.id ASC`

	rows, err := querier.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cart items")
	}
	return scanLines(rows)
}
