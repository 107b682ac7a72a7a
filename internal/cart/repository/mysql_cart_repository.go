package repository

import (
	"context"
	"database/sql"
	"errors"

	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// MySQLCartRepository handles cart persistence for MySQL
type MySQLCartRepository struct {
	db *sql.DB
}

// NewMySQLCartRepository creates a new MySQLCartRepository
func NewMySQLCartRepository(db *sql.DB) *MySQLCartRepository {
	return &MySQLCartRepository{db: db}
}

// GetItem retrieves one cart item, locking it for the transaction in ctx
func (r *MySQLCartRepository) GetItem(ctx context.Context, accountID, bookID string) (*cartDomain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM cart_items WHERE account_id = ? AND book_id = ? FOR UPDATE`

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
func (r *MySQLCartRepository) CreateItem(ctx context.Context, item *cartDomain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO cart_items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, item.AccountID, item.BookID, item.Quantity, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return cartDomain.ErrCartItemConflict
		}
		return apperrors.Wrap(err, "failed to create cart item")
	}
	return nil
}

// UpdateItem stores the quantity of an existing cart item.
// MySQL reports changed rows rather than matched rows, so a no-op update is not an error.
func (r *MySQLCartRepository) UpdateItem(ctx context.Context, item *cartDomain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE cart_items SET quantity = ?, updated_at = ? WHERE account_id = ? AND book_id = ?`

	_, err := querier.ExecContext(ctx, query, item.Quantity, item.UpdatedAt, item.AccountID, item.BookID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update cart item")
	}
	return nil
}

// DeleteItem removes one book from a cart
func (r *MySQLCartRepository) DeleteItem(ctx context.Context, accountID, bookID string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`DELETE FROM cart_items WHERE account_id = ? AND book_id = ?`,
		accountID,
		bookID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete cart item")
	}
	return requireAffected(result)
}

// Clear removes every item of a cart
func (r *MySQLCartRepository) Clear(ctx context.Context, accountID string) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM cart_items WHERE account_id = ?`, accountID); err != nil {
		return apperrors.Wrap(err, "failed to clear cart")
	}
	return nil
}

// ListLines retrieves the items of a cart joined with their books, ordered by title
func (r *MySQLCartRepository) ListLines(ctx context.Context, accountID string) ([]*cartDomain.Line, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + lineColumns + `
			  FROM cart_items c
			  JOIN books b ON b.id = c.book_id
			  WHERE c.account_id = ?
			  ORDER BY b.title ASC, b.id ASC`

	rows, err := querier.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cart items")
	}
	return scanLines(rows)
}
