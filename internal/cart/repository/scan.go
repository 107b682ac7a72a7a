package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

const itemColumns = `account_id, book_id, quantity, created_at, updated_at`

const lineColumns = `b.id, b.title, b.author, b.image, b.price_cents, b.quantity, c.quantity`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*cartDomain.Item, error) {
	var item cartDomain.Item
	err := row.Scan(&item.AccountID, &item.BookID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scanLines(rows *sql.Rows) ([]*cartDomain.Line, error) {
	defer rows.Close() //nolint:errcheck

	lines := make([]*cartDomain.Line, 0)
	for rows.Next() {
		var line cartDomain.Line
		err := rows.Scan(
			&line.BookID,
			&line.Title,
			&line.Author,
			&line.Image,
			&line.PriceCents,
			&line.Stock,
			&line.Quantity,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan cart line")
		}
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cart lines")
	}
	return lines, nil
}

// requireAffected maps a statement that matched no rows to ErrCartItemNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return cartDomain.ErrCartItemNotFound
	}
	return nil
}

func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isMySQLDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
