package repository

import (
	"database/sql"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

const bookColumns = `id, title, author, language, genre, description, image, quantity, price_cents,
			  created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func bookArgs(book *bookDomain.Book) []any {
	return []any{
		book.ID,
		book.Title,
		book.Author,
		book.Language,
		book.Genre,
		book.Description,
		book.Image,
		book.Quantity,
		book.PriceCents,
		book.CreatedAt,
		book.UpdatedAt,
	}
}

func scanBook(row scanner) (*bookDomain.Book, error) {
	var book bookDomain.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Language,
		&book.Genre,
		&book.Description,
		&book.Image,
		&book.Quantity,
		&book.PriceCents,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func scanBooks(rows *sql.Rows) ([]*bookDomain.Book, error) {
	defer rows.Close() //nolint:errcheck

	books := make([]*bookDomain.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan book")
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate books")
	}
	return books, nil
}

// requireAffected maps a statement that matched no rows to ErrBookNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return bookDomain.ErrBookNotFound
	}
	return nil
}
