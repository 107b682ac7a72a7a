package repository

import (
	"context"
	"database/sql"
	"errors"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// MySQLBookRepository handles book persistence for MySQL
type MySQLBookRepository struct {
	db *sql.DB
}

// NewMySQLBookRepository creates a new MySQLBookRepository
func NewMySQLBookRepository(db *sql.DB) *MySQLBookRepository {
	return &MySQLBookRepository{db: db}
}

// Create inserts a new book
func (r *MySQLBookRepository) Create(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO books (` + bookColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, bookArgs(book)...)
	if err != nil {
		return apperrors.Wrap(err, "failed to create book")
	}
	return nil
}

// Update modifies an existing book
func (r *MySQLBookRepository) Update(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE books
			  SET title = ?, author = ?, language = ?, genre = ?, description = ?,
			      image = ?, quantity = ?, price_cents = ?, updated_at = ?
			  WHERE id = ?`

	_, err := querier.ExecContext(
		ctx,
		query,
		book.Title,
		book.Author,
		book.Language,
		book.Genre,
		book.Description,
		book.Image,
		book.Quantity,
		book.PriceCents,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update book")
	}
	// MySQL reports changed rows, not matched ones, so a zero count is not a miss.
	return nil
}

// Get retrieves a book by ID
func (r *MySQLBookRepository) Get(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`

	book, err := scanBook(querier.QueryRowContext(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookDomain.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get book")
	}
	return book, nil
}

// List retrieves books ordered by title
func (r *MySQLBookRepository) List(ctx context.Context, offset, limit int) ([]*bookDomain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title ASC, id ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list books")
	}
	return scanBooks(rows)
}

// Delete removes a book
func (r *MySQLBookRepository) Delete(ctx context.Context, bookID string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete book")
	}
	return requireAffected(result)
}
