// Package repository provides book persistence on PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// PostgreSQLBookRepository handles book persistence for PostgreSQL
type PostgreSQLBookRepository struct {
	db *sql.DB
}

// NewPostgreSQLBookRepository creates a new PostgreSQLBookRepository
func NewPostgreSQLBookRepository(db *sql.DB) *PostgreSQLBookRepository {
	return &PostgreSQLBookRepository{db: db}
}

// Create inserts a new book
func (r *PostgreSQLBookRepository) Create(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO books (` + bookColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(ctx, query, bookArgs(book)...)
	if err != nil {
		return apperrors.Wrap(err, "failed to create book")
	}
	return nil
}

// Update modifies an existing book
func (r *PostgreSQLBookRepository) Update(ctx context.Context, book *bookDomain.Book) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE books
			  SET title = $1, author = $2, language = $3, genre = $4, description = $5,
			      image = $6, quantity = $7, price_cents = $8, updated_at = $9
			  WHERE id = $10`

	result, err := querier.ExecContext(
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
	return requireAffected(result)
}

// Get retrieves a book by ID
func (r *PostgreSQLBookRepository) Get(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

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
func (r *PostgreSQLBookRepository) List(ctx context.Context, offset, limit int) ([]*bookDomain.Book, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title ASC, id ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list books")
	}
	return scanBooks(rows)
}

// Delete removes a book
func (r *PostgreSQLBookRepository) Delete(ctx context.Context, bookID string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete book")
	}
	return requireAffected(result)
}
