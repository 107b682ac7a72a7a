package usecase

import (
	"context"
	"time"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
	"github.com/allisson/bookstore/internal/identity"
)

// bookUseCase implements BookUseCase.
type bookUseCase struct {
	txManager database.TxManager
	bookRepo  BookRepository
	now       func() time.Time
}

// NewBookUseCase creates a new BookUseCase with the provided dependencies.
func NewBookUseCase(txManager database.TxManager, bookRepo BookRepository) BookUseCase {
	return &bookUseCase{
		txManager: txManager,
		bookRepo:  bookRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create adds a book to the catalogue under a new random id.
func (b *bookUseCase) Create(ctx context.Context, input *bookDomain.BookInput) (*bookDomain.Book, error) {
	now := b.now()
	book := &bookDomain.Book{
		ID:        identity.RandomID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	book.Apply(input)

	if err := b.bookRepo.Create(ctx, book); err != nil {
		return nil, apperrors.Wrap(err, "failed to create book")
	}
	return book, nil
}

// Update replaces the editable fields of a book.
func (b *bookUseCase) Update(
	ctx context.Context,
	bookID string,
	input *bookDomain.BookInput,
) (*bookDomain.Book, error) {
	var book *bookDomain.Book

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		book, err = b.bookRepo.Get(ctx, bookID)
		if err != nil {
			return err
		}

		book.Apply(input)
		book.UpdatedAt = b.now()
		return b.bookRepo.Update(ctx, book)
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Get retrieves a book by ID.
func (b *bookUseCase) Get(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	return b.bookRepo.Get(ctx, bookID)
}

// List retrieves books ordered by title.
func (b *bookUseCase) List(ctx context.Context, offset, limit int) ([]*bookDomain.Book, error) {
	return b.bookRepo.List(ctx, offset, limit)
}

// Delete removes a book from the catalogue.
func (b *bookUseCase) Delete(ctx context.Context, bookID string) error {
	return b.bookRepo.Delete(ctx, bookID)
}
