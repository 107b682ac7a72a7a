package usecase

import (
	"context"
	"time"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	"github.com/allisson/bookstore/internal/metrics"
)

// bookUseCaseWithMetrics decorates BookUseCase with metrics instrumentation.
type bookUseCaseWithMetrics struct {
	next    BookUseCase
	metrics metrics.BusinessMetrics
}

// NewBookUseCaseWithMetrics wraps a BookUseCase with metrics recording.
func NewBookUseCaseWithMetrics(useCase BookUseCase, m metrics.BusinessMetrics) BookUseCase {
	return &bookUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for book creation operations.
func (b *bookUseCaseWithMetrics) Create(
	ctx context.Context,
	input *bookDomain.BookInput,
) (*bookDomain.Book, error) {
	start := time.Now()
	book, err := b.next.Create(ctx, input)
	metrics.Observe(ctx, b.metrics, "book", "book_create", start, err)

	return book, err
}

// Update records metrics for book update operations.
func (b *bookUseCaseWithMetrics) Update(
	ctx context.Context,
	bookID string,
	input *bookDomain.BookInput,
) (*bookDomain.Book, error) {
	start := time.Now()
	book, err := b.next.Update(ctx, bookID, input)
	metrics.Observe(ctx, b.metrics, "book", "book_update", start, err)

	return book, err
}

// Get is not instrumented.
func (b *bookUseCaseWithMetrics) Get(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	return b.next.Get(ctx, bookID)
}

// List is not instrumented.
func (b *bookUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*bookDomain.Book, error) {
	return b.next.List(ctx, offset, limit)
}

// Delete records metrics for book deletion operations.
func (b *bookUseCaseWithMetrics) Delete(ctx context.Context, bookID string) error {
	start := time.Now()
	err := b.next.Delete(ctx, bookID)
	metrics.Observe(ctx, b.metrics, "book", "book_delete", start, err)

	return err
}
