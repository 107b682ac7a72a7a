package usecase

import (
	"context"
	"time"

	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
	"github.com/allisson/bookstore/internal/metrics"
)

// cartUseCaseWithMetrics decorates CartUseCase with metrics instrumentation.
type cartUseCaseWithMetrics struct {
	next    CartUseCase
	metrics metrics.BusinessMetrics
}

// NewCartUseCaseWithMetrics wraps a CartUseCase with metrics recording.
func NewCartUseCaseWithMetrics(useCase CartUseCase, m metrics.BusinessMetrics) CartUseCase {
	return &cartUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Get is not instrumented.
func (u *cartUseCaseWithMetrics) Get(ctx context.Context, accountID string) (*cartDomain.Cart, error) {
	return u.next.Get(ctx, accountID)
}

// AddItem records metrics for add-to-cart operations.
func (u *cartUseCaseWithMetrics) AddItem(
	ctx context.Context,
	accountID, bookID string,
	quantity int,
) (*cartDomain.Cart, error) {
	start := time.Now()
	cart, err := u.next.AddItem(ctx, accountID, bookID, quantity)
	metrics.Observe(ctx, u.metrics, "cart", "cart_add_item", start, err)

	return cart, err
}

// UpdateItem records metrics for cart quantity updates.
func (u *cartUseCaseWithMetrics) UpdateItem(
	ctx context.Context,
	accountID, bookID string,
	quantity int,
) (*cartDomain.Cart, error) {
	start := time.Now()
	cart, err := u.next.UpdateItem(ctx, accountID, bookID, quantity)
	metrics.Observe(ctx, u.metrics, "cart", "cart_update_item", start, err)

	return cart, err
}

// Clear records metrics for cart clearing.
func (u *cartUseCaseWithMetrics) Clear(ctx context.Context, accountID string) error {
	start := time.Now()
	err := u.next.Clear(ctx, accountID)
	metrics.Observe(ctx, u.metrics, "cart", "cart_clear", start, err)

	return err
}
