package usecase

import (
	"context"
	"time"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
)

// cartUseCase implements CartUseCase.
type cartUseCase struct {
	txManager database.TxManager
	cartRepo  CartRepository
	bookRepo  BookRepository
	now       func() time.Time
}

// NewCartUseCase creates a new CartUseCase with the provided dependencies.
func NewCartUseCase(txManager database.TxManager, cartRepo CartRepository, bookRepo BookRepository) CartUseCase {
	return &cartUseCase{
		txManager: txManager,
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the cart of an account with its total at current prices.
func (u *cartUseCase) Get(ctx context.Context, accountID string) (*cartDomain.Cart, error) {
	lines, err := u.cartRepo.ListLines(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &cartDomain.Cart{AccountID: accountID, Lines: lines}, nil
}

// AddItem adds copies of a book to the cart. Adding a book already in the cart adds
// to its quantity, and the result never exceeds the copies in stock.
func (u *cartUseCase) AddItem(
	ctx context.Context,
	accountID, bookID string,
	quantity int,
) (*cartDomain.Cart, error) {
	if !cartDomain.ValidQuantity(quantity) {
		return nil, cartDomain.ErrInvalidQuantity
	}

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		book, err := u.getBook(ctx, bookID)
		if err != nil {
			return err
		}

		now := u.now()
		item, err := u.cartRepo.GetItem(ctx, accountID, bookID)
		if apperrors.Is(err, cartDomain.ErrCartItemNotFound) {
			item = &cartDomain.Item{
				AccountID: accountID,
				BookID:    bookID,
				Quantity:  cartDomain.ClampQuantity(quantity, book.Quantity),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if item.Quantity == 0 {
				return nil
			}
			return u.cartRepo.CreateItem(ctx, item)
		}
		if err != nil {
			return err
		}

		return u.store(ctx, item, item.Quantity+quantity, book.Quantity, now)
	})
	if err != nil {
		return nil, err
	}
	return u.Get(ctx, accountID)
}

// UpdateItem sets the quantity of a book already in the cart. Zero removes the line.
func (u *cartUseCase) UpdateItem(
	ctx context.Context,
	accountID, bookID string,
	quantity int,
) (*cartDomain.Cart, error) {
	if !cartDomain.ValidQuantity(quantity) {
		return nil, cartDomain.ErrInvalidQuantity
	}

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		item, err := u.cartRepo.GetItem(ctx, accountID, bookID)
		if err != nil {
			return err
		}
		if quantity == 0 {
			return u.cartRepo.DeleteItem(ctx, accountID, bookID)
		}

		book, err := u.getBook(ctx, bookID)
		if err != nil {
			return err
		}
		return u.store(ctx, item, quantity, book.Quantity, u.now())
	})
	if err != nil {
		return nil, err
	}
	return u.Get(ctx, accountID)
}

// Clear empties the cart of an account.
func (u *cartUseCase) Clear(ctx context.Context, accountID string) error {
	return u.cartRepo.Clear(ctx, accountID)
}

func (u *cartUseCase) getBook(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	book, err := u.bookRepo.Get(ctx, bookID)
	if apperrors.Is(err, bookDomain.ErrBookNotFound) {
		return nil, cartDomain.ErrUnknownBook
	}
	return book, err
}

// store writes the clamped quantity of an existing item, dropping the line when nothing is left.
func (u *cartUseCase) store(ctx context.Context, item *cartDomain.Item, requested, stock int, now time.Time) error {
	item.Quantity = cartDomain.ClampQuantity(requested, stock)
	if item.Quantity == 0 {
		return u.cartRepo.DeleteItem(ctx, item.AccountID, item.BookID)
	}
	item.UpdatedAt = now
	return u.cartRepo.UpdateItem(ctx, item)
}
