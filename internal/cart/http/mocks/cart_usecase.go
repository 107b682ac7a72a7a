// Package mocks provides mock implementations for testing cart HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
)

// MockCartUseCase is a mock implementation of CartUseCase for testing.
type MockCartUseCase struct {
	mock.Mock
}

// Get mocks the Get method of CartUseCase.
func (m *MockCartUseCase) Get(ctx context.Context, accountID string) (*cartDomain.Cart, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartDomain.Cart), args.Error(1)
}

// AddItem mocks the AddItem method of CartUseCase.
func (m *MockCartUseCase) AddItem(
	ctx context.Context,
	accountID, bookID string,
	quantity int,
) (*cartDomain.Cart, error) {
	args := m.Called(ctx, accountID, bookID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartDomain.Cart), args.Error(1)
}

// UpdateItem mocks the UpdateItem method of CartUseCase.
func (m *MockCartUseCase) UpdateItem(
	ctx context.Context,
	accountID, bookID string,
	quantity int,
) (*cartDomain.Cart, error) {
	args := m.Called(ctx, accountID, bookID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartDomain.Cart), args.Error(1)
}

// Clear mocks the Clear method of CartUseCase.
func (m *MockCartUseCase) Clear(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}
