// Package mocks provides mock implementations for testing book HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
)

// MockBookUseCase is a mock implementation of BookUseCase for testing.
type MockBookUseCase struct {
	mock.Mock
}

// Create mocks the Create method of BookUseCase.
func (m *MockBookUseCase) Create(ctx context.Context, input *bookDomain.BookInput) (*bookDomain.Book, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookDomain.Book), args.Error(1)
}

// Update mocks the Update method of BookUseCase.
func (m *MockBookUseCase) Update(
	ctx context.Context,
	bookID string,
	input *bookDomain.BookInput,
) (*bookDomain.Book, error) {
	args := m.Called(ctx, bookID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookDomain.Book), args.Error(1)
}

// Get mocks the Get method of BookUseCase.
func (m *MockBookUseCase) Get(ctx context.Context, bookID string) (*bookDomain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookDomain.Book), args.Error(1)
}

// List mocks the List method of BookUseCase.
func (m *MockBookUseCase) List(ctx context.Context, offset, limit int) ([]*bookDomain.Book, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookDomain.Book), args.Error(1)
}

// Delete mocks the Delete method of BookUseCase.
func (m *MockBookUseCase) Delete(ctx context.Context, bookID string) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}
