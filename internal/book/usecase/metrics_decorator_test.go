package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	"github.com/allisson/bookstore/internal/book/http/mocks"
	"github.com/allisson/bookstore/internal/book/usecase"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectRecord(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "book", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "book", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestBookUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	input := &bookDomain.BookInput{Title: "Norwegian Wood"}

	t.Run("Create success", func(t *testing.T) {
		mockNext := &mocks.MockBookUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewBookUseCaseWithMetrics(mockNext, mockMetrics)

		book := &bookDomain.Book{ID: "book-1", Title: "Norwegian Wood"}
		mockNext.On("Create", ctx, input).Return(book, nil).Once()
		expectRecord(mockMetrics, ctx, "book_create", "success")

		res, err := uc.Create(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, book, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Update error", func(t *testing.T) {
		mockNext := &mocks.MockBookUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewBookUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Update", ctx, "book-1", input).Return(nil, bookDomain.ErrBookNotFound).Once()
		expectRecord(mockMetrics, ctx, "book_update", "error")

		res, err := uc.Update(ctx, "book-1", input)
		assert.ErrorIs(t, err, bookDomain.ErrBookNotFound)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete success", func(t *testing.T) {
		mockNext := &mocks.MockBookUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewBookUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Delete", ctx, "book-1").Return(nil).Once()
		expectRecord(mockMetrics, ctx, "book_delete", "success")

		assert.NoError(t, uc.Delete(ctx, "book-1"))
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Reads are not recorded", func(t *testing.T) {
		mockNext := &mocks.MockBookUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewBookUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Get", ctx, "book-1").Return(&bookDomain.Book{ID: "book-1"}, nil).Once()
		mockNext.On("List", ctx, 0, 10).Return([]*bookDomain.Book{}, nil).Once()

		_, err := uc.Get(ctx, "book-1")
		assert.NoError(t, err)
		_, err = uc.List(ctx, 0, 10)
		assert.NoError(t, err)

		mockMetrics.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
