package app

import (
	"fmt"

	bookRepository "github.com/allisson/bookstore/internal/book/repository"
	bookUsecase "github.com/allisson/bookstore/internal/book/usecase"
)

// BookRepository returns the book repository for the configured database driver.
func (c *Container) BookRepository() (bookUsecase.BookRepository, error) {
	var err error
	c.bookRepoInit.Do(func() {
		c.bookRepo, err = c.initBookRepository()
		if err != nil {
			c.initErrors["bookRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["bookRepo"]; exists {
		return nil, storedErr
	}
	return c.bookRepo, nil
}

// BookUseCase returns the catalogue use case wrapped with business metrics.
func (c *Container) BookUseCase() (bookUsecase.BookUseCase, error) {
	var err error
	c.bookUseCaseInit.Do(func() {
		c.bookUseCase, err = c.initBookUseCase()
		if err != nil {
			c.initErrors["bookUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["bookUseCase"]; exists {
		return nil, storedErr
	}
	return c.bookUseCase, nil
}

func (c *Container) initBookRepository() (bookUsecase.BookRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for book repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return bookRepository.NewMySQLBookRepository(db), nil
	case "postgres":
		return bookRepository.NewPostgreSQLBookRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initBookUseCase() (bookUsecase.BookUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for book use case: %w", err)
	}

	bookRepo, err := c.BookRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get book repository for book use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for book use case: %w", err)
	}

	useCase := bookUsecase.NewBookUseCase(txManager, bookRepo)
	return bookUsecase.NewBookUseCaseWithMetrics(useCase, businessMetrics), nil
}
