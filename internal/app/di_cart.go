package app

import (
	"fmt"

	cartRepository "github.com/allisson/bookstore/internal/cart/repository"
	cartUsecase "github.com/allisson/bookstore/internal/cart/usecase"
)

// CartRepository returns the cart repository for the configured database driver.
func (c *Container) CartRepository() (cartUsecase.CartRepository, error) {
	var err error
	c.cartRepoInit.Do(func() {
		c.cartRepo, err = c.initCartRepository()
		if err != nil {
			c.initErrors["cartRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cartRepo"]; exists {
		return nil, storedErr
	}
	return c.cartRepo, nil
}

// CartUseCase returns the shopping cart use case wrapped with business metrics.
func (c *Container) CartUseCase() (cartUsecase.CartUseCase, error) {
	var err error
	c.cartUseCaseInit.Do(func() {
		c.cartUseCase, err = c.initCartUseCase()
		if err != nil {
			c.initErrors["cartUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cartUseCase"]; exists {
		return nil, storedErr
	}
	return c.cartUseCase, nil
}

func (c *Container) initCartRepository() (cartUsecase.CartRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for cart repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return cartRepository.NewMySQLCartRepository(db), nil
	case "postgres":
		return cartRepository.NewPostgreSQLCartRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initCartUseCase() (cartUsecase.CartUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for cart use case: %w", err)
	}

	cartRepo, err := c.CartRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart repository for cart use case: %w", err)
	}

	bookRepo, err := c.BookRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get book repository for cart use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for cart use case: %w", err)
	}

	useCase := cartUsecase.NewCartUseCase(txManager, cartRepo, bookRepo)
	return cartUsecase.NewCartUseCaseWithMetrics(useCase, businessMetrics), nil
}
