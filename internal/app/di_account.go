package app

import (
	"fmt"

	accountRepository "github.com/allisson/bookstore/internal/account/repository"
	accountService "github.com/allisson/bookstore/internal/account/service"
	accountUsecase "github.com/allisson/bookstore/internal/account/usecase"
)

// AccountRepository returns the account repository for the configured database driver.
func (c *Container) AccountRepository() (accountUsecase.AccountRepository, error) {
	var err error
	c.accountRepoInit.Do(func() {
		c.accountRepo, err = c.initAccountRepository()
		if err != nil {
			c.initErrors["accountRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountRepo"]; exists {
		return nil, storedErr
	}
	return c.accountRepo, nil
}

// RegistrationRepository returns the pending registration repository.
func (c *Container) RegistrationRepository() (accountUsecase.RegistrationRepository, error) {
	var err error
	c.registrationRepoInit.Do(func() {
		c.registrationRepo, err = c.initRegistrationRepository()
		if err != nil {
			c.initErrors["registrationRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["registrationRepo"]; exists {
		return nil, storedErr
	}
	return c.registrationRepo, nil
}

// PasswordResetRepository returns the password reset repository.
func (c *Container) PasswordResetRepository() (accountUsecase.PasswordResetRepository, error) {
	var err error
	c.resetRepoInit.Do(func() {
		c.resetRepo, err = c.initPasswordResetRepository()
		if err != nil {
			c.initErrors["resetRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resetRepo"]; exists {
		return nil, storedErr
	}
	return c.resetRepo, nil
}

// OTPService returns the sign-up verification code service.
func (c *Container) OTPService() accountService.OTPService {
	c.otpServiceInit.Do(func() {
		c.otpService = accountService.NewOTPService(c.config.OTPLength)
	})
	return c.otpService
}

// TokenService returns the password reset token service.
func (c *Container) TokenService() accountService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = accountService.NewTokenService()
	})
	return c.tokenService
}

// AccountUseCase returns the account use case wrapped with business metrics.
func (c *Container) AccountUseCase() (accountUsecase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

func (c *Container) initAccountRepository() (accountUsecase.AccountRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for account repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return accountRepository.NewMySQLAccountRepository(db), nil
	case "postgres":
		return accountRepository.NewPostgreSQLAccountRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initRegistrationRepository() (accountUsecase.RegistrationRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for registration repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return accountRepository.NewMySQLRegistrationRepository(db), nil
	case "postgres":
		return accountRepository.NewPostgreSQLRegistrationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initPasswordResetRepository() (accountUsecase.PasswordResetRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for password reset repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return accountRepository.NewMySQLPasswordResetRepository(db), nil
	case "postgres":
		return accountRepository.NewPostgreSQLPasswordResetRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAccountUseCase() (accountUsecase.AccountUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for account use case: %w", err)
	}

	accountRepo, err := c.AccountRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get account repository for account use case: %w", err)
	}

	registrationRepo, err := c.RegistrationRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get registration repository for account use case: %w", err)
	}

	resetRepo, err := c.PasswordResetRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get password reset repository for account use case: %w", err)
	}

	envelopeCipher, err := c.EnvelopeCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope cipher for account use case: %w", err)
	}

	dispatcher, err := c.MailDispatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to get mail dispatcher for account use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
	}

	useCaseConfig := accountUsecase.Config{
		OTPExpiration:           c.config.OTPExpiration,
		PasswordResetExpiration: c.config.PasswordResetExpiration,
		PasswordResetURL:        c.config.PasswordResetURL,
	}

	useCase := accountUsecase.NewAccountUseCase(
		useCaseConfig,
		txManager,
		accountRepo,
		registrationRepo,
		resetRepo,
		envelopeCipher,
		c.OTPService(),
		c.TokenService(),
		dispatcher,
	)

	return accountUsecase.NewAccountUseCaseWithMetrics(useCase, businessMetrics), nil
}
