package app

import (
	"fmt"

	mailRepository "github.com/allisson/bookstore/internal/mail/repository"
	mailService "github.com/allisson/bookstore/internal/mail/service"
	mailUsecase "github.com/allisson/bookstore/internal/mail/usecase"
)

// MessageRepository returns the mail outbox repository for the configured database driver.
func (c *Container) MessageRepository() (mailUsecase.MessageRepository, error) {
	var err error
	c.messageRepoInit.Do(func() {
		c.messageRepo, err = c.initMessageRepository()
		if err != nil {
			c.initErrors["messageRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["messageRepo"]; exists {
		return nil, storedErr
	}
	return c.messageRepo, nil
}

// Mailer returns the SMTP mailer, or a mailer that only logs when SMTP_HOST is empty.
func (c *Container) Mailer() mailService.Mailer {
	c.mailerInit.Do(func() {
		if c.config.SMTPHost == "" {
			c.mailer = mailService.NewLogMailer(c.Logger())
			return
		}
		c.mailer = mailService.NewSMTPMailer(mailService.SMTPConfig{
			Host:     c.config.SMTPHost,
			Port:     c.config.SMTPPort,
			Username: c.config.SMTPUsername,
			Password: c.config.SMTPPassword,
			From:     c.config.SMTPFrom,
		})
	})
	return c.mailer
}

// MailDispatcher returns the mail outbox dispatcher. It is also the queue the account
// use case enqueues its e-mails with.
func (c *Container) MailDispatcher() (*mailUsecase.Dispatcher, error) {
	var err error
	c.mailDispatcherInit.Do(func() {
		c.mailDispatcher, err = c.initMailDispatcher()
		if err != nil {
			c.initErrors["mailDispatcher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["mailDispatcher"]; exists {
		return nil, storedErr
	}
	return c.mailDispatcher, nil
}

func (c *Container) initMessageRepository() (mailUsecase.MessageRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for message repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return mailRepository.NewMySQLMessageRepository(db), nil
	case "postgres":
		return mailRepository.NewPostgreSQLMessageRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initMailDispatcher() (*mailUsecase.Dispatcher, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for mail dispatcher: %w", err)
	}

	messageRepo, err := c.MessageRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get message repository for mail dispatcher: %w", err)
	}

	dispatcherConfig := mailUsecase.Config{
		Interval:   c.config.MailOutboxInterval,
		BatchSize:  c.config.MailOutboxBatchSize,
		MaxRetries: c.config.MailOutboxMaxRetries,
	}

	return mailUsecase.NewDispatcher(dispatcherConfig, txManager, messageRepo, c.Mailer(), c.Logger()), nil
}
