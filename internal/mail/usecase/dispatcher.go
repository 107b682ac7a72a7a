// Package usecase queues e-mail messages transactionally and delivers them in the background.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/bookstore/internal/database"
	"github.com/allisson/bookstore/internal/identity"
	"github.com/allisson/bookstore/internal/mail/domain"
	"github.com/allisson/bookstore/internal/mail/service"
)

// Config holds dispatcher configuration
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// MessageRepository defines message repository operations
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetPending(ctx context.Context, limit int) ([]*domain.Message, error)
	Update(ctx context.Context, message *domain.Message) error
}

// Queue enqueues messages for delivery.
type Queue interface {
	// Enqueue stores a pending message. When ctx carries a transaction the message
	// is committed or rolled back together with it.
	Enqueue(ctx context.Context, recipient, subject, body string) error
}

// Dispatcher delivers queued messages
type Dispatcher struct {
	config      Config
	txManager   database.TxManager
	messageRepo MessageRepository
	mailer      service.Mailer
	logger      *slog.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	config Config,
	txManager database.TxManager,
	messageRepo MessageRepository,
	mailer service.Mailer,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		config:      config,
		txManager:   txManager,
		messageRepo: messageRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

// Enqueue stores a pending message
func (d *Dispatcher) Enqueue(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return domain.ErrInvalidRecipient
	}
	return d.messageRepo.Create(ctx, &domain.Message{
		ID:        identity.RandomID(),
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Status:    domain.MessageStatusPending,
	})
}

// Start runs the delivery loop until ctx is canceled
func (d *Dispatcher) Start(ctx context.Context) error {
	d.logger.Info("starting mail dispatcher",
		slog.Duration("interval", d.config.Interval),
		slog.Int("batch_size", d.config.BatchSize),
	)

	ticker := time.NewTicker(d.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("stopping mail dispatcher")
			return ctx.Err()
		case <-ticker.C:
			if err := d.ProcessPending(ctx); err != nil {
				d.logger.Error("failed to process mail messages", slog.Any("error", err))
			}
		}
	}
}

// ProcessPending delivers up to BatchSize pending messages.
//
// Each message is claimed, sent and marked in its own transaction, so a failure on one
// message never rolls back the status of messages already delivered. Delivered messages
// have their body cleared so one-time codes and reset links do not outlive delivery.
func (d *Dispatcher) ProcessPending(ctx context.Context) error {
	seen := make(map[string]struct{}, d.config.BatchSize)

	for i := 0; i < d.config.BatchSize; i++ {
		var done bool
		err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
			messages, err := d.messageRepo.GetPending(ctx, 1)
			if err != nil {
				return err
			}
			if len(messages) == 0 {
				done = true
				return nil
			}

			message := messages[0]
			if _, ok := seen[message.ID]; ok {
				done = true
				return nil
			}
			seen[message.ID] = struct{}{}

			return d.deliver(ctx, message)
		})
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// deliver sends one message and records the outcome. A message that keeps failing
// is marked failed after MaxRetries.
func (d *Dispatcher) deliver(ctx context.Context, message *domain.Message) error {
	if err := d.mailer.Send(ctx, message); err != nil {
		d.logger.Error("failed to deliver mail message",
			slog.String("message_id", message.ID),
			slog.Any("error", err),
		)

		message.Retries++
		errorMsg := err.Error()
		message.LastError = &errorMsg
		if message.Retries >= d.config.MaxRetries {
			message.Status = domain.MessageStatusFailed
			message.Body = ""
		}
		return d.messageRepo.Update(ctx, message)
	}

	now := time.Now().UTC()
	message.Status = domain.MessageStatusSent
	message.SentAt = &now
	message.Body = ""
	return d.messageRepo.Update(ctx, message)
}
