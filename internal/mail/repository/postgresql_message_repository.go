// Package repository provides data persistence implementations for queued e-mail messages.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
	"github.com/allisson/bookstore/internal/mail/domain"
)

// PostgreSQLMessageRepository handles message persistence for PostgreSQL
type PostgreSQLMessageRepository struct {
	db *sql.DB
}

// NewPostgreSQLMessageRepository creates a new PostgreSQLMessageRepository
func NewPostgreSQLMessageRepository(db *sql.DB) *PostgreSQLMessageRepository {
	return &PostgreSQLMessageRepository{
		db: db,
	}
}

// Create inserts a new message
func (r *PostgreSQLMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO mail_messages (id, recipient, subject, body, status, retries, last_error, sent_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, message.ID, message.Recipient, message.Subject, message.Body,
		message.Status, message.Retries, message.LastError, message.SentAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create mail message")
	}
	return nil
}

// GetPending retrieves pending messages, least recently attempted first, locking them for this transaction
func (r *PostgreSQLMessageRepository) GetPending(ctx context.Context, limit int) ([]*domain.Message, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, recipient, subject, body, status, retries, last_error, sent_at, created_at, updated_at
			  FROM mail_messages
			  WHERE status = $1
			  ORDER BY updated_at ASC, created_at ASC
			  LIMIT $2
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.MessageStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list pending mail messages")
	}
	defer rows.Close() //nolint:errcheck

	var messages []*domain.Message
	for rows.Next() {
		var message domain.Message
		err := rows.Scan(&message.ID, &message.Recipient, &message.Subject, &message.Body, &message.Status,
			&message.Retries, &message.LastError, &message.SentAt, &message.CreatedAt, &message.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan mail message")
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate mail messages")
	}

	return messages, nil
}

// Update updates the delivery state of a message
func (r *PostgreSQLMessageRepository) Update(ctx context.Context, message *domain.Message) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE mail_messages
			  SET body = $1, status = $2, retries = $3, last_error = $4, sent_at = $5, updated_at = NOW()
			  WHERE id = $6`

	_, err := querier.ExecContext(ctx, query, message.Body, message.Status, message.Retries,
		message.LastError, message.SentAt, message.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update mail message")
	}
	return nil
}
