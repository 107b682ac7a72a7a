package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
	"github.com/allisson/bookstore/internal/mail/domain"
)

// MySQLMessageRepository handles message persistence for MySQL
type MySQLMessageRepository struct {
	db *sql.DB
}

// NewMySQLMessageRepository creates a new MySQLMessageRepository
func NewMySQLMessageRepository(db *sql.DB) *MySQLMessageRepository {
	return &MySQLMessageRepository{
		db: db,
	}
}

// Create inserts a new message
func (r *MySQLMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO mail_messages (id, recipient, subject, body, status, retries, last_error, sent_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(6), NOW(6))`

	_, err := querier.ExecContext(ctx, query, message.ID, message.Recipient, message.Subject, message.Body,
		message.Status, message.Retries, message.LastError, message.SentAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create mail message")
	}
	return nil
}

// GetPending retrieves pending messages, least recently attempted first, locking them for this transaction
func (r *MySQLMessageRepository) GetPending(ctx context.Context, limit int) ([]*domain.Message, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, recipient, subject, body, status, retries, last_error, sent_at, created_at, updated_at
			  FROM mail_messages
			  WHERE status = ?
			  ORDER BY updated_at ASC, created_at ASC
			  LIMIT ?
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
func (r *MySQLMessageRepository) Update(ctx context.Context, message *domain.Message) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE mail_messages
			  SET body = ?, status = ?, retries = ?, last_error = ?, sent_at = ?, updated_at = NOW(6)
			  WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, message.Body, message.Status, message.Retries,
		message.LastError, message.SentAt, message.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update mail message")
	}
	return nil
}
