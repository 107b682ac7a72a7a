// Package domain defines outgoing e-mail messages and their delivery status.
package domain

import (
	"time"

	"github.com/allisson/bookstore/internal/errors"
)

// MessageStatus represents the delivery status of a queued message.
type MessageStatus string

const (
	MessageStatusPending MessageStatus = "pending"
	MessageStatusSent    MessageStatus = "sent"
	MessageStatusFailed  MessageStatus = "failed"
)

// Message is an e-mail queued in the same transaction as the change that caused it.
type Message struct {
	ID        string
	Recipient string
	Subject   string
	Body      string
	Status    MessageStatus
	Retries   int
	LastError *string
	SentAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrInvalidRecipient indicates a message without a recipient address.
var ErrInvalidRecipient = errors.Wrap(errors.ErrInvalidInput, "invalid recipient")
