// Package domain defines bookstore accounts, pending sign-ups and password resets.
package domain

import (
	"time"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
)

// Account is a registered user. Its ID is DeterministicID(Username), so an account id
// can be recomputed from the username alone.
//
// The password is never stored: Password holds the envelope obtained by sealing the
// password with a key derived from itself, and only the same password opens it again.
type Account struct {
	ID             string
	Username       string
	Email          string
	Password       *cryptoDomain.Envelope
	ProfilePicture string
	IsAdmin        bool
	Name           string
	Customer       *Customer // nil for admin accounts
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Customer holds the details kept only for customer accounts.
type Customer struct {
	CreditCardNumber string
	Address          string
	Phone            string
}

// Principal returns the session principal of the account.
func (a *Account) Principal() *sessionDomain.Principal {
	return &sessionDomain.Principal{
		AccountID: a.ID,
		Username:  a.Username,
		IsAdmin:   a.IsAdmin,
	}
}

// MaskedCardNumber returns the credit card number with all but the last four digits hidden.
func (c *Customer) MaskedCardNumber() string {
	if c == nil || c.CreditCardNumber == "" {
		return ""
	}
	n := len(c.CreditCardNumber)
	if n <= 4 {
		return c.CreditCardNumber
	}
	masked := make([]byte, n)
	for i := 0; i < n-4; i++ {
		masked[i] = '*'
	}
	copy(masked[n-4:], c.CreditCardNumber[n-4:])
	return string(masked)
}

// SignUpInput contains the data submitted by the sign-up form.
type SignUpInput struct {
	Username string
	Email    string
	Name     string
	Password string
}

// CreateAccountInput contains the data an admin supplies to create an account directly.
type CreateAccountInput struct {
	Username string
	Email    string
	Name     string
	Password string
	IsAdmin  bool
}

// UpdateProfileInput contains the mutable profile fields of an account.
type UpdateProfileInput struct {
	Name             string
	Email            string
	ProfilePicture   string
	CreditCardNumber string
	Address          string
	Phone            string
}
