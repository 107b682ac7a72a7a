package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
	cryptoService "github.com/allisson/bookstore/internal/crypto/service"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
)

// tokenSeparator joins the encoded payload and the encoded signature.
const tokenSeparator = "."

// payload is the signed JSON body of a token. Times are Unix seconds.
type payload struct {
	AccountID string `json:"sub"`
	IsAdmin   bool   `json:"adm"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// Manager implements SessionManager with signed, self-contained tokens:
//
//	base64url(json payload) "." base64url(signature)
//
// Nothing is stored server side; a token is valid for as long as its signature
// verifies and its embedded expiry has not passed.
type Manager struct {
	signer cryptoService.Signer
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager whose sessions last ttl after each issue or renewal.
func NewManager(signer cryptoService.Signer, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		signer: signer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the sliding session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a token for accountID.
func (m *Manager) Issue(accountID string, isAdmin bool) (string, *sessionDomain.Session, error) {
	now := m.now().UTC().Truncate(time.Second)
	return m.encode(&sessionDomain.Session{
		AccountID: accountID,
		IsAdmin:   isAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	})
}

// Renew keeps the account, privilege and issue time of session and moves its expiry
// to now plus the TTL.
func (m *Manager) Renew(session *sessionDomain.Session) (string, *sessionDomain.Session, error) {
	now := m.now().UTC().Truncate(time.Second)
	return m.encode(&sessionDomain.Session{
		AccountID: session.AccountID,
		IsAdmin:   session.IsAdmin,
		IssuedAt:  session.IssuedAt,
		ExpiresAt: now.Add(m.ttl),
	})
}

// Validate checks, in order, the encoding, the signature and the expiry of token.
func (m *Manager) Validate(token string) (*sessionDomain.Session, error) {
	encodedPayload, encodedTag, ok := strings.Cut(token, tokenSeparator)
	if !ok || encodedPayload == "" || strings.Contains(encodedTag, tokenSeparator) {
		return nil, sessionDomain.ErrMalformedSession
	}

	data, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, sessionDomain.ErrMalformedSession
	}
	tag, err := base64.RawURLEncoding.DecodeString(encodedTag)
	if err != nil {
		return nil, sessionDomain.ErrMalformedSession
	}

	if !m.signer.Verify(data, tag) {
		return nil, cryptoDomain.ErrAuthenticationFailure
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil || p.AccountID == "" || p.ExpiresAt == 0 {
		return nil, sessionDomain.ErrMalformedSession
	}

	session := &sessionDomain.Session{
		AccountID: p.AccountID,
		IsAdmin:   p.IsAdmin,
		IssuedAt:  time.Unix(p.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(p.ExpiresAt, 0).UTC(),
	}
	if session.IsExpired(m.now()) {
		return nil, sessionDomain.ErrSessionExpired
	}

	return session, nil
}

func (m *Manager) encode(session *sessionDomain.Session) (string, *sessionDomain.Session, error) {
	data, err := json.Marshal(payload{
		AccountID: session.AccountID,
		IsAdmin:   session.IsAdmin,
		IssuedAt:  session.IssuedAt.Unix(),
		ExpiresAt: session.ExpiresAt.Unix(),
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode session: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(data) +
		tokenSeparator +
		base64.RawURLEncoding.EncodeToString(m.signer.Sign(data))

	return token, session, nil
}
