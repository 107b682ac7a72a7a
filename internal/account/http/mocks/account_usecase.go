// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
)

// MockAccountUseCase is a mock implementation of AccountUseCase for testing.
type MockAccountUseCase struct {
	mock.Mock
}

// SignUp mocks the SignUp method of AccountUseCase.
func (m *MockAccountUseCase) SignUp(ctx context.Context, input *accountDomain.SignUpInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// VerifySignUp mocks the VerifySignUp method of AccountUseCase.
func (m *MockAccountUseCase) VerifySignUp(
	ctx context.Context,
	registrationID, code string,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, registrationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// Authenticate mocks the Authenticate method of AccountUseCase.
func (m *MockAccountUseCase) Authenticate(
	ctx context.Context,
	login, password string,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// ResolvePrincipal mocks the ResolvePrincipal method of AccountUseCase.
func (m *MockAccountUseCase) ResolvePrincipal(
	ctx context.Context,
	accountID string,
) (*sessionDomain.Principal, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionDomain.Principal), args.Error(1)
}

// Get mocks the Get method of AccountUseCase.
func (m *MockAccountUseCase) Get(ctx context.Context, accountID string) (*accountDomain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// UpdateProfile mocks the UpdateProfile method of AccountUseCase.
func (m *MockAccountUseCase) UpdateProfile(
	ctx context.Context,
	accountID string,
	input *accountDomain.UpdateProfileInput,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// ChangePassword mocks the ChangePassword method of AccountUseCase.
func (m *MockAccountUseCase) ChangePassword(
	ctx context.Context,
	accountID, currentPassword, newPassword string,
) error {
	args := m.Called(ctx, accountID, currentPassword, newPassword)
	return args.Error(0)
}

// RequestPasswordReset mocks the RequestPasswordReset method of AccountUseCase.
func (m *MockAccountUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// ResetPassword mocks the ResetPassword method of AccountUseCase.
func (m *MockAccountUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

// List mocks the List method of AccountUseCase.
func (m *MockAccountUseCase) List(ctx context.Context, offset, limit int) ([]*accountDomain.Account, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accountDomain.Account), args.Error(1)
}

// Create mocks the Create method of AccountUseCase.
func (m *MockAccountUseCase) Create(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
) (*accountDomain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// Delete mocks the Delete method of AccountUseCase.
func (m *MockAccountUseCase) Delete(ctx context.Context, actorID, accountID string) error {
	args := m.Called(ctx, actorID, accountID)
	return args.Error(0)
}

// EnsureAdmin mocks the EnsureAdmin method of AccountUseCase.
func (m *MockAccountUseCase) EnsureAdmin(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
	resetPassword bool,
) (bool, error) {
	args := m.Called(ctx, input, resetPassword)
	return args.Bool(0), args.Error(1)
}

// MockSessionStore is a mock implementation of the session store used by handlers.
type MockSessionStore struct {
	mock.Mock
}

// Login mocks the Login method of the session store.
func (m *MockSessionStore) Login(c *gin.Context, principal *sessionDomain.Principal) error {
	args := m.Called(c, principal)
	return args.Error(0)
}

// Logout mocks the Logout method of the session store.
func (m *MockSessionStore) Logout(c *gin.Context) {
	m.Called(c)
}
