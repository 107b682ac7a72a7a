package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *accountDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *accountDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, accountID string) (*accountDomain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, offset, limit int) ([]*accountDomain.Account, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accountDomain.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// MockRegistrationRepository is a mock implementation of RegistrationRepository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(
	ctx context.Context,
	registration *accountDomain.PendingRegistration,
) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Get(
	ctx context.Context,
	registrationID string,
) (*accountDomain.PendingRegistration, error) {
	args := m.Called(ctx, registrationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.PendingRegistration), args.Error(1)
}

func (m *MockRegistrationRepository) IncrementAttempts(ctx context.Context, registrationID string) (int, error) {
	args := m.Called(ctx, registrationID)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, registrationID string) error {
	args := m.Called(ctx, registrationID)
	return args.Error(0)
}

func (m *MockRegistrationRepository) DeleteByUsernameOrEmail(ctx context.Context, username, email string) error {
	args := m.Called(ctx, username, email)
	return args.Error(0)
}

// MockPasswordResetRepository is a mock implementation of PasswordResetRepository
type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) Create(ctx context.Context, reset *accountDomain.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *MockPasswordResetRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*accountDomain.PasswordReset, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.PasswordReset), args.Error(1)
}

func (m *MockPasswordResetRepository) MarkUsed(ctx context.Context, resetID string) error {
	args := m.Called(ctx, resetID)
	return args.Error(0)
}

// MockEnvelopeCipher is a mock implementation of service.EnvelopeCipher
type MockEnvelopeCipher struct {
	mock.Mock
}

func (m *MockEnvelopeCipher) Encrypt(secret string) (*cryptoDomain.Envelope, error) {
	args := m.Called(secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Envelope), args.Error(1)
}

func (m *MockEnvelopeCipher) Decrypt(envelope *cryptoDomain.Envelope, secret string) ([]byte, error) {
	args := m.Called(envelope, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEnvelopeCipher) Verify(envelope *cryptoDomain.Envelope, secret string) error {
	args := m.Called(envelope, secret)
	return args.Error(0)
}

func (m *MockEnvelopeCipher) Decoy() *cryptoDomain.Envelope {
	args := m.Called()
	return args.Get(0).(*cryptoDomain.Envelope)
}

// MockOTPService is a mock implementation of service.OTPService
type MockOTPService struct {
	mock.Mock
}

func (m *MockOTPService) Generate() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockOTPService) Verify(code string, codeHash string) bool {
	args := m.Called(code, codeHash)
	return args.Bool(0)
}

// MockTokenService is a mock implementation of service.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

// MockMailQueue is a mock implementation of MailQueue
type MockMailQueue struct {
	mock.Mock
}

func (m *MockMailQueue) Enqueue(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

// countingRegistrationRepository serves one registration from a stale snapshot while
// keeping the attempt counter shared between goroutines.
type countingRegistrationRepository struct {
	mu       sync.Mutex
	snapshot accountDomain.PendingRegistration
	attempts int
	deleted  bool
}

func (r *countingRegistrationRepository) Create(context.Context, *accountDomain.PendingRegistration) error {
	return nil
}

func (r *countingRegistrationRepository) Get(context.Context, string) (*accountDomain.PendingRegistration, error) {
	registration := r.snapshot
	return &registration, nil
}

func (r *countingRegistrationRepository) IncrementAttempts(context.Context, string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleted {
		return 0, accountDomain.ErrRegistrationNotFound
	}
	r.attempts++
	return r.attempts, nil
}

func (r *countingRegistrationRepository) Delete(context.Context, string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = true
	return nil
}

func (r *countingRegistrationRepository) DeleteByUsernameOrEmail(context.Context, string, string) error {
	return nil
}

func (r *countingRegistrationRepository) isDeleted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleted
}
