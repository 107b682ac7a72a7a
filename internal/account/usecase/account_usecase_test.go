package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
	"github.com/allisson/bookstore/internal/identity"
)

type accountFixture struct {
	uc            *accountUseCase
	txManager     *MockTxManager
	accounts      *MockAccountRepository
	registrations *MockRegistrationRepository
	resets        *MockPasswordResetRepository
	cipher        *MockEnvelopeCipher
	otp           *MockOTPService
	tokens        *MockTokenService
	mail          *MockMailQueue
	now           time.Time
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		txManager:     &MockTxManager{},
		accounts:      &MockAccountRepository{},
		registrations: &MockRegistrationRepository{},
		resets:        &MockPasswordResetRepository{},
		cipher:        &MockEnvelopeCipher{},
		otp:           &MockOTPService{},
		tokens:        &MockTokenService{},
		mail:          &MockMailQueue{},
		now:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	config := Config{
		OTPExpiration:           10 * time.Minute,
		PasswordResetExpiration: 30 * time.Minute,
		PasswordResetURL:        "https://books.example.com/password/reset/",
	}
	f.uc = NewAccountUseCase(
		config,
		f.txManager,
		f.accounts,
		f.registrations,
		f.resets,
		f.cipher,
		f.otp,
		f.tokens,
		f.mail,
	).(*accountUseCase)
	f.uc.now = func() time.Time { return f.now }
	return f
}

func testEnvelope(marker byte) *cryptoDomain.Envelope {
	return &cryptoDomain.Envelope{
		Ciphertext: []byte{marker},
		Tag:        []byte{marker, 1},
		Nonce:      []byte{marker, 2},
		Salt:       []byte{marker, 3},
	}
}

func testAccount(username string) *accountDomain.Account {
	return &accountDomain.Account{
		ID:       identity.DeterministicID(username),
		Username: username,
		Email:    username + "@example.com",
		Name:     strings.ToUpper(username),
		Password: testEnvelope('p'),
		Customer: &accountDomain.Customer{},
	}
}

func TestAccountUseCase_SignUp(t *testing.T) {
	ctx := context.Background()
	input := &accountDomain.SignUpInput{
		Username: "alice",
		Email:    "alice@example.com",
		Name:     "Alice Tan",
		Password: "Secret#123",
	}

	t.Run("Success", func(t *testing.T) {
		f := newAccountFixture()
		envelope := testEnvelope('a')

		f.accounts.On("GetByUsername", ctx, "alice").Return(nil, accountDomain.ErrAccountNotFound)
		f.accounts.On("GetByEmail", ctx, "alice@example.com").Return(nil, accountDomain.ErrAccountNotFound)
		f.cipher.On("Encrypt", "Secret#123").Return(envelope, nil)
		f.otp.On("Generate").Return("123456", "otp-hash", nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.registrations.On("DeleteByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(nil)
		f.registrations.On("Create", ctx, mock.MatchedBy(func(r *accountDomain.PendingRegistration) bool {
			return r.ID != "" &&
				r.Username == "alice" &&
				r.Name == "Alice Tan" &&
				r.Password == envelope &&
				r.OTPHash == "otp-hash" &&
				r.ExpiresAt.Equal(f.now.Add(10*time.Minute))
		})).Return(nil)
		f.mail.On("Enqueue", ctx, "alice@example.com", signUpSubject,
			mock.MatchedBy(func(body string) bool { return strings.Contains(body, "123456") }),
		).Return(nil)

		registrationID, err := f.uc.SignUp(ctx, input)
		require.NoError(t, err)
		assert.True(t, identity.Valid(registrationID))
		f.registrations.AssertExpectations(t)
		f.mail.AssertExpectations(t)
	})

	t.Run("Error_UsernameTaken", func(t *testing.T) {
		f := newAccountFixture()
		f.accounts.On("GetByUsername", ctx, "alice").Return(testAccount("alice"), nil)

		_, err := f.uc.SignUp(ctx, input)
		assert.ErrorIs(t, err, accountDomain.ErrAccountAlreadyExists)
		f.cipher.AssertNotCalled(t, "Encrypt", mock.Anything)
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		f := newAccountFixture()
		f.accounts.On("GetByUsername", ctx, "alice").Return(nil, accountDomain.ErrAccountNotFound)
		f.accounts.On("GetByEmail", ctx, "alice@example.com").Return(testAccount("alice2"), nil)

		_, err := f.uc.SignUp(ctx, input)
		assert.ErrorIs(t, err, accountDomain.ErrAccountAlreadyExists)
	})

	t.Run("Error_LookupFails", func(t *testing.T) {
		f := newAccountFixture()
		dbErr := errors.New("database error")
		f.accounts.On("GetByUsername", ctx, "alice").Return(nil, dbErr)

		_, err := f.uc.SignUp(ctx, input)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Error_MailEnqueueFails", func(t *testing.T) {
		f := newAccountFixture()
		mailErr := errors.New("mail error")

		f.accounts.On("GetByUsername", ctx, "alice").Return(nil, accountDomain.ErrAccountNotFound)
		f.accounts.On("GetByEmail", ctx, "alice@example.com").Return(nil, accountDomain.ErrAccountNotFound)
		f.cipher.On("Encrypt", "Secret#123").Return(testEnvelope('a'), nil)
		f.otp.On("Generate").Return("123456", "otp-hash", nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.registrations.On("DeleteByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(nil)
		f.registrations.On("Create", ctx, mock.Anything).Return(nil)
		f.mail.On("Enqueue", ctx, mock.Anything, mock.Anything, mock.Anything).Return(mailErr)

		registrationID, err := f.uc.SignUp(ctx, input)
		assert.ErrorIs(t, err, mailErr)
		assert.Empty(t, registrationID)
	})
}

func TestAccountUseCase_VerifySignUp(t *testing.T) {
	ctx := context.Background()

	newRegistration := func(f *accountFixture) *accountDomain.PendingRegistration {
		return &accountDomain.PendingRegistration{
			ID:        "reg-1",
			Username:  "alice",
			Email:     "alice@example.com",
			Name:      "Alice Tan",
			Password:  testEnvelope('a'),
			OTPHash:   "otp-hash",
			ExpiresAt: f.now.Add(5 * time.Minute),
		}
	}

	t.Run("Success_CreatesCustomerWithDeterministicID", func(t *testing.T) {
		f := newAccountFixture()
		registration := newRegistration(f)

		f.registrations.On("Get", ctx, "reg-1").Return(registration, nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.registrations.On("IncrementAttempts", ctx, "reg-1").Return(1, nil)
		f.otp.On("Verify", "123456", "otp-hash").Return(true)
		f.accounts.On("Create", ctx, mock.MatchedBy(func(a *accountDomain.Account) bool {
			return a.ID == identity.DeterministicID("alice") && a.Customer != nil
		})).Return(nil)
		f.registrations.On("Delete", ctx, "reg-1").Return(nil)

		account, err := f.uc.VerifySignUp(ctx, "reg-1", "123456")
		require.NoError(t, err)
		assert.Equal(t, identity.DeterministicID("alice"), account.ID)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, registration.Password, account.Password)
		assert.False(t, account.IsAdmin)
		assert.NotNil(t, account.Customer)
		f.registrations.AssertExpectations(t)
	})

	t.Run("Error_WrongCodeCountsAttempt", func(t *testing.T) {
		f := newAccountFixture()
		f.registrations.On("Get", ctx, "reg-1").Return(newRegistration(f), nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.registrations.On("IncrementAttempts", ctx, "reg-1").Return(1, nil)
		f.otp.On("Verify", "000000", "otp-hash").Return(false)

		account, err := f.uc.VerifySignUp(ctx, "reg-1", "000000")
		assert.ErrorIs(t, err, accountDomain.ErrInvalidOTP)
		assert.Nil(t, account)
		f.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.registrations.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.registrations.AssertExpectations(t)
	})

	t.Run("Error_LastAttemptDiscardsRegistration", func(t *testing.T) {
		f := newAccountFixture()
		f.registrations.On("Get", ctx, "reg-1").Return(newRegistration(f), nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.registrations.On("IncrementAttempts", ctx, "reg-1").Return(accountDomain.MaxOTPAttempts, nil)
		f.otp.On("Verify", "000000", "otp-hash").Return(false)
		f.registrations.On("Delete", ctx, "reg-1").Return(nil)

		_, err := f.uc.VerifySignUp(ctx, "reg-1", "000000")
		assert.ErrorIs(t, err, accountDomain.ErrInvalidOTP)
		f.registrations.AssertExpectations(t)
	})

	t.Run("Error_AttemptsExhaustedSkipsCodeCheck", func(t *testing.T) {
		f := newAccountFixture()
		f.registrations.On("Get", ctx, "reg-1").Return(newRegistration(f), nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.registrations.On("IncrementAttempts", ctx, "reg-1").Return(accountDomain.MaxOTPAttempts+1, nil)
		f.registrations.On("Delete", ctx, "reg-1").Return(nil)

		_, err := f.uc.VerifySignUp(ctx, "reg-1", "123456")
		assert.ErrorIs(t, err, accountDomain.ErrInvalidOTP)
		f.otp.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
		f.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_ConcurrentWrongCodesDiscardRegistration", func(t *testing.T) {
		f := newAccountFixture()
		registrations := &countingRegistrationRepository{snapshot: *newRegistration(f)}
		f.uc.registrationRepo = registrations
		f.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		f.otp.On("Verify", "000000", "otp-hash").Return(false)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.uc.VerifySignUp(ctx, "reg-1", "000000")
				assert.Error(t, err)
			}()
		}
		wg.Wait()

		assert.True(t, registrations.isDeleted())
		assert.LessOrEqual(t, len(f.otp.Calls), accountDomain.MaxOTPAttempts)
	})

	t.Run("Error_ExpiredCode", func(t *testing.T) {
		f := newAccountFixture()
		registration := newRegistration(f)
		registration.ExpiresAt = f.now

		f.registrations.On("Get", ctx, "reg-1").Return(registration, nil)
		f.registrations.On("Delete", ctx, "reg-1").Return(nil)

		_, err := f.uc.VerifySignUp(ctx, "reg-1", "123456")
		assert.ErrorIs(t, err, accountDomain.ErrInvalidOTP)
		f.otp.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newAccountFixture()
		f.registrations.On("Get", ctx, "missing").Return(nil, accountDomain.ErrRegistrationNotFound)

		_, err := f.uc.VerifySignUp(ctx, "missing", "123456")
		assert.ErrorIs(t, err, accountDomain.ErrRegistrationNotFound)
	})

	t.Run("Error_UsernameTakenMeanwhile", func(t *testing.T) {
		f := newAccountFixture()
		f.registrations.On("Get", ctx, "reg-1").Return(newRegistration(f), nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.registrations.On("IncrementAttempts", ctx, "reg-1").Return(1, nil)
		f.otp.On("Verify", "123456", "otp-hash").Return(true)
		f.accounts.On("Create", ctx, mock.Anything).Return(accountDomain.ErrAccountAlreadyExists)

		_, err := f.uc.VerifySignUp(ctx, "reg-1", "123456")
		assert.ErrorIs(t, err, accountDomain.ErrAccountAlreadyExists)
		f.registrations.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAccountUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ByUsername", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")
		f.accounts.On("GetByUsername", ctx, "alice").Return(account, nil)
		f.cipher.On("Verify", account.Password, "Secret#123").Return(nil)

		res, err := f.uc.Authenticate(ctx, "alice", "Secret#123")
		require.NoError(t, err)
		assert.Equal(t, account, res)
	})

	t.Run("Success_ByEmail", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")
		f.accounts.On("GetByEmail", ctx, "alice@example.com").Return(account, nil)
		f.cipher.On("Verify", account.Password, "Secret#123").Return(nil)

		res, err := f.uc.Authenticate(ctx, "alice@example.com", "Secret#123")
		require.NoError(t, err)
		assert.Equal(t, account, res)
		f.accounts.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Error_WrongPasswordAndUnknownUserLookAlike", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")
		dummy := testEnvelope('d')

		f.accounts.On("GetByUsername", ctx, "alice").Return(account, nil)
		f.accounts.On("GetByUsername", ctx, "mallory").Return(nil, accountDomain.ErrAccountNotFound)
		f.cipher.On("Verify", account.Password, "wrong").Return(cryptoDomain.ErrAuthenticationFailure)
		f.cipher.On("Decoy").Return(dummy)
		f.cipher.On("Verify", dummy, "wrong").Return(cryptoDomain.ErrAuthenticationFailure)

		_, wrongPasswordErr := f.uc.Authenticate(ctx, "alice", "wrong")
		_, unknownUserErr := f.uc.Authenticate(ctx, "mallory", "wrong")

		assert.ErrorIs(t, wrongPasswordErr, accountDomain.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUserErr, accountDomain.ErrInvalidCredentials)
		assert.Equal(t, wrongPasswordErr.Error(), unknownUserErr.Error())
		f.cipher.AssertCalled(t, "Verify", dummy, "wrong")
	})

	t.Run("Error_UnknownUserRunsOneVerifyPerAttempt", func(t *testing.T) {
		f := newAccountFixture()
		dummy := testEnvelope('d')

		f.accounts.On("GetByUsername", ctx, "mallory").Return(nil, accountDomain.ErrAccountNotFound)
		f.cipher.On("Decoy").Return(dummy)
		f.cipher.On("Verify", dummy, mock.Anything).Return(cryptoDomain.ErrAuthenticationFailure)

		for i := 0; i < 3; i++ {
			_, err := f.uc.Authenticate(ctx, "mallory", "guess")
			assert.ErrorIs(t, err, accountDomain.ErrInvalidCredentials)
		}
		f.cipher.AssertNotCalled(t, "Encrypt", mock.Anything)
		f.cipher.AssertNumberOfCalls(t, "Verify", 3)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		f := newAccountFixture()
		dbErr := errors.New("database error")
		f.accounts.On("GetByUsername", ctx, "alice").Return(nil, dbErr)

		_, err := f.uc.Authenticate(ctx, "alice", "Secret#123")
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, accountDomain.ErrInvalidCredentials)
	})
}

func TestAccountUseCase_ResolvePrincipal(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("admin")
		account.IsAdmin = true
		f.accounts.On("Get", ctx, account.ID).Return(account, nil)

		principal, err := f.uc.ResolvePrincipal(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, account.ID, principal.AccountID)
		assert.Equal(t, "admin", principal.Username)
		assert.True(t, principal.IsAdmin)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newAccountFixture()
		f.accounts.On("Get", ctx, "gone").Return(nil, accountDomain.ErrAccountNotFound)

		_, err := f.uc.ResolvePrincipal(ctx, "gone")
		assert.ErrorIs(t, err, accountDomain.ErrAccountNotFound)
	})
}

func TestAccountUseCase_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	input := &accountDomain.UpdateProfileInput{
		Name:             "Alice Tan",
		Email:            "alice@example.com",
		CreditCardNumber: "4111111111111111",
		Address:          "1 Bras Basah Rd",
		Phone:            "+65 6123 4567",
	}

	t.Run("Success_Customer", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")
		f.accounts.On("Get", ctx, account.ID).Return(account, nil)
		f.accounts.On("Update", ctx, account).Return(nil)

		res, err := f.uc.UpdateProfile(ctx, account.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "Alice Tan", res.Name)
		require.NotNil(t, res.Customer)
		assert.Equal(t, "1 Bras Basah Rd", res.Customer.Address)
		assert.Equal(t, f.now, res.UpdatedAt)
		f.accounts.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Success_AdminIgnoresCustomerFields", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")
		account.IsAdmin = true
		account.Customer = nil
		f.accounts.On("Get", ctx, account.ID).Return(account, nil)
		f.accounts.On("Update", ctx, account).Return(nil)

		res, err := f.uc.UpdateProfile(ctx, account.ID, input)
		require.NoError(t, err)
		assert.Nil(t, res.Customer)
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("bob")
		f.accounts.On("Get", ctx, account.ID).Return(account, nil)
		f.accounts.On("GetByEmail", ctx, "alice@example.com").Return(testAccount("alice"), nil)

		_, err := f.uc.UpdateProfile(ctx, account.ID, input)
		assert.ErrorIs(t, err, accountDomain.ErrAccountAlreadyExists)
		f.accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAccountUseCase_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")
		oldEnvelope := account.Password
		newEnvelope := testEnvelope('n')

		f.accounts.On("Get", ctx, account.ID).Return(account, nil)
		f.cipher.On("Verify", oldEnvelope, "Old#12345").Return(nil)
		f.cipher.On("Encrypt", "New#12345").Return(newEnvelope, nil)
		f.accounts.On("Update", ctx, mock.MatchedBy(func(a *accountDomain.Account) bool {
			return a.Password == newEnvelope
		})).Return(nil)

		require.NoError(t, f.uc.ChangePassword(ctx, account.ID, "Old#12345", "New#12345"))
		f.accounts.AssertExpectations(t)
	})

	t.Run("Error_WrongCurrentPassword", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")

		f.accounts.On("Get", ctx, account.ID).Return(account, nil)
		f.cipher.On("Verify", account.Password, "wrong").Return(cryptoDomain.ErrAuthenticationFailure)

		err := f.uc.ChangePassword(ctx, account.ID, "wrong", "New#12345")
		assert.ErrorIs(t, err, accountDomain.ErrInvalidCredentials)
		f.cipher.AssertNotCalled(t, "Encrypt", mock.Anything)
		f.accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAccountUseCase_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_MailsLink", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")

		f.accounts.On("GetByEmail", ctx, "alice@example.com").Return(account, nil)
		f.tokens.On("GenerateToken").Return("plain-token", "token-hash", nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.resets.On("Create", ctx, mock.MatchedBy(func(r *accountDomain.PasswordReset) bool {
			return r.AccountID == account.ID &&
				r.TokenHash == "token-hash" &&
				r.UsedAt == nil &&
				r.ExpiresAt.Equal(f.now.Add(30*time.Minute))
		})).Return(nil)
		f.mail.On("Enqueue", ctx, "alice@example.com", passwordResetSubject,
			mock.MatchedBy(func(body string) bool {
				return strings.Contains(body, "https://books.example.com/password/reset/plain-token") &&
					!strings.Contains(body, "token-hash")
			}),
		).Return(nil)

		require.NoError(t, f.uc.RequestPasswordReset(ctx, "alice@example.com"))
		f.resets.AssertExpectations(t)
		f.mail.AssertExpectations(t)
	})

	t.Run("Success_UnknownEmailIsSilent", func(t *testing.T) {
		f := newAccountFixture()
		f.accounts.On("GetByEmail", ctx, "nobody@example.com").Return(nil, accountDomain.ErrAccountNotFound)

		require.NoError(t, f.uc.RequestPasswordReset(ctx, "nobody@example.com"))
		f.tokens.AssertNotCalled(t, "GenerateToken")
		f.mail.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAccountUseCase_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAccountFixture()
		account := testAccount("alice")
		newEnvelope := testEnvelope('n')
		reset := &accountDomain.PasswordReset{ID: "reset-1", AccountID: account.ID, ExpiresAt: f.now.Add(time.Minute)}

		f.tokens.On("HashToken", "plain-token").Return("token-hash")
		f.resets.On("GetByTokenHash", ctx, "token-hash").Return(reset, nil)
		f.accounts.On("Get", ctx, account.ID).Return(account, nil)
		f.cipher.On("Encrypt", "New#12345").Return(newEnvelope, nil)
		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil)
		f.resets.On("MarkUsed", ctx, "reset-1").Return(nil)
		f.accounts.On("Update", ctx, mock.MatchedBy(func(a *accountDomain.Account) bool {
			return a.Password == newEnvelope
		})).Return(nil)

		require.NoError(t, f.uc.ResetPassword(ctx, "plain-token", "New#12345"))
		f.resets.AssertExpectations(t)
		f.accounts.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		reset func(f *accountFixture) *accountDomain.PasswordReset
	}{
		{
			name: "used token",
			reset: func(f *accountFixture) *accountDomain.PasswordReset {
				usedAt := f.now.Add(-time.Minute)
				return &accountDomain.PasswordReset{ID: "reset-1", ExpiresAt: f.now.Add(time.Minute), UsedAt: &usedAt}
			},
		},
		{
			name: "expired token",
			reset: func(f *accountFixture) *accountDomain.PasswordReset {
				return &accountDomain.PasswordReset{ID: "reset-1", ExpiresAt: f.now}
			},
		},
	}

	for _, tt := range tests {
		t.Run("Error_"+tt.name, func(t *testing.T) {
			f := newAccountFixture()
			f.tokens.On("HashToken", "plain-token").Return("token-hash")
			f.resets.On("GetByTokenHash", ctx, "token-hash").Return(tt.reset(f), nil)

			err := f.uc.ResetPassword(ctx, "plain-token", "New#12345")
			assert.ErrorIs(t, err, accountDomain.ErrInvalidResetToken)
			f.cipher.AssertNotCalled(t, "Encrypt", mock.Anything)
		})
	}

	t.Run("Error_UnknownToken", func(t *testing.T) {
		f := newAccountFixture()
		f.tokens.On("HashToken", "nope").Return("nope-hash")
		f.resets.On("GetByTokenHash", ctx, "nope-hash").Return(nil, accountDomain.ErrPasswordResetNotFound)

		err := f.uc.ResetPassword(ctx, "nope", "New#12345")
		assert.ErrorIs(t, err, accountDomain.ErrInvalidResetToken)
	})
}

func TestAccountUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Admin", func(t *testing.T) {
		f := newAccountFixture()
		input := &accountDomain.CreateAccountInput{
			Username: "clerk",
			Email:    "clerk@example.com",
			Name:     "Clerk",
			Password: "Clerk#1234",
			IsAdmin:  true,
		}

		f.accounts.On("GetByUsername", ctx, "clerk").Return(nil, accountDomain.ErrAccountNotFound)
		f.accounts.On("GetByEmail", ctx, "clerk@example.com").Return(nil, accountDomain.ErrAccountNotFound)
		f.cipher.On("Encrypt", "Clerk#1234").Return(testEnvelope('c'), nil)
		f.accounts.On("Create", ctx, mock.Anything).Return(nil)

		account, err := f.uc.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, identity.DeterministicID("clerk"), account.ID)
		assert.True(t, account.IsAdmin)
		assert.Nil(t, account.Customer)
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		f := newAccountFixture()
		input := &accountDomain.CreateAccountInput{Username: "alice", Email: "alice@example.com"}
		f.accounts.On("GetByUsername", ctx, "alice").Return(testAccount("alice"), nil)

		_, err := f.uc.Create(ctx, input)
		assert.ErrorIs(t, err, accountDomain.ErrAccountAlreadyExists)
	})
}

func TestAccountUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAccountFixture()
		f.accounts.On("Delete", ctx, "id-2").Return(nil)

		assert.NoError(t, f.uc.Delete(ctx, "id-1", "id-2"))
	})

	t.Run("Error_Self", func(t *testing.T) {
		f := newAccountFixture()

		err := f.uc.Delete(ctx, "id-1", "id-1")
		assert.ErrorIs(t, err, accountDomain.ErrCannotDeleteSelf)
		f.accounts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAccountUseCase_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	adminID := identity.DeterministicID("admin")

	newInput := func() *accountDomain.CreateAccountInput {
		return &accountDomain.CreateAccountInput{
			Username: "admin",
			Email:    "admin@bookstore.local",
			Name:     "Administrator",
			Password: "Admin#1234",
		}
	}

	t.Run("Success_Creates", func(t *testing.T) {
		f := newAccountFixture()
		f.accounts.On("Get", ctx, adminID).Return(nil, accountDomain.ErrAccountNotFound)
		f.cipher.On("Encrypt", "Admin#1234").Return(testEnvelope('a'), nil)
		f.accounts.On("Create", ctx, mock.MatchedBy(func(a *accountDomain.Account) bool {
			return a.ID == adminID && a.IsAdmin && a.Customer == nil
		})).Return(nil)

		created, err := f.uc.EnsureAdmin(ctx, newInput(), false)
		require.NoError(t, err)
		assert.True(t, created)
		f.accounts.AssertExpectations(t)
	})

	t.Run("Success_ExistingKeepsPassword", func(t *testing.T) {
		f := newAccountFixture()
		existing := testAccount("admin")
		oldEnvelope := existing.Password
		f.accounts.On("Get", ctx, adminID).Return(existing, nil)
		f.accounts.On("Update", ctx, existing).Return(nil)

		created, err := f.uc.EnsureAdmin(ctx, newInput(), false)
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, existing.IsAdmin)
		assert.Equal(t, oldEnvelope, existing.Password)
		f.cipher.AssertNotCalled(t, "Encrypt", mock.Anything)
	})

	t.Run("Success_ExistingResetsPassword", func(t *testing.T) {
		f := newAccountFixture()
		existing := testAccount("admin")
		newEnvelope := testEnvelope('n')
		f.accounts.On("Get", ctx, adminID).Return(existing, nil)
		f.cipher.On("Encrypt", "Admin#1234").Return(newEnvelope, nil)
		f.accounts.On("Update", ctx, existing).Return(nil)

		created, err := f.uc.EnsureAdmin(ctx, newInput(), true)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, newEnvelope, existing.Password)
	})
}
