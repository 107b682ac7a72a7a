package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	accountService "github.com/allisson/bookstore/internal/account/service"
	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
	cryptoService "github.com/allisson/bookstore/internal/crypto/service"
	"github.com/allisson/bookstore/internal/database"
	apperrors "github.com/allisson/bookstore/internal/errors"
	"github.com/allisson/bookstore/internal/identity"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
)

const (
	signUpSubject        = "Verify your BrasBasahBooks account"
	passwordResetSubject = "Reset your BrasBasahBooks password"
)

// Config holds account lifecycle settings.
type Config struct {
	OTPExpiration           time.Duration
	PasswordResetExpiration time.Duration
	PasswordResetURL        string
}

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	config           Config
	txManager        database.TxManager
	accountRepo      AccountRepository
	registrationRepo RegistrationRepository
	resetRepo        PasswordResetRepository
	envelopeCipher   cryptoService.EnvelopeCipher
	otpService       accountService.OTPService
	tokenService     accountService.TokenService
	mailQueue        MailQueue
	now              func() time.Time
}

// NewAccountUseCase creates a new AccountUseCase with the provided dependencies.
func NewAccountUseCase(
	config Config,
	txManager database.TxManager,
	accountRepo AccountRepository,
	registrationRepo RegistrationRepository,
	resetRepo PasswordResetRepository,
	envelopeCipher cryptoService.EnvelopeCipher,
	otpService accountService.OTPService,
	tokenService accountService.TokenService,
	mailQueue MailQueue,
) AccountUseCase {
	return &accountUseCase{
		config:           config,
		txManager:        txManager,
		accountRepo:      accountRepo,
		registrationRepo: registrationRepo,
		resetRepo:        resetRepo,
		envelopeCipher:   envelopeCipher,
		otpService:       otpService,
		tokenService:     tokenService,
		mailQueue:        mailQueue,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// SignUp stores a pending registration and queues its verification code.
func (a *accountUseCase) SignUp(ctx context.Context, input *accountDomain.SignUpInput) (string, error) {
	if err := a.ensureAvailable(ctx, input.Username, input.Email, ""); err != nil {
		return "", err
	}

	envelope, err := a.envelopeCipher.Encrypt(input.Password)
	if err != nil {
		return "", err
	}

	code, codeHash, err := a.otpService.Generate()
	if err != nil {
		return "", err
	}

	now := a.now()
	registration := &accountDomain.PendingRegistration{
		ID:        identity.RandomID(),
		Username:  input.Username,
		Email:     input.Email,
		Name:      input.Name,
		Password:  envelope,
		OTPHash:   codeHash,
		ExpiresAt: now.Add(a.config.OTPExpiration),
		CreatedAt: now,
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nYour BrasBasahBooks verification code is %s. It expires in %d minutes.\n",
		input.Username, code, int(a.config.OTPExpiration.Minutes()),
	)

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.registrationRepo.DeleteByUsernameOrEmail(ctx, input.Username, input.Email); err != nil {
			return err
		}
		if err := a.registrationRepo.Create(ctx, registration); err != nil {
			return err
		}
		return a.mailQueue.Enqueue(ctx, input.Email, signUpSubject, body)
	})
	if err != nil {
		return "", err
	}

	return registration.ID, nil
}

// VerifySignUp confirms a registration and creates the customer account.
func (a *accountUseCase) VerifySignUp(
	ctx context.Context,
	registrationID, code string,
) (*accountDomain.Account, error) {
	registration, err := a.registrationRepo.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if registration.IsExpired(a.now()) {
		if err := a.registrationRepo.Delete(ctx, registration.ID); err != nil {
			return nil, err
		}
		return nil, accountDomain.ErrInvalidOTP
	}

	// The attempt is claimed before the code is checked so concurrent guesses share one counter.
	var attempts int
	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		attempts, err = a.registrationRepo.IncrementAttempts(ctx, registration.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if attempts > accountDomain.MaxOTPAttempts {
		if err := a.registrationRepo.Delete(ctx, registration.ID); err != nil {
			return nil, err
		}
		return nil, accountDomain.ErrInvalidOTP
	}

	if !a.otpService.Verify(code, registration.OTPHash) {
		if attempts >= accountDomain.MaxOTPAttempts {
			if err := a.registrationRepo.Delete(ctx, registration.ID); err != nil {
				return nil, err
			}
		}
		return nil, accountDomain.ErrInvalidOTP
	}

	now := a.now()
	account := &accountDomain.Account{
		ID:        identity.DeterministicID(registration.Username),
		Username:  registration.Username,
		Email:     registration.Email,
		Name:      registration.Name,
		Password:  registration.Password,
		Customer:  &accountDomain.Customer{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.accountRepo.Create(ctx, account); err != nil {
			return err
		}
		return a.registrationRepo.Delete(ctx, registration.ID)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Authenticate checks a username or email and a password.
func (a *accountUseCase) Authenticate(ctx context.Context, login, password string) (*accountDomain.Account, error) {
	var account *accountDomain.Account
	var err error
	if strings.Contains(login, "@") {
		account, err = a.accountRepo.GetByEmail(ctx, login)
	} else {
		account, err = a.accountRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// Spend the same KDF work as a real check so response times do not reveal usernames.
			a.verifyDummy(password)
			return nil, accountDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := a.verifyPassword(account, password); err != nil {
		return nil, err
	}

	return account, nil
}

// ResolvePrincipal loads the session principal of an account.
func (a *accountUseCase) ResolvePrincipal(ctx context.Context, accountID string) (*sessionDomain.Principal, error) {
	account, err := a.accountRepo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Principal(), nil
}

// Get retrieves an account by ID.
func (a *accountUseCase) Get(ctx context.Context, accountID string) (*accountDomain.Account, error) {
	return a.accountRepo.Get(ctx, accountID)
}

// UpdateProfile modifies the profile of an account.
func (a *accountUseCase) UpdateProfile(
	ctx context.Context,
	accountID string,
	input *accountDomain.UpdateProfileInput,
) (*accountDomain.Account, error) {
	account, err := a.accountRepo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if input.Email != account.Email {
		if err := a.ensureAvailable(ctx, "", input.Email, account.ID); err != nil {
			return nil, err
		}
	}

	account.Name = input.Name
	account.Email = input.Email
	account.ProfilePicture = input.ProfilePicture
	if !account.IsAdmin {
		account.Customer = &accountDomain.Customer{
			CreditCardNumber: input.CreditCardNumber,
			Address:          input.Address,
			Phone:            input.Phone,
		}
	}
	account.UpdatedAt = a.now()

	if err := a.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ChangePassword replaces the password after checking the current one.
func (a *accountUseCase) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	account, err := a.accountRepo.Get(ctx, accountID)
	if err != nil {
		return err
	}

	if err := a.verifyPassword(account, currentPassword); err != nil {
		return err
	}

	envelope, err := a.envelopeCipher.Encrypt(newPassword)
	if err != nil {
		return err
	}

	account.Password = envelope
	account.UpdatedAt = a.now()
	return a.accountRepo.Update(ctx, account)
}

// RequestPasswordReset queues a reset link for the account owning email.
func (a *accountUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := a.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	plainToken, tokenHash, err := a.tokenService.GenerateToken()
	if err != nil {
		return err
	}

	now := a.now()
	reset := &accountDomain.PasswordReset{
		ID:        identity.RandomID(),
		AccountID: account.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(a.config.PasswordResetExpiration),
		CreatedAt: now,
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nUse the link below to choose a new password. It expires in %d minutes.\n\n%s%s\n\n"+
			"If you did not ask for a password reset, ignore this e-mail.\n",
		account.Username, int(a.config.PasswordResetExpiration.Minutes()), a.config.PasswordResetURL, plainToken,
	)

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.resetRepo.Create(ctx, reset); err != nil {
			return err
		}
		return a.mailQueue.Enqueue(ctx, account.Email, passwordResetSubject, body)
	})
}

// ResetPassword redeems a reset token and sets a new password.
func (a *accountUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := a.resetRepo.GetByTokenHash(ctx, a.tokenService.HashToken(token))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return accountDomain.ErrInvalidResetToken
		}
		return err
	}

	if !reset.IsUsable(a.now()) {
		return accountDomain.ErrInvalidResetToken
	}

	account, err := a.accountRepo.Get(ctx, reset.AccountID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return accountDomain.ErrInvalidResetToken
		}
		return err
	}

	envelope, err := a.envelopeCipher.Encrypt(newPassword)
	if err != nil {
		return err
	}
	account.Password = envelope
	account.UpdatedAt = a.now()

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.resetRepo.MarkUsed(ctx, reset.ID); err != nil {
			return err
		}
		return a.accountRepo.Update(ctx, account)
	})
}

// List retrieves accounts with pagination support.
func (a *accountUseCase) List(ctx context.Context, offset, limit int) ([]*accountDomain.Account, error) {
	return a.accountRepo.List(ctx, offset, limit)
}

// Create creates an account directly, without e-mail verification.
func (a *accountUseCase) Create(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
) (*accountDomain.Account, error) {
	if err := a.ensureAvailable(ctx, input.Username, input.Email, ""); err != nil {
		return nil, err
	}

	account, err := a.newAccount(input)
	if err != nil {
		return nil, err
	}

	if err := a.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Delete removes an account other than the actor's own.
func (a *accountUseCase) Delete(ctx context.Context, actorID, accountID string) error {
	if actorID == accountID {
		return accountDomain.ErrCannotDeleteSelf
	}
	return a.accountRepo.Delete(ctx, accountID)
}

// EnsureAdmin creates or promotes the admin account.
func (a *accountUseCase) EnsureAdmin(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
	resetPassword bool,
) (bool, error) {
	input.IsAdmin = true

	account, err := a.accountRepo.Get(ctx, identity.DeterministicID(input.Username))
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}

		account, err = a.newAccount(input)
		if err != nil {
			return false, err
		}
		if err := a.accountRepo.Create(ctx, account); err != nil {
			return false, err
		}
		return true, nil
	}

	account.IsAdmin = true
	account.Customer = nil
	if resetPassword {
		envelope, err := a.envelopeCipher.Encrypt(input.Password)
		if err != nil {
			return false, err
		}
		account.Password = envelope
	}
	account.UpdatedAt = a.now()

	return false, a.accountRepo.Update(ctx, account)
}

// newAccount builds an account with a sealed password and an id derived from the username.
func (a *accountUseCase) newAccount(input *accountDomain.CreateAccountInput) (*accountDomain.Account, error) {
	envelope, err := a.envelopeCipher.Encrypt(input.Password)
	if err != nil {
		return nil, err
	}

	now := a.now()
	account := &accountDomain.Account{
		ID:        identity.DeterministicID(input.Username),
		Username:  input.Username,
		Email:     input.Email,
		Name:      input.Name,
		Password:  envelope,
		IsAdmin:   input.IsAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !input.IsAdmin {
		account.Customer = &accountDomain.Customer{}
	}
	return account, nil
}

// ensureAvailable returns ErrAccountAlreadyExists when username or email belongs to an
// account other than exceptID. Empty values are not checked.
func (a *accountUseCase) ensureAvailable(ctx context.Context, username, email, exceptID string) error {
	if username != "" {
		if err := a.checkTaken(a.accountRepo.GetByUsername(ctx, username)); err != nil {
			return err
		}
	}
	if email != "" {
		account, err := a.accountRepo.GetByEmail(ctx, email)
		if err == nil && account.ID == exceptID {
			return nil
		}
		if err := a.checkTaken(account, err); err != nil {
			return err
		}
	}
	return nil
}

func (a *accountUseCase) checkTaken(_ *accountDomain.Account, err error) error {
	if err == nil {
		return accountDomain.ErrAccountAlreadyExists
	}
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return err
}

// verifyPassword opens the account's envelope with password.
func (a *accountUseCase) verifyPassword(account *accountDomain.Account, password string) error {
	err := a.envelopeCipher.Verify(account.Password, password)
	if err == nil {
		return nil
	}
	if apperrors.Is(err, cryptoDomain.ErrAuthenticationFailure) ||
		apperrors.Is(err, cryptoDomain.ErrInvalidEnvelope) {
		return accountDomain.ErrInvalidCredentials
	}
	return err
}

func (a *accountUseCase) verifyDummy(password string) {
	_ = a.envelopeCipher.Verify(a.envelopeCipher.Decoy(), password)
}
