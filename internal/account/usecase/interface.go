// Package usecase implements account registration, authentication and administration.
package usecase

import (
	"context"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
)

// AccountRepository defines persistence operations for accounts.
// Implementations must support transaction-aware operations via context propagation.
type AccountRepository interface {
	// Create stores a new account. Returns ErrAccountAlreadyExists on a duplicate
	// id, username or email.
	Create(ctx context.Context, account *accountDomain.Account) error

	// Update modifies an existing account including its password envelope.
	Update(ctx context.Context, account *accountDomain.Account) error

	// Get retrieves an account by ID. Returns ErrAccountNotFound if not found.
	Get(ctx context.Context, accountID string) (*accountDomain.Account, error)

	// GetByUsername retrieves an account by username. Returns ErrAccountNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*accountDomain.Account, error)

	// GetByEmail retrieves an account by email. Returns ErrAccountNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*accountDomain.Account, error)

	// List retrieves accounts ordered by username.
	List(ctx context.Context, offset, limit int) ([]*accountDomain.Account, error)

	// Delete removes an account. Returns ErrAccountNotFound if not found.
	Delete(ctx context.Context, accountID string) error
}

// RegistrationRepository defines persistence operations for pending sign-ups.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *accountDomain.PendingRegistration) error

	// Get retrieves a registration by ID. Returns ErrRegistrationNotFound if not found.
	Get(ctx context.Context, registrationID string) (*accountDomain.PendingRegistration, error)

	// IncrementAttempts atomically adds one attempt and returns the new count.
	IncrementAttempts(ctx context.Context, registrationID string) (int, error)

	Delete(ctx context.Context, registrationID string) error

	// DeleteByUsernameOrEmail discards earlier sign-ups that a new one replaces.
	DeleteByUsernameOrEmail(ctx context.Context, username, email string) error
}

// PasswordResetRepository defines persistence operations for password resets.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *accountDomain.PasswordReset) error

	// GetByTokenHash retrieves a reset by token hash. Returns ErrPasswordResetNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*accountDomain.PasswordReset, error)

	// MarkUsed sets used_at so the token cannot be redeemed again.
	MarkUsed(ctx context.Context, resetID string) error
}

// MailQueue enqueues e-mails in the transaction carried by ctx.
type MailQueue interface {
	Enqueue(ctx context.Context, recipient, subject, body string) error
}

// AccountUseCase defines business logic operations for bookstore accounts.
type AccountUseCase interface {
	// SignUp validates uniqueness, seals the password and stores a pending registration
	// whose one-time code is mailed to the user. Returns the registration id.
	SignUp(ctx context.Context, input *accountDomain.SignUpInput) (string, error)

	// VerifySignUp confirms a registration with its code and creates the customer account.
	// Returns ErrInvalidOTP for wrong or expired codes; after MaxOTPAttempts wrong codes
	// the registration is discarded.
	VerifySignUp(ctx context.Context, registrationID, code string) (*accountDomain.Account, error)

	// Authenticate checks a username (or email) and password.
	// Returns ErrInvalidCredentials for both unknown accounts and wrong passwords.
	Authenticate(ctx context.Context, login, password string) (*accountDomain.Account, error)

	// ResolvePrincipal loads the session principal of an account.
	ResolvePrincipal(ctx context.Context, accountID string) (*sessionDomain.Principal, error)

	// Get retrieves an account by ID.
	Get(ctx context.Context, accountID string) (*accountDomain.Account, error)

	// UpdateProfile modifies the profile of an account. Customer fields are ignored for admins.
	UpdateProfile(
		ctx context.Context,
		accountID string,
		input *accountDomain.UpdateProfileInput,
	) (*accountDomain.Account, error)

	// ChangePassword replaces the password after checking the current one.
	// Returns ErrInvalidCredentials when currentPassword is wrong.
	ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error

	// RequestPasswordReset mails a reset link when email belongs to an account.
	// Unknown emails succeed silently.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword redeems a reset token. Returns ErrInvalidResetToken for unknown,
	// used or expired tokens.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// List retrieves accounts with pagination support.
	List(ctx context.Context, offset, limit int) ([]*accountDomain.Account, error)

	// Create creates an account directly, without e-mail verification.
	Create(ctx context.Context, input *accountDomain.CreateAccountInput) (*accountDomain.Account, error)

	// Delete removes an account. An admin cannot delete the account they are signed in with.
	Delete(ctx context.Context, actorID, accountID string) error

	// EnsureAdmin creates the admin account when it does not exist. An existing account is
	// promoted to admin and, when resetPassword is set, given password.
	// Reports whether the account was created.
	EnsureAdmin(ctx context.Context, input *accountDomain.CreateAccountInput, resetPassword bool) (bool, error)
}
