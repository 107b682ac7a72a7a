package usecase

import (
	"context"
	"time"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	"github.com/allisson/bookstore/internal/metrics"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
)

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record counts one operation and its duration under the account domain.
func (a *accountUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, a.metrics, "account", operation, start, err)
}

// SignUp records metrics for sign-up operations.
func (a *accountUseCaseWithMetrics) SignUp(ctx context.Context, input *accountDomain.SignUpInput) (string, error) {
	start := time.Now()
	registrationID, err := a.next.SignUp(ctx, input)
	a.record(ctx, "signup", start, err)
	return registrationID, err
}

// VerifySignUp records metrics for sign-up verification operations.
func (a *accountUseCaseWithMetrics) VerifySignUp(
	ctx context.Context,
	registrationID, code string,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.VerifySignUp(ctx, registrationID, code)
	a.record(ctx, "signup_verify", start, err)
	return account, err
}

// Authenticate records metrics for login attempts.
func (a *accountUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	login, password string,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Authenticate(ctx, login, password)
	a.record(ctx, "login", start, err)
	return account, err
}

// ResolvePrincipal is called on every authenticated request and is not instrumented.
func (a *accountUseCaseWithMetrics) ResolvePrincipal(
	ctx context.Context,
	accountID string,
) (*sessionDomain.Principal, error) {
	return a.next.ResolvePrincipal(ctx, accountID)
}

// Get records metrics for account retrieval operations.
func (a *accountUseCaseWithMetrics) Get(ctx context.Context, accountID string) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Get(ctx, accountID)
	a.record(ctx, "account_get", start, err)
	return account, err
}

// UpdateProfile records metrics for profile update operations.
func (a *accountUseCaseWithMetrics) UpdateProfile(
	ctx context.Context,
	accountID string,
	input *accountDomain.UpdateProfileInput,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.UpdateProfile(ctx, accountID, input)
	a.record(ctx, "account_update", start, err)
	return account, err
}

// ChangePassword records metrics for password change operations.
func (a *accountUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	accountID, currentPassword, newPassword string,
) error {
	start := time.Now()
	err := a.next.ChangePassword(ctx, accountID, currentPassword, newPassword)
	a.record(ctx, "password_change", start, err)
	return err
}

// RequestPasswordReset records metrics for password reset requests.
func (a *accountUseCaseWithMetrics) RequestPasswordReset(ctx context.Context, email string) error {
	start := time.Now()
	err := a.next.RequestPasswordReset(ctx, email)
	a.record(ctx, "password_forgot", start, err)
	return err
}

// ResetPassword records metrics for password reset redemptions.
func (a *accountUseCaseWithMetrics) ResetPassword(ctx context.Context, token, newPassword string) error {
	start := time.Now()
	err := a.next.ResetPassword(ctx, token, newPassword)
	a.record(ctx, "password_reset", start, err)
	return err
}

// List records metrics for account list operations.
func (a *accountUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*accountDomain.Account, error) {
	start := time.Now()
	accounts, err := a.next.List(ctx, offset, limit)
	a.record(ctx, "account_list", start, err)
	return accounts, err
}

// Create records metrics for admin account creation.
func (a *accountUseCaseWithMetrics) Create(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
) (*accountDomain.Account, error) {
	start := time.Now()
	account, err := a.next.Create(ctx, input)
	a.record(ctx, "account_create", start, err)
	return account, err
}

// Delete records metrics for account deletion.
func (a *accountUseCaseWithMetrics) Delete(ctx context.Context, actorID, accountID string) error {
	start := time.Now()
	err := a.next.Delete(ctx, actorID, accountID)
	a.record(ctx, "account_delete", start, err)
	return err
}

// EnsureAdmin records metrics for admin bootstrap.
func (a *accountUseCaseWithMetrics) EnsureAdmin(
	ctx context.Context,
	input *accountDomain.CreateAccountInput,
	resetPassword bool,
) (bool, error) {
	start := time.Now()
	created, err := a.next.EnsureAdmin(ctx, input, resetPassword)
	a.record(ctx, "admin_ensure", start, err)
	return created, err
}
