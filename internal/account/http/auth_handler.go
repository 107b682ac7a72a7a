package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/bookstore/internal/account/http/dto"
	accountUseCase "github.com/allisson/bookstore/internal/account/usecase"
	"github.com/allisson/bookstore/internal/httputil"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// AuthHandler handles sign-up, login, logout and password recovery.
type AuthHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	sessions       SessionStore
	logger         *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	accountUseCase accountUseCase.AccountUseCase,
	sessions SessionStore,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		accountUseCase: accountUseCase,
		sessions:       sessions,
		logger:         logger,
	}
}

// SignUpHandler starts a registration and mails its verification code.
// POST /api/signup - Returns 201 Created with the registration id.
func (h *AuthHandler) SignUpHandler(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	registrationID, err := h.accountUseCase.SignUp(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.SignUpResponse{RegistrationID: registrationID})
}

// VerifySignUpHandler confirms a registration and logs the new customer in.
// POST /api/signup/verify - Returns 200 OK with the account and sets the session cookie.
func (h *AuthHandler) VerifySignUpHandler(c *gin.Context) {
	var req dto.VerifySignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.VerifySignUp(c.Request.Context(), req.RegistrationID, req.Code)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.sessions.Login(c, account.Principal()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccountToResponse(account))
}

// LoginHandler checks credentials and starts a session.
// POST /api/login - Returns 200 OK and sets the session cookie.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	account, err := h.accountUseCase.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		handleCredentialError(c, err, h.logger)
		return
	}

	if err := h.sessions.Login(c, account.Principal()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.HandleMessageGin(c, http.StatusOK, "Login success!")
}

// LogoutHandler clears the session cookie. Anonymous requests succeed too.
// POST /api/logout - Returns 204 No Content.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	h.sessions.Logout(c)
	c.Data(http.StatusNoContent, "application/json", nil)
}

// ForgotPasswordHandler mails a reset link when the email is registered.
// POST /api/password/forgot - Always returns 202 Accepted for a well-formed request.
func (h *AuthHandler) ForgotPasswordHandler(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.accountUseCase.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.HandleMessageGin(c, http.StatusAccepted,
		"If the email is registered, a password reset link has been sent")
}

// ResetPasswordHandler redeems a reset token.
// POST /api/password/reset - Returns 204 No Content.
func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.accountUseCase.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
