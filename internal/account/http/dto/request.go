// Package dto provides data transfer objects for account HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	customValidation "github.com/allisson/bookstore/internal/validation"
)

// SignUpRequest contains the sign-up form of a new customer.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"` //nolint:gosec // request field
}

// Validate checks if the sign-up request is valid.
func (r *SignUpRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.Username),
		validation.Field(&r.Email, validation.Required, customValidation.Email, validation.Length(3, 254)),
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Required, customValidation.StrongPassword),
	)
}

// ToInput converts the request to a use case input.
func (r *SignUpRequest) ToInput() *accountDomain.SignUpInput {
	return &accountDomain.SignUpInput{
		Username: r.Username,
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// VerifySignUpRequest carries the one-time code mailed at sign-up.
type VerifySignUpRequest struct {
	RegistrationID string `json:"registration_id"`
	Code           string `json:"code"`
}

// Validate checks if the verification request is valid.
func (r *VerifySignUpRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RegistrationID, validation.Required, customValidation.ID),
		validation.Field(&r.Code, validation.Required, customValidation.Digits, validation.Length(4, 10)),
	)
}

// LoginRequest contains credentials. Login accepts a username or an email.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"` //nolint:gosec // request field
}

// Validate checks if the login request is valid.
// Password strength is not checked here so that old passwords still work.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Login, validation.Required, customValidation.NotBlank, validation.Length(1, 254)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 1024)),
	)
}

// UpdateProfileRequest contains the editable profile fields.
type UpdateProfileRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	ProfilePicture   string `json:"profile_picture"`
	CreditCardNumber string `json:"credit_card_number"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
}

// Validate checks if the profile update request is valid.
func (r *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, customValidation.Email, validation.Length(3, 254)),
		validation.Field(&r.ProfilePicture, validation.Length(0, 500)),
		validation.Field(&r.CreditCardNumber, customValidation.Digits, validation.Length(12, 19)),
		validation.Field(&r.Address, validation.Length(0, 500)),
		validation.Field(&r.Phone, validation.Length(0, 32)),
	)
}

// ToInput converts the request to a use case input.
func (r *UpdateProfileRequest) ToInput() *accountDomain.UpdateProfileInput {
	return &accountDomain.UpdateProfileInput{
		Name:             r.Name,
		Email:            r.Email,
		ProfilePicture:   r.ProfilePicture,
		CreditCardNumber: r.CreditCardNumber,
		Address:          r.Address,
		Phone:            r.Phone,
	}
}

// ChangePasswordRequest contains the current and the new password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"` //nolint:gosec // request field
	NewPassword     string `json:"new_password"`     //nolint:gosec // request field
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, customValidation.StrongPassword),
	)
}

// ForgotPasswordRequest asks for a password reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate checks if the forgot password request is valid.
func (r *ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
	)
}

// ResetPasswordRequest redeems a password reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"` //nolint:gosec // request field
}

// Validate checks if the reset password request is valid.
func (r *ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank, validation.Length(1, 128)),
		validation.Field(&r.NewPassword, validation.Required, customValidation.StrongPassword),
	)
}

// CreateAccountRequest contains the account an admin creates directly.
type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"` //nolint:gosec // request field
	IsAdmin  bool   `json:"is_admin"`
}

// Validate checks if the create account request is valid.
func (r *CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.Username),
		validation.Field(&r.Email, validation.Required, customValidation.Email, validation.Length(3, 254)),
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Required, customValidation.StrongPassword),
	)
}

// ToInput converts the request to a use case input.
func (r *CreateAccountRequest) ToInput() *accountDomain.CreateAccountInput {
	return &accountDomain.CreateAccountInput{
		Username: r.Username,
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		IsAdmin:  r.IsAdmin,
	}
}
