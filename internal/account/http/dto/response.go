package dto

import (
	"time"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
)

// SignUpResponse identifies the pending registration awaiting its code.
type SignUpResponse struct {
	RegistrationID string `json:"registration_id"`
}

// CustomerResponse represents customer details. The card number is masked.
type CustomerResponse struct {
	CreditCardNumber string `json:"credit_card_number"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
}

// AccountResponse represents an account in API responses (excludes the password envelope).
type AccountResponse struct {
	ID             string            `json:"id"`
	Username       string            `json:"username"`
	Email          string            `json:"email"`
	Name           string            `json:"name"`
	ProfilePicture string            `json:"profile_picture"`
	IsAdmin        bool              `json:"is_admin"`
	Customer       *CustomerResponse `json:"customer,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// MapAccountToResponse converts a domain account to an API response.
func MapAccountToResponse(account *accountDomain.Account) AccountResponse {
	response := AccountResponse{
		ID:             account.ID,
		Username:       account.Username,
		Email:          account.Email,
		Name:           account.Name,
		ProfilePicture: account.ProfilePicture,
		IsAdmin:        account.IsAdmin,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
	if account.Customer != nil {
		response.Customer = &CustomerResponse{
			CreditCardNumber: account.Customer.MaskedCardNumber(),
			Address:          account.Customer.Address,
			Phone:            account.Customer.Phone,
		}
	}
	return response
}

// ListAccountsResponse represents a paginated list of accounts in API responses.
type ListAccountsResponse struct {
	Data []AccountResponse `json:"data"`
}

// MapAccountsToListResponse converts a slice of domain accounts to a list API response.
func MapAccountsToListResponse(accounts []*accountDomain.Account) ListAccountsResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, MapAccountToResponse(account))
	}
	return ListAccountsResponse{Data: responses}
}
