package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
)

func TestMapAccountToResponse(t *testing.T) {
	now := time.Now().UTC()

	t.Run("Customer_MasksCard", func(t *testing.T) {
		account := &accountDomain.Account{
			ID:       "id-1",
			Username: "alice",
			Email:    "alice@example.com",
			Name:     "Alice",
			Customer: &accountDomain.Customer{
				CreditCardNumber: "4111111111111111",
				Address:          "1 Bras Basah Rd",
				Phone:            "+65 6123 4567",
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		response := MapAccountToResponse(account)

		assert.Equal(t, "id-1", response.ID)
		assert.False(t, response.IsAdmin)
		require.NotNil(t, response.Customer)
		assert.Equal(t, "************1111", response.Customer.CreditCardNumber)
		assert.Equal(t, "1 Bras Basah Rd", response.Customer.Address)
	})

	t.Run("Admin_OmitsCustomer", func(t *testing.T) {
		account := &accountDomain.Account{ID: "id-2", Username: "admin", IsAdmin: true}

		response := MapAccountToResponse(account)

		assert.True(t, response.IsAdmin)
		assert.Nil(t, response.Customer)
	})
}

func TestMapAccountsToListResponse(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		response := MapAccountsToListResponse(nil)
		assert.NotNil(t, response.Data)
		assert.Empty(t, response.Data)
	})

	t.Run("Multiple", func(t *testing.T) {
		response := MapAccountsToListResponse([]*accountDomain.Account{
			{ID: "id-1", Username: "admin", IsAdmin: true},
			{ID: "id-2", Username: "alice", Customer: &accountDomain.Customer{}},
		})
		require.Len(t, response.Data, 2)
		assert.Equal(t, "alice", response.Data[1].Username)
	})
}
