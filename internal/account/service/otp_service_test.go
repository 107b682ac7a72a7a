package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOTPService(t *testing.T) {
	service := NewOTPService(6)
	assert.NotNil(t, service)
	assert.IsType(t, &otpService{}, service)
}

func TestOTPService_Generate(t *testing.T) {
	service := NewOTPService(6)

	t.Run("Success_DigitsOfConfiguredLength", func(t *testing.T) {
		code, codeHash, err := service.Generate()
		require.NoError(t, err)

		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "unexpected character %q", r)
		}
		assert.Contains(t, codeHash, "$argon2id$")
		assert.NotContains(t, codeHash, code)
	})

	t.Run("Success_CodeVerifies", func(t *testing.T) {
		code, codeHash, err := service.Generate()
		require.NoError(t, err)

		assert.True(t, service.Verify(code, codeHash))
	})

	t.Run("Success_CustomLength", func(t *testing.T) {
		code, _, err := NewOTPService(8).Generate()
		require.NoError(t, err)
		assert.Len(t, code, 8)
	})
}

func TestOTPService_Verify(t *testing.T) {
	service := NewOTPService(6)
	code, codeHash, err := service.Generate()
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	assert.False(t, service.Verify(wrong, codeHash))
	assert.False(t, service.Verify(code, "not-a-phc-string"))
	assert.False(t, service.Verify("", codeHash))
}
