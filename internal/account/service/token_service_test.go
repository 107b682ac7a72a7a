package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateToken(t *testing.T) {
	service := NewTokenService()

	plainToken, tokenHash, err := service.GenerateToken()
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(plainToken)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	assert.Len(t, tokenHash, 64)
	assert.Equal(t, service.HashToken(plainToken), tokenHash)

	other, _, err := service.GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, plainToken, other)
}

func TestTokenService_HashToken(t *testing.T) {
	service := NewTokenService()

	// sha256("abc")
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		service.HashToken("abc"),
	)
}
