package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
)

// testKDFParams keeps scrypt cheap enough for unit tests.
func testKDFParams(alg cryptoDomain.Algorithm, tagLength int) cryptoDomain.KDFParams {
	return cryptoDomain.KDFParams{
		N:         1 << 10,
		R:         8,
		P:         1,
		KeyLength: 32,
		TagLength: tagLength,
		Algorithm: alg,
	}
}

func newTestEnvelopeCipher(t *testing.T, params cryptoDomain.KDFParams) *ScryptEnvelopeCipher {
	t.Helper()
	c, err := NewEnvelopeCipher(params, NewAEADManager())
	require.NoError(t, err)
	return c
}

func TestNewEnvelopeCipher(t *testing.T) {
	t.Run("invalid params", func(t *testing.T) {
		params := testKDFParams(cryptoDomain.AESGCM, 16)
		params.N = 1000
		c, err := NewEnvelopeCipher(params, NewAEADManager())
		assert.Nil(t, c)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKDFParams)
	})
}

func TestScryptEnvelopeCipher_Decoy(t *testing.T) {
	c := newTestEnvelopeCipher(t, testKDFParams(cryptoDomain.AESGCM, 16))

	decoy := c.Decoy()
	require.NotNil(t, decoy)
	assert.Same(t, decoy, c.Decoy())
	assert.Len(t, decoy.Salt, cryptoDomain.SaltSize)
	assert.Len(t, decoy.Tag, 16)

	// A full key derivation runs, so the failure is an authentication failure
	// rather than an early envelope rejection.
	assert.ErrorIs(t, c.Verify(decoy, "Secret#123"), cryptoDomain.ErrAuthenticationFailure)
	assert.ErrorIs(t, c.Verify(decoy, ""), cryptoDomain.ErrAuthenticationFailure)
}

func TestScryptEnvelopeCipher_EncryptDecrypt(t *testing.T) {
	variants := []struct {
		name   string
		params cryptoDomain.KDFParams
	}{
		{"aes-gcm 16-byte tag", testKDFParams(cryptoDomain.AESGCM, 16)},
		{"aes-gcm 12-byte tag", testKDFParams(cryptoDomain.AESGCM, 12)},
		{"chacha20-poly1305", testKDFParams(cryptoDomain.ChaCha20, 16)},
	}

	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			c := newTestEnvelopeCipher(t, v.params)

			envelope, err := c.Encrypt("hello world")
			require.NoError(t, err)
			assert.Len(t, envelope.Salt, 32)
			assert.Len(t, envelope.Tag, v.params.TagLength)
			assert.Len(t, envelope.Ciphertext, len("hello world"))
			assert.NotEqual(t, []byte("hello world"), envelope.Ciphertext)

			t.Run("right secret opens", func(t *testing.T) {
				plaintext, err := c.Decrypt(envelope, "hello world")
				require.NoError(t, err)
				assert.Equal(t, []byte("hello world"), plaintext)
				assert.NoError(t, c.Verify(envelope, "hello world"))
			})

			t.Run("wrong secret fails", func(t *testing.T) {
				plaintext, err := c.Decrypt(envelope, "wrong")
				assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailure)
				assert.Nil(t, plaintext)
				assert.ErrorIs(t, c.Verify(envelope, "wrong"), cryptoDomain.ErrAuthenticationFailure)
			})

			t.Run("fresh salt and nonce per encryption", func(t *testing.T) {
				other, err := c.Encrypt("hello world")
				require.NoError(t, err)
				assert.NotEqual(t, envelope.Salt, other.Salt)
				assert.NotEqual(t, envelope.Nonce, other.Nonce)
				assert.NotEqual(t, envelope.Ciphertext, other.Ciphertext)
			})
		})
	}
}

func TestScryptEnvelopeCipher_Tampering(t *testing.T) {
	c := newTestEnvelopeCipher(t, testKDFParams(cryptoDomain.AESGCM, 16))
	envelope, err := c.Encrypt("correct horse battery staple")
	require.NoError(t, err)

	clone := func() *cryptoDomain.Envelope {
		return &cryptoDomain.Envelope{
			Ciphertext: append([]byte(nil), envelope.Ciphertext...),
			Tag:        append([]byte(nil), envelope.Tag...),
			Nonce:      append([]byte(nil), envelope.Nonce...),
			Salt:       append([]byte(nil), envelope.Salt...),
		}
	}

	tests := []struct {
		name    string
		mutate  func(e *cryptoDomain.Envelope)
		wantErr error
	}{
		{"flipped ciphertext bit", func(e *cryptoDomain.Envelope) { e.Ciphertext[0] ^= 0x01 }, cryptoDomain.ErrAuthenticationFailure},
		{"flipped tag bit", func(e *cryptoDomain.Envelope) { e.Tag[0] ^= 0x01 }, cryptoDomain.ErrAuthenticationFailure},
		{"flipped nonce bit", func(e *cryptoDomain.Envelope) { e.Nonce[0] ^= 0x01 }, cryptoDomain.ErrAuthenticationFailure},
		{"flipped salt bit", func(e *cryptoDomain.Envelope) { e.Salt[0] ^= 0x01 }, cryptoDomain.ErrAuthenticationFailure},
		{"truncated tag", func(e *cryptoDomain.Envelope) { e.Tag = e.Tag[:8] }, cryptoDomain.ErrAuthenticationFailure},
		{"short nonce", func(e *cryptoDomain.Envelope) { e.Nonce = e.Nonce[:4] }, cryptoDomain.ErrInvalidEnvelope},
		{"missing salt", func(e *cryptoDomain.Envelope) { e.Salt = nil }, cryptoDomain.ErrInvalidEnvelope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := clone()
			tt.mutate(e)
			plaintext, err := c.Decrypt(e, "correct horse battery staple")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, plaintext)
		})
	}

	t.Run("nil envelope", func(t *testing.T) {
		_, err := c.Decrypt(nil, "x")
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEnvelope)
	})
}

func TestScryptEnvelopeCipher_EmptySecret(t *testing.T) {
	c := newTestEnvelopeCipher(t, testKDFParams(cryptoDomain.ChaCha20, 16))

	envelope, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, envelope.Ciphertext)
	assert.NoError(t, c.Verify(envelope, ""))
	assert.ErrorIs(t, c.Verify(envelope, "x"), cryptoDomain.ErrAuthenticationFailure)
}
