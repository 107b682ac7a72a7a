package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
)

// ScryptEnvelopeCipher implements EnvelopeCipher with scrypt key derivation and an AEAD.
//
// Each Encrypt draws a new 32-byte salt and a new nonce, so sealing the same secret
// twice yields unrelated envelopes. Derived keys are zeroed as soon as the operation ends.
type ScryptEnvelopeCipher struct {
	params      cryptoDomain.KDFParams
	aeadManager AEADManager
	decoy       *cryptoDomain.Envelope
}

// NewEnvelopeCipher creates an envelope cipher after validating params.
func NewEnvelopeCipher(
	params cryptoDomain.KDFParams,
	aeadManager AEADManager,
) (*ScryptEnvelopeCipher, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	c := &ScryptEnvelopeCipher{params: params, aeadManager: aeadManager}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate decoy secret: %w", err)
	}
	decoy, err := c.Encrypt(hex.EncodeToString(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to seal decoy envelope: %w", err)
	}
	c.decoy = decoy
	return c, nil
}

// Decoy returns the envelope sealed at construction under a random secret.
func (c *ScryptEnvelopeCipher) Decoy() *cryptoDomain.Envelope {
	return c.decoy
}

func (c *ScryptEnvelopeCipher) newAEAD(secret string, salt []byte) (AEAD, error) {
	key, err := scrypt.Key([]byte(secret), salt, c.params.N, c.params.R, c.params.P, c.params.KeyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	return c.aeadManager.CreateCipher(key, c.params.Algorithm, c.params.TagLength)
}

// Encrypt seals secret under a key derived from secret itself.
func (c *ScryptEnvelopeCipher) Encrypt(secret string) (*cryptoDomain.Envelope, error) {
	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := c.newAEAD(secret, salt)
	if err != nil {
		return nil, err
	}

	sealed, nonce, err := aead.Encrypt([]byte(secret), nil)
	if err != nil {
		return nil, err
	}

	split := len(sealed) - aead.Overhead()
	return &cryptoDomain.Envelope{
		Ciphertext: sealed[:split],
		Tag:        sealed[split:],
		Nonce:      nonce,
		Salt:       salt,
	}, nil
}

// Decrypt opens envelope with a key derived from the supplied secret and the stored salt.
func (c *ScryptEnvelopeCipher) Decrypt(envelope *cryptoDomain.Envelope, secret string) ([]byte, error) {
	if err := envelope.Validate(); err != nil {
		return nil, err
	}
	if len(envelope.Tag) != c.params.TagLength {
		return nil, cryptoDomain.ErrAuthenticationFailure
	}

	aead, err := c.newAEAD(secret, envelope.Salt)
	if err != nil {
		return nil, err
	}
	if len(envelope.Nonce) != aead.NonceSize() {
		return nil, cryptoDomain.ErrInvalidEnvelope
	}

	sealed := make([]byte, 0, len(envelope.Ciphertext)+len(envelope.Tag))
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.Tag...)

	plaintext, err := aead.Decrypt(sealed, envelope.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailure
	}
	return plaintext, nil
}

// Verify opens envelope with secret and checks the sealed value equals secret.
func (c *ScryptEnvelopeCipher) Verify(envelope *cryptoDomain.Envelope, secret string) error {
	plaintext, err := c.Decrypt(envelope, secret)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(plaintext)

	if subtle.ConstantTimeCompare(plaintext, []byte(secret)) != 1 {
		return cryptoDomain.ErrAuthenticationFailure
	}
	return nil
}
