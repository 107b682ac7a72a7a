// Package service provides the cryptographic primitives of the bookstore: the keyed
// session signer and the password envelope cipher built on scrypt and an AEAD.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext (tag appended) and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext (tag appended) using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce length the cipher expects.
	NonceSize() int

	// Overhead returns the authentication tag length appended to every ciphertext.
	Overhead() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher for the algorithm with the given tag size.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm, tagSize int) (AEAD, error)
}

// Signer produces and checks fixed-size keyed signatures.
type Signer interface {
	// Sign returns the 32-byte signature of data. It is deterministic in (data, key).
	Sign(data []byte) []byte

	// Verify reports whether tag is the signature of data, in constant time.
	Verify(data, tag []byte) bool
}

// EnvelopeCipher seals a secret with a key derived from that same secret.
type EnvelopeCipher interface {
	// Encrypt derives a key from secret with a fresh salt and seals secret under it.
	Encrypt(secret string) (*cryptoDomain.Envelope, error)

	// Decrypt re-derives the key from the supplied secret and opens the envelope.
	// Returns ErrAuthenticationFailure when the secret is wrong or the envelope was modified.
	Decrypt(envelope *cryptoDomain.Envelope, secret string) ([]byte, error)

	// Verify reports, as ErrAuthenticationFailure, whether secret does not open the envelope
	// or does not match the sealed value.
	Verify(envelope *cryptoDomain.Envelope, secret string) error

	// Decoy returns an envelope no password opens. Verifying against it costs one key
	// derivation, the same as checking a real password.
	Decoy() *cryptoDomain.Envelope
}

// KMSService opens KMS keepers used to protect the session secret key at rest.
type KMSService interface {
	// OpenKeeper opens a keeper for the key URI.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
