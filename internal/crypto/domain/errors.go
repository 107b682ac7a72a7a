package domain

import (
	"github.com/allisson/bookstore/internal/errors"
)

// Cryptographic error definitions.
//
// Authentication failures wrap ErrUnauthorized so that anything reaching the HTTP
// layer is answered with 401 and no detail about which check failed.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a derived or configured key has the wrong length.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidTagSize indicates an AES-GCM tag length outside 12..16 bytes, or a
	// ChaCha20-Poly1305 tag length other than 16.
	ErrInvalidTagSize = errors.Wrap(errors.ErrInvalidInput, "invalid tag size")

	// ErrInvalidKDFParams indicates unusable scrypt parameters.
	ErrInvalidKDFParams = errors.Wrap(errors.ErrInvalidInput, "invalid kdf parameters")

	// ErrInvalidEnvelope indicates an envelope with missing or mis-sized parts.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid envelope")

	// ErrAuthenticationFailure indicates a signature or AEAD tag did not verify.
	// No plaintext is ever returned alongside it.
	ErrAuthenticationFailure = errors.Wrap(errors.ErrUnauthorized, "authentication failure")

	// ErrSecretKeyNotSet indicates SESSION_SECRET_KEY is empty.
	ErrSecretKeyNotSet = errors.New("session secret key is not set")

	// ErrInvalidSecretKeyBase64 indicates SESSION_SECRET_KEY is not valid base64.
	ErrInvalidSecretKeyBase64 = errors.New("invalid base64 encoding for session secret key")

	// ErrInvalidSecretKeySize indicates the decoded secret key is not 32 to 64 bytes long.
	ErrInvalidSecretKeySize = errors.New("session secret key must be 32 to 64 bytes")
)
