// Package domain defines the cryptographic value types of the bookstore: the
// process-wide session secret key, scrypt parameters and password envelopes.
package domain

// Algorithm represents the AEAD algorithm used to seal password envelopes.
//
// Both algorithms authenticate the ciphertext, so a wrong password or a modified
// column is detected on decryption instead of yielding garbage plaintext.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. The authentication tag length is configurable
	// between 12 and 16 bytes.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305 with its fixed 16-byte tag.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// SecretKeySize is the size in bytes of a freshly generated session secret key.
	SecretKeySize = 32

	// MaxSecretKeySize is the largest key accepted by keyed BLAKE2b.
	MaxSecretKeySize = 64

	// SignatureSize is the size in bytes of a keyed signature.
	SignatureSize = 32

	// SaltSize is the size in bytes of the random salt fed to scrypt.
	SaltSize = 32

	// MinTagSize and MaxTagSize bound the AES-GCM authentication tag length.
	MinTagSize = 12
	MaxTagSize = 16
)
