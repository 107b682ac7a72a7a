package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
)

const redacted = "[REDACTED]"

// KMSKeeper is the subset of *secrets.Keeper used to unwrap the secret key.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// SecretKey is the process-wide key used by the keyed signer.
//
// It is loaded once at startup and never rotated while the process runs. The key
// material is unexported and the value redacts itself from fmt and slog output.
type SecretKey struct {
	key []byte
}

// NewSecretKey copies raw into a new SecretKey. Keys must be 32 to 64 bytes long.
func NewSecretKey(raw []byte) (*SecretKey, error) {
	if len(raw) < SecretKeySize || len(raw) > MaxSecretKeySize {
		return nil, ErrInvalidSecretKeySize
	}
	key := make([]byte, len(raw))
	copy(key, raw)
	return &SecretKey{key: key}, nil
}

// LoadSecretKey decodes a base64 SESSION_SECRET_KEY value.
//
// When keeper is non-nil the decoded bytes are a KMS ciphertext and are decrypted
// before use. Decoded intermediates are zeroed before returning.
func LoadSecretKey(ctx context.Context, encoded string, keeper KMSKeeper) (*SecretKey, error) {
	if encoded == "" {
		return nil, ErrSecretKeyNotSet
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKeyBase64, err)
	}
	defer Zero(decoded)

	if keeper == nil {
		return NewSecretKey(decoded)
	}

	plaintext, err := keeper.Decrypt(ctx, decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session secret key: %w", err)
	}
	defer Zero(plaintext)

	return NewSecretKey(plaintext)
}

// Bytes returns the key material. Callers must not modify or retain the slice.
func (k *SecretKey) Bytes() []byte {
	return k.key
}

// Close zeroes the key material.
func (k *SecretKey) Close() {
	Zero(k.key)
}

// String implements fmt.Stringer.
func (k *SecretKey) String() string {
	return redacted
}

// GoString implements fmt.GoStringer so %#v is redacted too.
func (k *SecretKey) GoString() string {
	return redacted
}

// LogValue implements slog.LogValuer.
func (k *SecretKey) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
