package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/blake2b"

	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
)

// BLAKE2bSigner signs data with keyed BLAKE2b-256 under the session secret key.
//
// Signing is deterministic: the same data and key always produce the same 32-byte tag.
// The signer holds no mutable state and is safe for concurrent use.
type BLAKE2bSigner struct {
	key *cryptoDomain.SecretKey
}

// NewSigner creates a signer bound to key.
func NewSigner(key *cryptoDomain.SecretKey) (*BLAKE2bSigner, error) {
	if key == nil {
		return nil, cryptoDomain.ErrSecretKeyNotSet
	}
	// Probe once so Sign never has to handle a key error.
	if _, err := blake2b.New256(key.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKeySize, err)
	}
	return &BLAKE2bSigner{key: key}, nil
}

// Sign returns the 32-byte keyed BLAKE2b digest of data.
func (s *BLAKE2bSigner) Sign(data []byte) []byte {
	h, err := blake2b.New256(s.key.Bytes())
	if err != nil {
		panic(fmt.Sprintf("blake2b: %v", err))
	}
	h.Write(data)
	return h.Sum(nil)
}

// Verify recomputes the signature of data and compares it with tag in constant time.
// Tags of the wrong length are rejected without comparison.
func (s *BLAKE2bSigner) Verify(data, tag []byte) bool {
	if len(tag) != cryptoDomain.SignatureSize {
		return false
	}
	return subtle.ConstantTimeCompare(s.Sign(data), tag) == 1
}
