package service

import (
	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
)

// AEADManagerService implements the AEADManager interface for creating AEAD cipher instances.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher creates an AEAD cipher instance for the specified algorithm.
// Returns ErrInvalidKeySize if key is not 32 bytes, ErrInvalidTagSize if the tag size
// does not fit the algorithm or ErrUnsupportedAlgorithm if algorithm is unknown.
func (am *AEADManagerService) CreateCipher(
	key []byte,
	alg cryptoDomain.Algorithm,
	tagSize int,
) (AEAD, error) {
	// Validate key size
	if len(key) != 32 {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	// Create cipher based on algorithm
	switch alg {
	case cryptoDomain.AESGCM:
		if tagSize < cryptoDomain.MinTagSize || tagSize > cryptoDomain.MaxTagSize {
			return nil, cryptoDomain.ErrInvalidTagSize
		}
		return NewAESGCM(key, tagSize)
	case cryptoDomain.ChaCha20:
		if tagSize != cryptoDomain.MaxTagSize {
			return nil, cryptoDomain.ErrInvalidTagSize
		}
		return NewChaCha20Poly1305(key)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}
