package domain

// KDFParams configures the scrypt key derivation and the AEAD used on top of it.
type KDFParams struct {
	N         int       // CPU/memory cost, a power of two greater than 1
	R         int       // Block size
	P         int       // Parallelism
	KeyLength int       // Derived key length in bytes
	TagLength int       // AEAD tag length in bytes
	Algorithm Algorithm // AEAD algorithm
}

// DefaultKDFParams returns the production parameters: N=2^17, r=8, p=1, a 32-byte key
// and AES-256-GCM with a 16-byte tag.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		N:         1 << 17,
		R:         8,
		P:         1,
		KeyLength: 32,
		TagLength: MaxTagSize,
		Algorithm: AESGCM,
	}
}

// Validate checks the parameters against the limits of scrypt and the chosen AEAD.
func (p KDFParams) Validate() error {
	if p.N <= 1 || p.N&(p.N-1) != 0 || p.R <= 0 || p.P <= 0 {
		return ErrInvalidKDFParams
	}
	if uint64(p.R)*uint64(p.P) >= 1<<30 {
		return ErrInvalidKDFParams
	}
	if p.KeyLength != 32 {
		return ErrInvalidKeySize
	}

	switch p.Algorithm {
	case AESGCM:
		if p.TagLength < MinTagSize || p.TagLength > MaxTagSize {
			return ErrInvalidTagSize
		}
	case ChaCha20:
		if p.TagLength != MaxTagSize {
			return ErrInvalidTagSize
		}
	default:
		return ErrUnsupportedAlgorithm
	}

	return nil
}
