package service

import (
	"crypto/rand"
	"math/big"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/bookstore/internal/errors"
)

// otpService implements OTPService with uniformly random digits hashed by Argon2id.
type otpService struct {
	length int
	hasher *pwdhash.PasswordHasher
}

// NewOTPService creates an OTPService producing codes of length digits.
func NewOTPService(length int) OTPService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &otpService{
		length: length,
		hasher: hasher,
	}
}

// Generate returns a fresh code and its PHC-formatted Argon2id hash.
func (s *otpService) Generate() (string, string, error) {
	ten := big.NewInt(10)
	digits := make([]byte, s.length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", "", apperrors.Wrap(err, "failed to generate verification code")
		}
		digits[i] = byte('0' + n.Int64())
	}
	code := string(digits)

	codeHash, err := s.hasher.Hash([]byte(code))
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to hash verification code")
	}

	return code, codeHash, nil
}

// Verify performs a constant-time check of code against codeHash.
func (s *otpService) Verify(code string, codeHash string) bool {
	ok, err := s.hasher.Verify([]byte(code), codeHash)
	if err != nil {
		return false
	}
	return ok
}
