// Package service provides the credential helpers of the account module: one-time
// sign-up codes and password reset tokens.
package service

// OTPService generates and checks numeric one-time codes.
// Codes are stored as Argon2id hashes, never in plain text.
type OTPService interface {
	// Generate returns a fresh random code and its hash.
	Generate() (code string, codeHash string, err error)

	// Verify reports whether code matches codeHash.
	Verify(code string, codeHash string) bool
}

// TokenService generates and hashes password reset tokens.
type TokenService interface {
	// GenerateToken returns a random URL-safe token and its SHA-256 hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken returns the hex SHA-256 hash of a token.
	HashToken(plainToken string) string
}
