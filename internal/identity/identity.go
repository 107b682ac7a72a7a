// Package identity generates the string identifiers used for accounts, books and
// other persisted records.
package identity

import (
	"github.com/google/uuid"
)

// DeterministicID returns a name-based UUIDv5 computed over the DNS namespace.
// The same name always yields the same identifier, across processes and restarts,
// which lets account ids be derived from usernames.
func DeterministicID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name)).String()
}

// RandomID returns a fresh random UUIDv4.
// It panics if the system random source fails.
func RandomID() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
