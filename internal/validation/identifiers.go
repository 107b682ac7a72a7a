package validation

import (
	"regexp"

	validation "github.com/jellydator/validation"

	"github.com/allisson/bookstore/internal/identity"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,32}$`)

// Username validates account usernames: 3 to 32 letters, digits, dots, dashes or underscores.
var Username = validation.NewStringRuleWithError(
	func(s string) bool {
		return usernameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_username",
		"must be 3 to 32 characters of letters, digits, '.', '-' or '_'",
	),
)

// Digits validates that a string holds only ASCII digits.
var Digits = validation.NewStringRuleWithError(
	func(s string) bool {
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
		return true
	},
	validation.NewError("validation_digits", "must contain only digits"),
)

// ID validates the string form of an account or book identifier.
var ID = validation.NewStringRuleWithError(
	identity.Valid,
	validation.NewError("validation_id", "must be a valid id"),
)
