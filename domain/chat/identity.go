package chat

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var identityValidate = validator.New()

// Identity is the lookup key for a user's conversation state. It is an
// e-mail address, possibly fictitious; only its syntactic shape is checked.
type Identity string

// NewIdentity normalizes and validates an e-mail address.
func NewIdentity(email string) (Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", ErrEmptyIdentity
	}
	if err := identityValidate.Var(email, "email"); err != nil {
		return "", ErrInvalidIdentity
	}
	return Identity(email), nil
}

func (i Identity) String() string {
	return string(i)
}

// IsZero reports whether the identity is unset.
func (i Identity) IsZero() bool {
	return i == ""
}
