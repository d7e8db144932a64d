// Package credentials holds the credential records behind registration and
// login: a username plus a non-reversible password verifier. Records are
// created on registration and immutable afterwards; there is no
// password-change path.
package credentials

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credential is a stored user credential. Usernames are unique and
// case-sensitive; the store enforces uniqueness.
type Credential struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Verifier  string    `json:"-"` // salted password verifier - never serialize
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// New builds a credential record for a username and plaintext password,
// deriving a fresh verifier. The plaintext is not retained.
func New(username, password string) (*Credential, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingUsername
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	verifier, err := Hash(password)
	if err != nil {
		return nil, err
	}

	return &Credential{
		ID:        uuid.New().String(),
		Username:  username,
		Verifier:  verifier,
		CreatedAt: time.Now().UTC(),
	}, nil
}
