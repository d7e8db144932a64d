package credentials

import "context"

// Repo is the durable credential store. Implementations must enforce
// username uniqueness themselves: Insert on a taken username returns
// ErrUsernameTaken even under concurrent registration, so callers never
// need a racy existence pre-check.
type Repo interface {
	// FindByUsername returns the record for an exact (case-sensitive)
	// username match, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	// Insert stores a new record, or returns ErrUsernameTaken.
	Insert(ctx context.Context, credential *Credential) error
}
