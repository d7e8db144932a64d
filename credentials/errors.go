package credentials

import "errors"

var (
	ErrMissingUsername = errors.New("missing username")
	ErrMissingPassword = errors.New("missing password")
	ErrUsernameTaken   = errors.New("username taken")
	ErrNotFound        = errors.New("credential not found")

	// ErrCorruptVerifier marks a stored verifier that does not decode to
	// exactly salt and key material. It denies authentication; it never
	// crashes the request pipeline.
	ErrCorruptVerifier = errors.New("corrupt password verifier")
)
