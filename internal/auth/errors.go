package auth

import "errors"

var (
	// ErrDenied is returned for any failed authentication attempt. Callers
	// cannot tell a missing principal apart from a wrong password.
	ErrDenied = errors.New("auth: denied")

	// ErrInvalidToken covers expired, tampered, malformed and
	// algorithm-mismatched tokens. A single kind on purpose: decode
	// failures carry no diagnostic signal.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrForbidden means the token is valid but lacks the required scope.
	ErrForbidden = errors.New("auth: forbidden")

	// ErrMalformedCredential means a stored password hash could not be
	// parsed. Verification fails closed.
	ErrMalformedCredential = errors.New("auth: malformed credential")

	ErrNotFound     = errors.New("auth: not found")
	ErrConflict     = errors.New("auth: already exists")
	ErrInvalidInput = errors.New("auth: invalid input")
)
