package domain

import (
	"errors"
)

// Sentinel errors for binding resolution failures
// Use with errors.Is() for checking and fmt.Errorf("%w", ...) for wrapping with context

var (
	// ErrInvalidRoot indicates the binding root exists but is not a directory
	ErrInvalidRoot = errors.New("binding root is not a directory")

	// ErrInvalidBinding indicates a binding has no resolvable type
	ErrInvalidBinding = errors.New("binding has no type")

	// ErrMalformedSecret indicates a secret file could not be read
	ErrMalformedSecret = errors.New("binding secret is unreadable")

	// ErrCredentialSynthesis indicates PEM material could not be turned into a credential store
	ErrCredentialSynthesis = errors.New("credential store synthesis failed")
)
