package auth

import (
	"errors"
	"fmt"
)

type (
	// NotFound indicates the username has no account in the store.
	NotFound struct {
		Username string
	}

	// Conflict indicates the username is already taken.
	Conflict struct {
		Username string
	}

	// InvalidDigest indicates the stored password digest is structurally
	// corrupt and can never verify. It is not a wrong-password verdict.
	InvalidDigest struct {
		Cause error
	}
)

var (
	// ErrInvalidToken is the single verdict for every token verification
	// failure. Callers are not told whether the signature, the encoding
	// or the signing key was at fault.
	ErrInvalidToken = errors.New("invalid token")
)

func (n NotFound) Error() string {
	return fmt.Sprintf("user %v not found", n.Username)
}

func (c Conflict) Error() string {
	return fmt.Sprintf("username %v is already taken", c.Username)
}

func (i InvalidDigest) Error() string {
	return "stored password digest is corrupt"
}

func (i InvalidDigest) Unwrap() error { return i.Cause }
