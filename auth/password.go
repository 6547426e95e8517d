package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultWorkFactor is the bcrypt cost applied when the caller does
	// not tune one. Raising it later only affects newly created digests,
	// old digests keep verifying since bcrypt embeds the cost.
	DefaultWorkFactor = 12
)

type (
	// Hasher produces and verifies salted one-way password digests.
	Hasher struct {
		cost int
	}
)

func NewHasher(workFactor int) Hasher {
	if workFactor < bcrypt.MinCost {
		workFactor = DefaultWorkFactor
	}
	return Hasher{cost: workFactor}
}

// Hash derives a salted digest from plaintext. The digest is safe to
// persist, the plaintext is not retained.
func (h Hasher) Hash(plaintext string) (string, error) {
	buf, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("unable to hash password, cause %w", err)
	}
	return string(buf), nil
}

// Verify reports whether plaintext matches digest. A well-formed digest
// that simply does not match yields (false, nil); only a structurally
// corrupt digest produces an error. The comparison runs in constant time
// relative to the password.
func (h Hasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	}
	return false, InvalidDigest{Cause: err}
}
