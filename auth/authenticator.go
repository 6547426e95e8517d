package auth

import (
	"context"
	"time"
)

type (
	// Account is the stored credential record. PasswordHash is only ever
	// compared against, callers rendering accounts to clients must use
	// the profile projections from the store instead.
	Account struct {
		Username     string
		PasswordHash string
		FirstName    string
		LastName     string
		Phone        string
		JoinAt       time.Time
		LastLoginAt  time.Time
	}

	// Store is the credential store contract the authenticator consumes.
	// Implementations must return NotFound for unknown usernames and
	// Conflict for duplicate inserts.
	Store interface {
		FindByUsername(ctx context.Context, username string) (Account, error)
		Insert(ctx context.Context, acct Account) (Account, error)
		TouchLastLogin(ctx context.Context, username string) (Account, error)
	}

	// Authenticator orchestrates registration and credential checks on
	// top of a Store and a Hasher. It holds no mutable state.
	Authenticator struct {
		store  Store
		hasher Hasher
	}
)

func NewAuthenticator(store Store, hasher Hasher) *Authenticator {
	return &Authenticator{store: store, hasher: hasher}
}

// Register hashes password and persists a new account. Join and last
// login timestamps are both set to the registration instant. The
// returned record carries the digest, never the plaintext.
func (a *Authenticator) Register(ctx context.Context, username, password, firstName, lastName, phone string) (Account, error) {
	digest, err := a.hasher.Hash(password)
	if err != nil {
		return Account{}, err
	}
	now := time.Now().UTC()
	return a.store.Insert(ctx, Account{
		Username:     username,
		PasswordHash: digest,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		JoinAt:       now,
		LastLoginAt:  now,
	})
}

// Authenticate reports whether password matches the digest stored for
// username. An unknown username surfaces as NotFound rather than a
// plain false verdict, callers decide how much of that to reveal.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (bool, error) {
	acct, err := a.store.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return a.hasher.Verify(password, acct.PasswordHash)
}

// RecordLogin advances the account's last login timestamp to now.
func (a *Authenticator) RecordLogin(ctx context.Context, username string) (Account, error) {
	return a.store.TouchLastLogin(ctx, username)
}
