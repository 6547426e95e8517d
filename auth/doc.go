// Package auth holds the credential core of messagely: password hashing
// and verification, issuing and verifying the signed session tokens, and
// the authenticator that ties both to the credential store.
//
// Nothing in this package keeps per-session state. A token is valid if
// and only if it was signed with the secret the TokenService was built
// with, so any number of requests can be checked concurrently without
// coordination.
//
// Plaintext passwords exist only as arguments. They are never stored and
// never logged, not even at trace level.
package auth
