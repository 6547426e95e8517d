package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SecretEnvVar = "MESSAGELY_SECRET_KEY"
)

type (
	// Claims is the payload carried by every session token. Only the
	// username identifies the bearer, there is no expiry: tokens stay
	// valid for as long as the signing secret does.
	Claims struct {
		Username string `json:"username"`
		jwt.RegisteredClaims
	}

	// TokenService signs and verifies session tokens with a single
	// HS256 secret injected at construction, so tests can run multiple
	// services with distinct secrets side by side.
	TokenService struct {
		secret []byte
	}
)

func NewTokenService(secret []byte) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	return &TokenService{secret: secret}, nil
}

// Issue signs a token whose subject is username.
func (t *TokenService) Issue(username string) (string, error) {
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Username: username})
	signed, err := tk.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign token, cause %w", err)
	}
	return signed, nil
}

// Verify returns the subject of a token previously produced by Issue.
// Every failure mode (tampered payload, foreign signing key, garbage
// input) collapses into ErrInvalidToken.
func (t *TokenService) Verify(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

// SecretFromEnv loads the signing secret from the named environment
// variable and wipes the variable, so the secret does not leak into
// child processes. getfn and setfn default to os.Getenv and os.Setenv.
func SecretFromEnv(varname string, getfn func(string) string, setfn func(string, string) error) ([]byte, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	if err := setfn(varname, ""); err != nil {
		return nil, err
	}
	if len(val) == 0 {
		return nil, fmt.Errorf("auth: environment variable %v does not contain a signing secret", varname)
	}
	return []byte(val), nil
}
