package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	ts, err := NewTokenService([]byte("secret-one"))
	require.NoError(t, err)
	for _, username := range []string{"alice", "bob", "a_b-c.d", ""} {
		token, err := ts.Issue(username)
		require.NoError(t, err)
		subject, err := ts.Verify(token)
		require.NoError(t, err)
		require.Equal(t, username, subject)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	ts, err := NewTokenService([]byte("secret-one"))
	require.NoError(t, err)
	token, err := ts.Issue("alice")
	require.NoError(t, err)

	// pick a replacement that changes decoded signature bits, not just
	// the bits base64 discards at the end of the segment
	repl := byte('A')
	if last := token[len(token)-1]; last >= 'A' && last <= 'D' {
		repl = 'Q'
	}
	tampered := token[:len(token)-1] + string(repl)
	_, err = ts.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	mint, err := NewTokenService([]byte("secret-one"))
	require.NoError(t, err)
	check, err := NewTokenService([]byte("secret-two"))
	require.NoError(t, err)

	token, err := mint.Issue("alice")
	require.NoError(t, err)
	_, err = check.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	ts, err := NewTokenService([]byte("secret-one"))
	require.NoError(t, err)
	for _, garbage := range []string{"", "abc", "a.b.c", "a.b"} {
		_, err := ts.Verify(garbage)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestEmptySecretRejected(t *testing.T) {
	_, err := NewTokenService(nil)
	require.Error(t, err)
}

func TestSecretFromEnvWipesVariable(t *testing.T) {
	os.Setenv(SecretEnvVar, "hunter2")
	secret, err := SecretFromEnv(SecretEnvVar, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []byte("hunter2"), secret)
	if os.Getenv(SecretEnvVar) != "" {
		t.Fatal("reading the secret should remove it from the environment")
	}

	_, err = SecretFromEnv(SecretEnvVar, nil, nil)
	require.Error(t, err)
}
