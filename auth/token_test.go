package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndResolve(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("user123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Resolve("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user123", userID)
}

func TestResolveMissingHeader(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Resolve("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestResolveMalformedHeader(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, header := range []string{
		"Bearer",
		"Basic abc123",
		"Bearer not.a.token",
	} {
		_, err := svc.Resolve(header)
		assert.ErrorIs(t, err, ErrInvalidToken, "header %q", header)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue("user123")
	require.NoError(t, err)

	_, err = svc.Resolve("Bearer " + token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestResolveWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	token, err := issuer.Issue("user123")
	require.NoError(t, err)

	_, err = verifier.Resolve("Bearer " + token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiryMessageDistinctFromInvalid(t *testing.T) {
	// Clients rely on telling a stale token apart from a broken one.
	assert.NotEqual(t, ErrExpiredToken.Msg, ErrInvalidToken.Msg)
	assert.Contains(t, ErrExpiredToken.Msg, "expired")
}
