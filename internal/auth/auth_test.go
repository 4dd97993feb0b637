package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	issued := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Issue("admin")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue("admin")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
