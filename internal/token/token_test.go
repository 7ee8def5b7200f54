package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	tok, err := m.IssueAccess("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := m.VerifyAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	tok, err := m.IssueRefresh("user-1")
	require.NoError(t, err)

	userID, err := m.VerifyRefresh(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	access, err := m.IssueAccess("user-1")
	require.NoError(t, err)
	refresh, err := m.IssueRefresh("user-1")
	require.NoError(t, err)

	_, err = m.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	tok, err := m.IssueAccess("user-1")
	require.NoError(t, err)

	_, err = m.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	a := NewManager("secret-a", "refresh-a", time.Minute, time.Hour)
	b := NewManager("secret-b", "refresh-b", time.Minute, time.Hour)

	tok, err := a.IssueAccess("user-1")
	require.NoError(t, err)

	_, err = b.VerifyAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedTokenRejected(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.VerifyAccess(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestIssuedTokensAreUnique(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	t1, err := m.IssueRefresh("user-1")
	require.NoError(t, err)
	t2, err := m.IssueRefresh("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}
