package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueTestSession(t *testing.T, r *Registry, origin string) string {
	t.Helper()
	token, err := r.Issue("user-1", "stored-hash", "alice", "Alice", origin)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return token
}

func TestValidateRequiresIssuedOrigin(t *testing.T) {
	r := NewRegistry()
	token := issueTestSession(t, r, "1.2.3.4")

	assert.True(t, r.Validate(token, "1.2.3.4"))
	assert.False(t, r.Validate(token, "5.6.7.8"), "token must not validate from another address")
	assert.False(t, r.Validate("bogus-token", "1.2.3.4"), "unknown token must not validate")
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	r := NewRegistry()
	first := issueTestSession(t, r, "1.2.3.4")
	second := issueTestSession(t, r, "1.2.3.4")

	assert.NotEqual(t, first, second, "identical inputs must still get distinct tokens")
	assert.Equal(t, 2, r.Len())
}

func TestUserIDAndState(t *testing.T) {
	r := NewRegistry()
	token := issueTestSession(t, r, "1.2.3.4")

	userID, ok := r.UserID(token)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	state, ok := r.State(token)
	require.True(t, ok)
	assert.Equal(t, "alice", state.Username)
	assert.Equal(t, "Alice", state.Name)

	_, ok = r.UserID("missing")
	assert.False(t, ok)
}

func TestRevoke(t *testing.T) {
	r := NewRegistry()
	token := issueTestSession(t, r, "1.2.3.4")

	require.NoError(t, r.Revoke(token))
	assert.False(t, r.Validate(token, "1.2.3.4"))
	assert.Equal(t, 0, r.Len())

	assert.ErrorIs(t, r.Revoke(token), ErrUnknownToken)
}
