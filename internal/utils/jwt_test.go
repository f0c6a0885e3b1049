package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating-platform/internal/model"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 42, model.RoleOwner, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	claims, err := ParseSessionToken(testSecret, tok.Token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID)
	require.Equal(t, model.RoleOwner, claims.Role)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 1, model.RoleUser, 60)
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", tok.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenExpired(t *testing.T) {
	// A negative TTL produces a token whose exp claim is in the past.
	tok, err := NewSessionToken(testSecret, 1, model.RoleUser, -1)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, tok.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenUnknownRole(t *testing.T) {
	// Tokens signed with a role outside the closed set must not verify,
	// even with a valid signature.
	tok, err := NewSessionToken(testSecret, 1, model.Role("WIZARD"), 60)
	require.NoError(t, err)

	_, err = ParseSessionToken(testSecret, tok.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken(testSecret, "not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
