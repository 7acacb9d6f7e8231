package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	v := NewVerifier("secret")

	token, err := v.Issue("user-1", time.Hour)
	require.NoError(t, err)

	claims, err := v.Authenticate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewVerifier("one").Issue("user-1", time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("two").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	v := NewVerifier("secret")
	v.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := v.Issue("user-1", time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("secret").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	v := NewVerifier("secret")
	token, err := v.Issue("", time.Hour)
	require.NoError(t, err)

	_, err = v.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewVerifier("secret").Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	v := NewVerifier("secret")

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "token"} {
		_, err := v.Authenticate(header)
		assert.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}
}

func TestBearerTokenCaseInsensitive(t *testing.T) {
	token, ok := BearerToken("bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", token)
}

func TestStateRoundTrip(t *testing.T) {
	v := NewVerifier("secret")

	state, err := v.IssueState("user-9")
	require.NoError(t, err)

	userID, err := v.ParseState(state)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)
}

func TestParseStateRejectsSessionToken(t *testing.T) {
	v := NewVerifier("secret")
	token, err := v.Issue("user-9", time.Hour)
	require.NoError(t, err)

	_, err = v.ParseState(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateRejectsStateToken(t *testing.T) {
	v := NewVerifier("secret")
	state, err := v.IssueState("user-9")
	require.NoError(t, err)

	_, err = v.Authenticate("Bearer " + state)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserIDContext(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	id, ok := UserID(WithUserID(context.Background(), "u1"))
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
}
