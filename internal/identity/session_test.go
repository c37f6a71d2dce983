package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", 42, 7, "customer", 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.NotEmpty(t, tok.SID)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), tok.Exp, 5*time.Second)

	claims, err := ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, uint64(7), claims.EmployeeID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, tok.SID, claims.SID)
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("secret", 1, 1, "customer", time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", tok.Token)
	assert.Error(t, err)
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	tok, err := NewSessionToken("secret", 1, 1, "customer", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken("secret", tok.Token)
	assert.Error(t, err)
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	_, err := ParseSessionToken("secret", "definitely.not.ajwt")
	assert.Error(t, err)
}

func TestHashSessionID(t *testing.T) {
	h1 := HashSessionID("abc")
	h2 := HashSessionID("abc")
	h3 := HashSessionID("abd")

	assert.Len(t, h1, 64) // sha256 hex
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}
