package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestServiceToken_RoundTrip(t *testing.T) {
	token, err := CreateServiceToken("syncworker", testKey, time.Hour)
	require.NoError(t, err)

	claims, err := ParseServiceToken(token, testKey)
	require.NoError(t, err)
	assert.Equal(t, "syncworker", claims.Subject)
	assert.Equal(t, "admin", claims.Scope)
}

func TestServiceToken_Rejected(t *testing.T) {
	expired, err := CreateServiceToken("ops", testKey, -time.Minute)
	require.NoError(t, err)
	_, err = ParseServiceToken(expired, testKey)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, err := CreateServiceToken("ops", testKey, time.Hour)
	require.NoError(t, err)
	_, err = ParseServiceToken(valid, []byte("another-key-another-key-another!!"))
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = CreateServiceToken("", testKey, time.Hour)
	assert.Error(t, err)
}
