package auth

import (
	"testing"
	"time"

	"github.com/aquapure/backoffice/internal/common"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("admin-1", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := GetAdminIDFromToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, "admin-1", id)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("admin-1", secret, time.Minute)
	require.NoError(t, err)

	_, err = GetAdminIDFromToken(token, []byte("other-secret"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken("admin-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetAdminIDFromToken(token, secret)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestToken_Garbage(t *testing.T) {
	_, err := GetAdminIDFromToken("not.a.token", secret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
