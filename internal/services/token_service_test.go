package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")

	pair, err := svc.IssuePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	uid, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.EqualValues(t, 42, uid)
}

func TestTokenService_VerifyAccess_RejectsRefreshToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	pair, err := svc.IssuePair(42)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Refresh(t *testing.T) {
	svc := NewTokenService("test-secret")

	pair, err := svc.IssuePair(42)
	require.NoError(t, err)

	renewed, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)

	uid, err := svc.VerifyAccess(renewed.AccessToken)
	require.NoError(t, err)
	require.EqualValues(t, 42, uid)
}

func TestTokenService_Refresh_RejectsAccessToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	pair, err := svc.IssuePair(42)
	require.NoError(t, err)

	_, err = svc.Refresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrNotRefreshKind)
}

func TestTokenService_WrongSecret(t *testing.T) {
	pair, err := NewTokenService("secret-a").IssuePair(42)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, err := svc.VerifyAccess("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
