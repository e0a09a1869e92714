package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestService_GenerateAndValidate(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.Generate("0xABCDEF0123", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "0xabcdef0123", claims.WalletAddress, "address is lowercased in the token")
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "0xabcdef0123", claims.Subject)
}

func TestService_RejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	token, err := svc.Generate("0xaaa", "bob")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_RejectsForeignSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).Generate("0xaaa", "bob")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	_, err := svc.Validate("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
