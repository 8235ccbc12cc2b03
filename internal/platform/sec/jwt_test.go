// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhle/reelo/internal/platform/sec"
)

/*
TestTokenService_IssueAndVerify tests the happy-path round trip.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service := sec.NewTokenService("test-secret", "reelo.dev", time.Hour)

	token, err := service.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	// The issue instant must be recent and never in the future.
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
	assert.False(t, claims.IssuedAt.After(time.Now()))
}

/*
TestTokenService_Expired verifies that expired tokens are rejected with
the dedicated sentinel error.
*/
func TestTokenService_Expired(t *testing.T) {
	service := sec.NewTokenService("test-secret", "reelo.dev", -time.Minute)

	token, err := service.Issue("user-123")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_WrongSecret verifies that tokens signed with a different
secret fail verification.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer := sec.NewTokenService("secret-a", "reelo.dev", time.Hour)
	verifier := sec.NewTokenService("secret-b", "reelo.dev", time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_Malformed verifies that garbage input is rejected.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := sec.NewTokenService("test-secret", "reelo.dev", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			assert.ErrorIs(t, err, sec.ErrTokenInvalid)
		})
	}
}
