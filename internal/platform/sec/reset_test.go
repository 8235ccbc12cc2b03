// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhle/reelo/internal/platform/config"
	"github.com/minhle/reelo/internal/platform/sec"
)

/*
TestGenerateResetToken verifies the shape and expiry of a fresh reset secret.
*/
func TestGenerateResetToken(t *testing.T) {
	token, err := sec.GenerateResetToken()
	require.NoError(t, err)

	// 32 bytes hex-encoded.
	assert.Len(t, token.Plain, 64)

	// The stored digest must match the plain secret and never equal it.
	assert.Equal(t, sec.HashToken(token.Plain), token.Hash)
	assert.NotEqual(t, token.Plain, token.Hash)

	assert.WithinDuration(t, time.Now().Add(config.ResetTokenTTL), token.ExpiresAt, 5*time.Second)
}

/*
TestGenerateResetToken_Unique verifies that consecutive secrets differ.
*/
func TestGenerateResetToken_Unique(t *testing.T) {
	first, err := sec.GenerateResetToken()
	require.NoError(t, err)

	second, err := sec.GenerateResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, first.Plain, second.Plain)
	assert.NotEqual(t, first.Hash, second.Hash)
}

/*
TestHashToken verifies the digest is deterministic and input-sensitive.
*/
func TestHashToken(t *testing.T) {
	assert.Equal(t, sec.HashToken("abc"), sec.HashToken("abc"))
	assert.NotEqual(t, sec.HashToken("abc"), sec.HashToken("abd"))

	// SHA-256 hex digest length.
	assert.Len(t, sec.HashToken("abc"), 64)
}
