// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/minhle/reelo/internal/platform/config"
)

// resetTokenBytes is the entropy of a reset secret: 32 bytes = 256 bits.
const resetTokenBytes = 32

// ResetToken is a freshly generated password-reset secret.
//
// # Storage Split
//
// Plain is handed to the user exactly once, out-of-band (email), and never
// persisted. Only Hash and ExpiresAt are stored, so a compromised database
// does not leak redeemable reset secrets.
type ResetToken struct {
	// Plain is the hex-encoded secret sent to the user.
	Plain string

	// Hash is the SHA-256 hex digest of Plain; this is what gets persisted.
	Hash string

	// ExpiresAt is the instant after which the secret is no longer redeemable.
	ExpiresAt time.Time
}

// GenerateResetToken produces a high-entropy, single-use reset secret.
//
// Expiry is a fixed [config.ResetTokenTTL] from now.
func GenerateResetToken() (*ResetToken, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("sec: failed to generate reset token: %w", err)
	}

	plain := hex.EncodeToString(raw)

	return &ResetToken{
		Plain:     plain,
		Hash:      HashToken(plain),
		ExpiresAt: time.Now().Add(config.ResetTokenTTL),
	}, nil
}

// HashToken returns the SHA-256 hex digest of a token.
//
// A plain cryptographic hash (no salt, no cost factor) is deliberate here:
// the input already carries 256 bits of entropy, so brute-forcing the digest
// is infeasible, and the deterministic output doubles as the lookup key.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
