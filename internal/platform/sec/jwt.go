// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing,
// Reset Secrets) from the domain logic. It acts as an Infrastructure service
// injected into the Application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel verification failures. Callers decide what an invalid token means;
// this package never maps them to HTTP statuses itself.
var (
	// ErrTokenInvalid covers malformed tokens and bad signatures.
	ErrTokenInvalid = errors.New("sec: token is invalid")

	// ErrTokenExpired covers structurally valid tokens past their expiry.
	ErrTokenExpired = errors.New("sec: token has expired")
)

// SessionClaims is the verified payload of a session token.
//
// The token is opaque to clients: it carries only the user id and the
// issuance instant. Everything else about the user is looked up per request,
// which is what lets a password change invalidate older tokens without a
// server-side revocation list.
type SessionClaims struct {
	UserID   string
	IssuedAt time.Time
}

// tokenClaims is the on-the-wire JWT claim set.
type tokenClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-signed session tokens.
//
// # Why HS256?
//
// Tokens are only ever issued and verified by this process, so a single
// shared secret from configuration is sufficient; there is no third party
// that needs to verify signatures with a public key.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the process-wide signing secret.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a signed session token for the given user id.
//
// The expiry is a fixed configured duration from the issuance instant.
func (service *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and validity window of a session token.
//
// # Returns
//   - [SessionClaims] with the user id and issuance instant on success.
//   - [ErrTokenExpired] if the token is past its expiry.
//   - [ErrTokenInvalid] for every other failure (malformed, bad signature,
//     unexpected algorithm, missing claims).
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return nil, ErrTokenInvalid
	}

	return &SessionClaims{
		UserID:   claims.Subject,
		IssuedAt: claims.IssuedAt.Time,
	}, nil
}
