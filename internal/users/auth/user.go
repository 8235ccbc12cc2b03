// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

/*
Package auth implements the user identity and session lifecycle layer.

It defines the core User entity and the logic for account creation, credential
verification, password recovery, and session-token validation.

# Architecture

This layer is the "Truth" of the system. The User entity defined here has no
external dependencies and encapsulates all business rules related to identity.
Every other feature package (profile, video, comment, feed) resolves the
acting user through this package.
*/
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/platform/ctxkey"
)

// # Domain Entities

// User represents a registered member of the Reelo platform.
//
// LikesCount is the running total of likes received across all of the user's
// videos, maintained transactionally by the profile layer on every
// like/unlike event.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`

	LikesCount int `json:"likes_count"`

	PasswordHash string `json:"-"` // Explicitly omitted from JSON for security.

	// PasswordChangedAt is set whenever the password is replaced. Session
	// tokens issued before this instant are rejected by [Service.Authenticate].
	PasswordChangedAt *time.Time `json:"-"`

	// ResetTokenHash / ResetExpiresAt hold the pending password-reset secret.
	// Only the SHA-256 digest of the secret is ever persisted.
	ResetTokenHash *string    `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChangedPasswordAfter reports whether the password was replaced after the
// given token-issuance instant.
//
// Timestamps are compared at second precision because JWT "iat" claims carry
// no sub-second resolution.
func (user *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if user.PasswordChangedAt == nil {
		return false
	}
	return user.PasswordChangedAt.Unix() > issuedAt.Unix()
}

// # Request Context

// WithUser returns a new context carrying the authenticated user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// UserFrom retrieves the authenticated user from the context.
// Returns nil if the request did not pass through the Protect middleware.
func UserFrom(ctx context.Context) *User {
	user, _ := ctx.Value(ctxkey.KeyUser).(*User)
	return user
}

// RequireUser retrieves the authenticated user or fails with 401.
//
// Handlers mounted behind [Protect] use this instead of re-checking the
// cookie themselves.
func RequireUser(request *http.Request) (*User, error) {
	user := UserFrom(request.Context())
	if user == nil {
		return nil, apperr.Unauthorized("You are not logged in! Please log in to get access.")
	}
	return user, nil
}
