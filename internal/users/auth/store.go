// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByNickname returns the account with the given nickname.

		Parameters:
		  - context: context.Context
		  - nickname: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByNickname(context context.Context, nickname string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate email/nickname, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces the password hash and records the change instant.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string
		  - changedAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string, changedAt time.Time) error

	/*
		SetResetToken stores the hashed reset secret and its expiry on the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - tokenHash: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetResetToken(context context.Context, userID, tokenHash string, expiresAt time.Time) error

	/*
		ClearResetToken removes any pending reset secret from the account.

		Used to roll back forgot-password state when email delivery fails.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	ClearResetToken(context context.Context, userID string) error

	/*
		ConsumeResetToken atomically redeems a reset secret.

		In a single statement it matches the token hash against an unexpired
		pending reset, replaces the password hash, records the change instant,
		and clears the reset fields. Concurrent redemptions of the same secret
		resolve to exactly one winner.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - newHash: string
		  - changedAt: time.Time

		Returns:
		  - *User: The account whose password was replaced
		  - error: Not-found when the secret is unknown, consumed, or expired
	*/
	ConsumeResetToken(context context.Context, tokenHash, newHash string, changedAt time.Time) (*User, error)
}
