// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/platform/dberr"
	"github.com/minhle/reelo/pkg/textnorm"
)

// userColumns is the canonical projection shared by every account query.
const userColumns = `
	id, name, nickname, email, bio, avatarurl, likescount,
	passwordhash, passwordchangedat, resettokenhash, resetexpiresat,
	createdat, updatedat`

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, initializing timestamps and
mapping unique-constraint violations to field-specific conflicts.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict for duplicate email/nickname, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, name, nickname, email, passwordhash, bio, avatarurl, likescount, searchtext, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	// searchtext is the accent-folded haystack for profile search.
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Nickname,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.Avatar,
		user.LikesCount,
		textnorm.Fold(user.Name+" "+user.Nickname),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return conflictFor(err)
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`
	return repository.findOne(context, query, id)
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Email identity is case-insensitive. The lookup folds both sides
so it matches the LOWER(email) unique index regardless of how the caller
cased the address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE LOWER(email) = LOWER($1)`
	return repository.findOne(context, query, email)
}

/*
FindByNickname retrieves a user record by their unique nickname.

Parameters:
  - context: context.Context
  - nickname: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByNickname(context context.Context, nickname string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE nickname = $1`
	return repository.findOne(context, query, nickname)
}

/*
UpdatePassword replaces the password hash and stamps the change instant.

Description: Clears any pending reset secret at the same time so a stale
forgot-password token cannot outlive a successful password change.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string
  - changedAt: time.Time

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string, changedAt time.Time) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, passwordchangedat = $3,
		    resettokenhash = NULL, resetexpiresat = NULL,
		    updatedat = NOW()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, changedAt)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

/*
SetResetToken stores a pending reset secret hash with its expiry.

Description: Overwrites any previous pending reset; only the newest secret
is ever redeemable.

Parameters:
  - context: context.Context
  - userID: string
  - tokenHash: string
  - expiresAt: time.Time

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetResetToken(context context.Context, userID, tokenHash string, expiresAt time.Time) error {
	const query = `
		UPDATE users.account
		SET resettokenhash = $2, resetexpiresat = $3, updatedat = NOW()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_reset_token_failed: %w", err)
	}

	return nil
}

/*
ClearResetToken removes any pending reset secret from the account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) ClearResetToken(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET resettokenhash = NULL, resetexpiresat = NULL, updatedat = NOW()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_clear_reset_token_failed: %w", err)
	}

	return nil
}

/*
ConsumeResetToken atomically redeems a reset secret.

Description: A single guarded UPDATE performs the whole redemption; the WHERE
clause rejects unknown, already-consumed, and expired secrets, and RETURNING
hands back the updated account. Under concurrent redemption of the same
secret, the row lock guarantees at most one caller sees a returned row.

Parameters:
  - context: context.Context
  - tokenHash: string
  - newHash: string
  - changedAt: time.Time

Returns:
  - *User: The account whose password was replaced
  - error: apperr.NotFound when no redeemable secret matches
*/
func (repository *PostgresUserRepository) ConsumeResetToken(context context.Context, tokenHash, newHash string, changedAt time.Time) (*User, error) {
	query := `
		UPDATE users.account
		SET passwordhash = $2, passwordchangedat = $3,
		    resettokenhash = NULL, resetexpiresat = NULL,
		    updatedat = NOW()
		WHERE resettokenhash = $1 AND resetexpiresat > NOW()
		RETURNING ` + userColumns

	user := &User{}
	err := repository.pool.QueryRow(context, query, tokenHash, newHash, changedAt).Scan(
		&user.ID,
		&user.Name,
		&user.Nickname,
		&user.Email,
		&user.Bio,
		&user.Avatar,
		&user.LikesCount,
		&user.PasswordHash,
		&user.PasswordChangedAt,
		&user.ResetTokenHash,
		&user.ResetExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_consume_reset_token_failed: %w", err)
	}

	return user, nil
}

// findOne executes a single-row account query and hydrates the entity.
func (repository *PostgresUserRepository) findOne(context context.Context, query string, argument any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, argument).Scan(
		&user.ID,
		&user.Name,
		&user.Nickname,
		&user.Email,
		&user.Bio,
		&user.Avatar,
		&user.LikesCount,
		&user.PasswordHash,
		&user.PasswordChangedAt,
		&user.ResetTokenHash,
		&user.ResetExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", err)
	}

	return user, nil
}

// conflictFor maps a unique-constraint violation to a field-specific conflict.
func conflictFor(err error) error {
	switch dberr.ConstraintName(err) {
	case "account_email_key":
		return apperr.Conflict("Email is already registered")
	case "account_nickname_key":
		return apperr.Conflict("Nickname is already taken")
	}
	return apperr.Conflict("Account already exists")
}
