// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/platform/dberr"
	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/pkg/pagination"
	"github.com/minhle/reelo/pkg/textnorm"
)

// # Profile Repository

// PostgresProfileRepository implements the ProfileRepository interface using pgx.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL implementation of the ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

/*
GetProfile returns the public profile with computed social counters.

Description: A single aggregating query derives follower/following/video
counts from their source tables instead of trusting denormalized counters.
Only likescount is denormalized (it changes on every like and is read on
every profile view).

Parameters:
  - context: context.Context
  - userID: string
  - viewerID: string (empty for anonymous viewers)

Returns:
  - *Profile: Hydrated public view
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresProfileRepository) GetProfile(context context.Context, userID, viewerID string) (*Profile, error) {
	const query = `
		SELECT
			a.id, a.name, a.nickname, a.bio, a.avatarurl, a.likescount, a.createdat,
			(SELECT COUNT(*) FROM users.follow f WHERE f.followeeid = a.id) AS followers,
			(SELECT COUNT(*) FROM users.follow f WHERE f.followerid = a.id) AS following,
			(SELECT COUNT(*) FROM content.video v WHERE v.ownerid = a.id)   AS videos,
			EXISTS (
				SELECT 1 FROM users.follow f
				WHERE f.followerid = NULLIF($2, '') AND f.followeeid = a.id
			) AS isfollowed
		FROM users.account a
		WHERE a.id = $1`

	profile := &Profile{}
	err := repository.pool.QueryRow(context, query, userID, viewerID).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Nickname,
		&profile.Bio,
		&profile.Avatar,
		&profile.LikesCount,
		&profile.CreatedAt,
		&profile.FollowersCount,
		&profile.FollowingCount,
		&profile.VideosCount,
		&profile.IsFollowed,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_profile_repo_get_failed: %w", err)
	}

	return profile, nil
}

/*
UpdateAccount persists the mutable profile fields of a user.

Description: Refreshes the folded search haystack alongside the visible
fields so people search stays consistent with renames.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.Conflict on duplicate nickname, or persistence failures
*/
func (repository *PostgresProfileRepository) UpdateAccount(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET name = $2, nickname = $3, bio = $4, avatarurl = $5, searchtext = $6, updatedat = $7
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Nickname,
		user.Bio,
		user.Avatar,
		textnorm.Fold(user.Name+" "+user.Nickname),
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Nickname is already taken")
		}
		return fmt.Errorf("postgres_profile_repo_update_failed: %w", err)
	}

	return nil
}

/*
Search returns profile cards matching the folded needle.

Parameters:
  - context: context.Context
  - needle: string (accent-folded, lowercased)
  - params: pagination.Params

Returns:
  - []Card: Matching profiles ordered by nickname
  - int: Total match count
  - error: Execution failures
*/
func (repository *PostgresProfileRepository) Search(context context.Context, needle string, params pagination.Params) ([]Card, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM users.account
		WHERE searchtext LIKE '%' || $1 || '%'`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, needle).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_profile_repo_search_count_failed: %w", err)
	}

	const query = `
		SELECT id, name, nickname, avatarurl
		FROM users.account
		WHERE searchtext LIKE '%' || $1 || '%'
		ORDER BY nickname
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, needle, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_profile_repo_search_failed: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

/*
NicknameExists reports whether a nickname is already taken.

Parameters:
  - context: context.Context
  - nickname: string

Returns:
  - bool: Taken flag
  - error: Execution failures
*/
func (repository *PostgresProfileRepository) NicknameExists(context context.Context, nickname string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.account WHERE nickname = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, nickname).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_profile_repo_nickname_exists_failed: %w", err)
	}

	return exists, nil
}

// # Follow Graph

/*
Follow records a follow edge. Re-following is a no-op.

Parameters:
  - context: context.Context
  - followerID: string
  - followeeID: string

Returns:
  - error: apperr.NotFound when the followee does not exist
*/
func (repository *PostgresProfileRepository) Follow(context context.Context, followerID, followeeID string) error {
	const query = `
		INSERT INTO users.follow (followerid, followeeid, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (followerid, followeeid) DO NOTHING`

	_, err := repository.pool.Exec(context, query, followerID, followeeID)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("User")
		}
		return fmt.Errorf("postgres_profile_repo_follow_failed: %w", err)
	}

	return nil
}

/*
Unfollow removes a follow edge. Unfollowing a stranger is a no-op.

Parameters:
  - context: context.Context
  - followerID: string
  - followeeID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresProfileRepository) Unfollow(context context.Context, followerID, followeeID string) error {
	const query = `DELETE FROM users.follow WHERE followerid = $1 AND followeeid = $2`

	_, err := repository.pool.Exec(context, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("postgres_profile_repo_unfollow_failed: %w", err)
	}

	return nil
}

/*
ListFollowing returns the users that userID follows, newest edge first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Card: Followed profiles
  - int: Total count
  - error: Execution failures
*/
func (repository *PostgresProfileRepository) ListFollowing(context context.Context, userID string, params pagination.Params) ([]Card, int, error) {
	const countQuery = `SELECT COUNT(*) FROM users.follow WHERE followerid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_profile_repo_following_count_failed: %w", err)
	}

	const query = `
		SELECT a.id, a.name, a.nickname, a.avatarurl
		FROM users.follow f
		JOIN users.account a ON a.id = f.followeeid
		WHERE f.followerid = $1
		ORDER BY f.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_profile_repo_following_failed: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

/*
ListFollowers returns the users following userID, newest edge first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Card: Follower profiles
  - int: Total count
  - error: Execution failures
*/
func (repository *PostgresProfileRepository) ListFollowers(context context.Context, userID string, params pagination.Params) ([]Card, int, error) {
	const countQuery = `SELECT COUNT(*) FROM users.follow WHERE followeeid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_profile_repo_followers_count_failed: %w", err)
	}

	const query = `
		SELECT a.id, a.name, a.nickname, a.avatarurl
		FROM users.follow f
		JOIN users.account a ON a.id = f.followerid
		WHERE f.followeeid = $1
		ORDER BY f.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_profile_repo_followers_failed: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

// scanCards hydrates compact profile cards from a row set.
func scanCards(rows pgx.Rows) ([]Card, error) {
	cards := make([]Card, 0)
	for rows.Next() {
		var card Card
		if err := rows.Scan(&card.ID, &card.Name, &card.Nickname, &card.Avatar); err != nil {
			return nil, fmt.Errorf("postgres_profile_repo_scan_failed: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_profile_repo_rows_failed: %w", err)
	}

	return cards, nil
}
