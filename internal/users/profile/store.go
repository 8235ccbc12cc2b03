// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package profile

import (
	"context"

	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/pkg/pagination"
)

// # Profile Data Access

// ProfileRepository defines the data access contract for public profiles
// and the follow graph.
type ProfileRepository interface {

	/*
		GetProfile returns the public profile with computed social counters.

		viewerID may be empty for anonymous requests; IsFollowed is then false.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - viewerID: string

		Returns:
		  - *Profile: Hydrated public view
		  - error: Not-found or execution failures
	*/
	GetProfile(context context.Context, userID, viewerID string) (*Profile, error)

	/*
		UpdateAccount persists the mutable profile fields of a user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Conflict on duplicate nickname, or persistence failures
	*/
	UpdateAccount(context context.Context, user *auth.User) error

	/*
		Search returns profile cards whose folded name or nickname contains
		the needle, ordered by nickname.

		Parameters:
		  - context: context.Context
		  - needle: string (already accent-folded and lowercased)
		  - params: pagination.Params

		Returns:
		  - []Card: Matching profiles
		  - int: Total match count
		  - error: Execution failures
	*/
	Search(context context.Context, needle string, params pagination.Params) ([]Card, int, error)

	/*
		NicknameExists reports whether a nickname is already taken.

		Parameters:
		  - context: context.Context
		  - nickname: string

		Returns:
		  - bool: Taken flag
		  - error: Execution failures
	*/
	NicknameExists(context context.Context, nickname string) (bool, error)

	/*
		Follow records that follower follows followee. Idempotent.

		Parameters:
		  - context: context.Context
		  - followerID: string
		  - followeeID: string

		Returns:
		  - error: Not-found when followee does not exist, or persistence failures
	*/
	Follow(context context.Context, followerID, followeeID string) error

	/*
		Unfollow removes the follow edge. Idempotent.

		Parameters:
		  - context: context.Context
		  - followerID: string
		  - followeeID: string

		Returns:
		  - error: Persistence failures
	*/
	Unfollow(context context.Context, followerID, followeeID string) error

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
	ListFollowing(context context.Context, userID string, params pagination.Params) ([]Card, int, error)

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
	ListFollowers(context context.Context, userID string, params pagination.Params) ([]Card, int, error)
}
