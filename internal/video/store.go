// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package video

import (
	"context"

	"github.com/minhle/reelo/pkg/pagination"
)

// # Video Data Access

// VideoRepository defines the data access contract for the video catalog.
type VideoRepository interface {

	/*
		Create persists a new video record.

		Parameters:
		  - context: context.Context
		  - video: *Video

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, video *Video) error

	/*
		FindByID returns a single video with its owner card, counters, and
		the viewer's like/favorite flags.

		viewerID may be empty for anonymous requests.

		Parameters:
		  - context: context.Context
		  - videoID: string
		  - viewerID: string

		Returns:
		  - *Video: Hydrated entity
		  - error: Not-found or execution failures
	*/
	FindByID(context context.Context, videoID, viewerID string) (*Video, error)

	/*
		IncrementView adds one to the video's play counter.

		Parameters:
		  - context: context.Context
		  - videoID: string

		Returns:
		  - error: Not-found when the video does not exist
	*/
	IncrementView(context context.Context, videoID string) error

	/*
		ListByOwner returns a user's videos, newest first.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - viewerID: string
		  - params: pagination.Params

		Returns:
		  - []Video: Page of videos
		  - int: Total count
		  - error: Execution failures
	*/
	ListByOwner(context context.Context, ownerID, viewerID string, params pagination.Params) ([]Video, int, error)

	/*
		ListLiked returns the videos a user has liked, most recent like first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - viewerID: string
		  - params: pagination.Params

		Returns:
		  - []Video: Page of videos
		  - int: Total count
		  - error: Execution failures
	*/
	ListLiked(context context.Context, userID, viewerID string, params pagination.Params) ([]Video, int, error)

	/*
		ListFavorited returns the videos a user has favorited, most recent first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - viewerID: string
		  - params: pagination.Params

		Returns:
		  - []Video: Page of videos
		  - int: Total count
		  - error: Execution failures
	*/
	ListFavorited(context context.Context, userID, viewerID string, params pagination.Params) ([]Video, int, error)

	/*
		Like records userID liking videoID and bumps the owner's received-likes
		counter in the same transaction. Re-liking is a no-op.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - videoID: string

		Returns:
		  - error: Not-found when the video does not exist
	*/
	Like(context context.Context, userID, videoID string) error

	/*
		Unlike removes the like and decrements the owner's counter in the same
		transaction. Unliking a video that was never liked is a no-op.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - videoID: string

		Returns:
		  - error: Persistence failures
	*/
	Unlike(context context.Context, userID, videoID string) error

	/*
		Favorite bookmarks videoID for userID. Idempotent.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - videoID: string

		Returns:
		  - error: Not-found when the video does not exist
	*/
	Favorite(context context.Context, userID, videoID string) error

	/*
		Unfavorite removes the bookmark. Idempotent.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - videoID: string

		Returns:
		  - error: Persistence failures
	*/
	Unfavorite(context context.Context, userID, videoID string) error
}
