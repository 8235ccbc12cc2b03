// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package feed

import (
	"context"

	"github.com/minhle/reelo/internal/video"
	"github.com/minhle/reelo/pkg/pagination"
)

// # Feed Data Access

// FeedRepository defines the data access contract for feed queries.
type FeedRepository interface {

	/*
		SampleIDs draws a random sample of video ids.

		Parameters:
		  - context: context.Context
		  - size: int

		Returns:
		  - []string: Up to size video ids in random order
		  - error: Execution failures
	*/
	SampleIDs(context context.Context, size int) ([]string, error)

	/*
		FindByIDs returns hydrated videos for the given ids, preserving the
		input order. Ids that no longer exist are silently skipped.

		Parameters:
		  - context: context.Context
		  - videoIDs: []string
		  - viewerID: string

		Returns:
		  - []video.Video: Hydrated videos in input order
		  - error: Execution failures
	*/
	FindByIDs(context context.Context, videoIDs []string, viewerID string) ([]video.Video, error)

	/*
		ListFollowing returns videos published by accounts the user follows,
		newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - params: pagination.Params

		Returns:
		  - []video.Video: Page of videos
		  - int: Total count
		  - error: Execution failures
	*/
	ListFollowing(context context.Context, userID string, params pagination.Params) ([]video.Video, int, error)

	/*
		ListByTag returns videos carrying the tag, newest first.

		Parameters:
		  - context: context.Context
		  - tag: string
		  - viewerID: string
		  - params: pagination.Params

		Returns:
		  - []video.Video: Page of videos
		  - int: Total count
		  - error: Execution failures
	*/
	ListByTag(context context.Context, tag, viewerID string, params pagination.Params) ([]video.Video, int, error)
}

// SampleCache stores the randomized id sample backing one browsing session,
// so paging walks a stable shuffle instead of re-rolling on every request.
type SampleCache interface {

	/*
		Get returns the cached sample for a session.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - []string: The cached ids, or nil when the session is unknown or expired
		  - error: Cache failures
	*/
	Get(context context.Context, sessionID string) ([]string, error)

	/*
		Set stores a session's sample.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - videoIDs: []string

		Returns:
		  - error: Cache failures
	*/
	Set(context context.Context, sessionID string, videoIDs []string) error
}
