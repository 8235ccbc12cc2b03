// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package comment

import (
	"context"

	"github.com/minhle/reelo/pkg/pagination"
)

// # Comment Data Access

// CommentRepository defines the data access contract for video threads.
type CommentRepository interface {

	/*
		Create persists a new comment and returns it hydrated with its author.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Not-found when the video does not exist, or persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID returns a single comment with its author card.

		Parameters:
		  - context: context.Context
		  - commentID: string

		Returns:
		  - *Comment: Hydrated entity
		  - error: Not-found or execution failures
	*/
	FindByID(context context.Context, commentID string) (*Comment, error)

	/*
		ListByVideo returns a video's thread, newest first.

		Parameters:
		  - context: context.Context
		  - videoID: string
		  - params: pagination.Params

		Returns:
		  - []Comment: Page of comments
		  - int: Total count
		  - error: Execution failures
	*/
	ListByVideo(context context.Context, videoID string, params pagination.Params) ([]Comment, int, error)

	/*
		Delete removes a comment.

		Parameters:
		  - context: context.Context
		  - commentID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, commentID string) error
}
