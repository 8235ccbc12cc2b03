// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package comment

import (
	"context"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/pkg/pagination"
	"github.com/minhle/reelo/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for video comment threads.
type Service struct {
	commentRepository CommentRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(commentRepo CommentRepository) *Service {
	return &Service{commentRepository: commentRepo}
}

/*
Create appends a comment to a video's thread.

Parameters:
  - context: context.Context
  - author: *auth.User
  - videoID: string
  - content: string

Returns:
  - *Comment: The created comment with its hydrated author card
  - error: Not found (unknown video) or storage failures
*/
func (service *Service) Create(context context.Context, author *auth.User, videoID, content string) (*Comment, error) {
	comment := &Comment{
		ID:      uuidv7.New(),
		VideoID: videoID,
		UserID:  author.ID,
		Content: content,
	}

	if err := service.commentRepository.Create(context, comment); err != nil {
		return nil, err
	}

	// Re-read for the hydrated author card.
	return service.commentRepository.FindByID(context, comment.ID)
}

/*
ListByVideo returns a video's thread, newest first.

Parameters:
  - context: context.Context
  - videoID: string
  - params: pagination.Params

Returns:
  - []Comment: Page of comments
  - pagination.Meta: Pagination metadata
  - error: Execution failures
*/
func (service *Service) ListByVideo(context context.Context, videoID string, params pagination.Params) ([]Comment, pagination.Meta, error) {
	comments, total, err := service.commentRepository.ListByVideo(context, videoID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return comments, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Delete removes a comment. Only its author may delete it.

Parameters:
  - context: context.Context
  - actor: *auth.User
  - commentID: string

Returns:
  - error: NotFound, Forbidden (not the author), or storage failures
*/
func (service *Service) Delete(context context.Context, actor *auth.User, commentID string) error {
	comment, err := service.commentRepository.FindByID(context, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != actor.ID {
		return apperr.Forbidden("You can only delete your comment")
	}

	return service.commentRepository.Delete(context, commentID)
}
