// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package video

import (
	"context"
	"log/slog"

	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/pkg/pagination"
	"github.com/minhle/reelo/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for the video catalog.
type Service struct {
	videoRepository VideoRepository
	logger          *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(videoRepo VideoRepository, logger *slog.Logger) *Service {
	return &Service{
		videoRepository: videoRepo,
		logger:          logger,
	}
}

// # Publishing

// CreateInput holds the metadata for a freshly uploaded clip.
//
// The media files themselves are uploaded to object storage by the client;
// this API only records their URLs.
type CreateInput struct {
	Description  string
	VideoURL     string
	ThumbnailURL string
	Tags         []string
}

/*
Create publishes a new video owned by the acting user.

Parameters:
  - context: context.Context
  - owner: *auth.User
  - input: CreateInput

Returns:
  - *Video: The published entity, hydrated with its owner card
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, owner *auth.User, input CreateInput) (*Video, error) {
	video := &Video{
		ID:           uuidv7.New(),
		OwnerID:      owner.ID,
		Description:  input.Description,
		VideoURL:     input.VideoURL,
		ThumbnailURL: input.ThumbnailURL,
		Tags:         input.Tags,
	}

	if video.Tags == nil {
		video.Tags = []string{}
	}

	if err := service.videoRepository.Create(context, video); err != nil {
		return nil, err
	}

	service.logger.Info("video_published",
		slog.String("video_id", video.ID),
		slog.String("owner_id", owner.ID),
	)

	// Re-read for the hydrated owner card and zeroed counters.
	return service.videoRepository.FindByID(context, video.ID, owner.ID)
}

// # Playback

/*
Get returns a single video for the player page.

Parameters:
  - context: context.Context
  - videoID: string
  - viewerID: string (empty for anonymous viewers)

Returns:
  - *Video: Hydrated entity
  - error: Not found or execution failures
*/
func (service *Service) Get(context context.Context, videoID, viewerID string) (*Video, error) {
	return service.videoRepository.FindByID(context, videoID, viewerID)
}

/*
RegisterView bumps the play counter.

Description: Deliberately unauthenticated and unthrottled, matching the
client which fires it once per playback start.

Parameters:
  - context: context.Context
  - videoID: string

Returns:
  - error: Not found or execution failures
*/
func (service *Service) RegisterView(context context.Context, videoID string) error {
	return service.videoRepository.IncrementView(context, videoID)
}

// # Listings

/*
ByOwner lists a user's published videos, newest first.
*/
func (service *Service) ByOwner(context context.Context, ownerID, viewerID string, params pagination.Params) ([]Video, pagination.Meta, error) {
	videos, total, err := service.videoRepository.ListByOwner(context, ownerID, viewerID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return videos, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Liked lists the videos a user has liked, most recent like first.
*/
func (service *Service) Liked(context context.Context, userID, viewerID string, params pagination.Params) ([]Video, pagination.Meta, error) {
	videos, total, err := service.videoRepository.ListLiked(context, userID, viewerID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return videos, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Favorited lists the videos a user has bookmarked, most recent first.
*/
func (service *Service) Favorited(context context.Context, userID, viewerID string, params pagination.Params) ([]Video, pagination.Meta, error) {
	videos, total, err := service.videoRepository.ListFavorited(context, userID, viewerID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return videos, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// # Engagement

/*
Like records the acting user liking a video.
*/
func (service *Service) Like(context context.Context, actor *auth.User, videoID string) error {
	return service.videoRepository.Like(context, actor.ID, videoID)
}

/*
Unlike removes the acting user's like from a video.
*/
func (service *Service) Unlike(context context.Context, actor *auth.User, videoID string) error {
	return service.videoRepository.Unlike(context, actor.ID, videoID)
}

/*
Favorite bookmarks a video for the acting user.
*/
func (service *Service) Favorite(context context.Context, actor *auth.User, videoID string) error {
	return service.videoRepository.Favorite(context, actor.ID, videoID)
}

/*
Unfavorite removes the acting user's bookmark from a video.
*/
func (service *Service) Unfavorite(context context.Context, actor *auth.User, videoID string) error {
	return service.videoRepository.Unfavorite(context, actor.ID, videoID)
}
