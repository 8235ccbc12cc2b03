// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

// Package feed serves the discovery surfaces: the randomized for-you feed,
// the following feed, and tag exploration.
//
// The for-you feed samples a fixed-size random window of video ids, parks it
// in Redis keyed by a browsing-session cookie, and pages through that frozen
// shuffle. Without the frozen sample, two consecutive pages would each draw
// independently and repeat videos.
package feed

import (
	"context"
	"log/slog"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/video"
	"github.com/minhle/reelo/pkg/pagination"
	"github.com/minhle/reelo/pkg/uuidv7"
)

// SampleSize is how many video ids one browsing session draws.
const SampleSize = 100

// ExhaustedMessage is returned when a client pages past its sample window.
const ExhaustedMessage = "You have watched all the videos"

// # Service Layer

// Service orchestrates business logic for the discovery feeds.
type Service struct {
	feedRepository FeedRepository
	sampleCache    SampleCache
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(feedRepo FeedRepository, sampleCache SampleCache, logger *slog.Logger) *Service {
	return &Service{
		feedRepository: feedRepo,
		sampleCache:    sampleCache,
		logger:         logger,
	}
}

/*
ForYou returns one page of the randomized feed.

Description: A session id of "" or refresh=true draws a fresh sample and
issues a new session id; otherwise the cached sample is paged. A session
whose cache entry expired is resampled transparently.

Parameters:
  - context: context.Context
  - viewerID: string
  - sessionID: string
  - refresh: bool
  - page: int

Returns:
  - []video.Video: The page, empty once the sample is exhausted
  - string: The session id the client should carry forward
  - bool: True when the client has paged past the sample
  - error: Storage or cache failures
*/
func (service *Service) ForYou(context context.Context, viewerID, sessionID string, refresh bool, page int) ([]video.Video, string, bool, error) {
	if page < 1 {
		page = 1
	}
	if sessionID == "" {
		refresh = true
	}

	var videoIDs []string
	if !refresh {
		cached, err := service.sampleCache.Get(context, sessionID)
		if err != nil {
			return nil, "", false, err
		}
		if cached == nil {
			service.logger.Debug("feed_sample_expired", "session_id", sessionID)
			refresh = true
		}
		videoIDs = cached
	}

	if refresh {
		sample, err := service.feedRepository.SampleIDs(context, SampleSize)
		if err != nil {
			return nil, "", false, err
		}

		sessionID = uuidv7.New()
		if err := service.sampleCache.Set(context, sessionID, sample); err != nil {
			return nil, "", false, err
		}
		videoIDs = sample
	}

	start := (page - 1) * pagination.FeedLimit
	if start >= len(videoIDs) {
		return nil, sessionID, true, nil
	}

	end := start + pagination.FeedLimit
	if end > len(videoIDs) {
		end = len(videoIDs)
	}

	videos, err := service.feedRepository.FindByIDs(context, videoIDs[start:end], viewerID)
	if err != nil {
		return nil, "", false, err
	}

	return videos, sessionID, false, nil
}

/*
Following returns one page of videos from accounts the user follows.

Parameters:
  - context: context.Context
  - userID: string
  - page: int

Returns:
  - []video.Video: The page, newest first
  - bool: True when the client has paged past the available videos
  - error: Execution failures
*/
func (service *Service) Following(context context.Context, userID string, page int) ([]video.Video, bool, error) {
	if page < 1 {
		page = 1
	}
	params := pagination.Params{Page: page, Limit: pagination.FeedLimit}

	videos, total, err := service.feedRepository.ListFollowing(context, userID, params)
	if err != nil {
		return nil, false, err
	}

	if params.Offset() >= total {
		return nil, true, nil
	}

	return videos, false, nil
}

/*
Explore returns videos carrying a tag, newest first.

Parameters:
  - context: context.Context
  - tag: string
  - viewerID: string
  - params: pagination.Params

Returns:
  - []video.Video: Page of videos
  - pagination.Meta: Pagination metadata
  - error: Validation (unknown tag) or execution failures
*/
func (service *Service) Explore(context context.Context, tag, viewerID string, params pagination.Params) ([]video.Video, pagination.Meta, error) {
	if !video.IsValidTag(tag) {
		return nil, pagination.Meta{}, apperr.ValidationError("Unknown tag: " + tag)
	}

	videos, total, err := service.feedRepository.ListByTag(context, tag, viewerID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return videos, pagination.NewMeta(params.Page, params.Limit, total), nil
}
