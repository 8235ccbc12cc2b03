// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package feed_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhle/reelo/internal/feed"
	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/video"
	"github.com/minhle/reelo/pkg/pagination"
)

// # Test Doubles

// fakeFeedRepository serves a fixed id sample and canned listings.
type fakeFeedRepository struct {
	sample      []string
	following   []video.Video
	byTag       map[string][]video.Video
	sampleCalls int
}

func (repo *fakeFeedRepository) SampleIDs(_ context.Context, size int) ([]string, error) {
	repo.sampleCalls++
	if len(repo.sample) > size {
		return repo.sample[:size], nil
	}
	return repo.sample, nil
}

func (repo *fakeFeedRepository) FindByIDs(_ context.Context, videoIDs []string, _ string) ([]video.Video, error) {
	videos := make([]video.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		videos = append(videos, video.Video{ID: id})
	}
	return videos, nil
}

func (repo *fakeFeedRepository) ListFollowing(_ context.Context, _ string, params pagination.Params) ([]video.Video, int, error) {
	return page(repo.following, params), len(repo.following), nil
}

func (repo *fakeFeedRepository) ListByTag(_ context.Context, tag, _ string, params pagination.Params) ([]video.Video, int, error) {
	videos := repo.byTag[tag]
	return page(videos, params), len(videos), nil
}

func page(videos []video.Video, params pagination.Params) []video.Video {
	start := params.Offset()
	if start >= len(videos) {
		return nil
	}
	end := start + params.Limit
	if end > len(videos) {
		end = len(videos)
	}
	return videos[start:end]
}

// fakeSampleCache is an in-memory SampleCache without expiry.
type fakeSampleCache struct {
	entries map[string][]string
}

func newFakeSampleCache() *fakeSampleCache {
	return &fakeSampleCache{entries: make(map[string][]string)}
}

func (cache *fakeSampleCache) Get(_ context.Context, sessionID string) ([]string, error) {
	return cache.entries[sessionID], nil
}

func (cache *fakeSampleCache) Set(_ context.Context, sessionID string, videoIDs []string) error {
	cache.entries[sessionID] = videoIDs
	return nil
}

func newTestService(sampleSize int) (*feed.Service, *fakeFeedRepository, *fakeSampleCache) {
	sample := make([]string, sampleSize)
	for i := range sample {
		sample[i] = fmt.Sprintf("video-%03d", i)
	}

	repo := &fakeFeedRepository{sample: sample, byTag: map[string][]video.Video{}}
	cache := newFakeSampleCache()
	service := feed.NewService(repo, cache, slog.Default())

	return service, repo, cache
}

// # Randomized Feed

/*
TestForYou_FirstRequestSamples verifies that a session-less request draws a
sample, caches it, and returns the first page.
*/
func TestForYou_FirstRequestSamples(t *testing.T) {
	service, repo, cache := newTestService(12)

	videos, sessionID, exhausted, err := service.ForYou(context.Background(), "", "", false, 1)
	require.NoError(t, err)

	assert.False(t, exhausted)
	assert.NotEmpty(t, sessionID)
	assert.Equal(t, 1, repo.sampleCalls)
	assert.Len(t, videos, pagination.FeedLimit)

	// The full sample, not just the first page, is parked in the cache.
	assert.Len(t, cache.entries[sessionID], 12)
}

/*
TestForYou_PagingIsStable verifies that later pages walk the same frozen
shuffle without resampling or repeating videos.
*/
func TestForYou_PagingIsStable(t *testing.T) {
	service, repo, _ := newTestService(12)

	first, sessionID, _, err := service.ForYou(context.Background(), "", "", false, 1)
	require.NoError(t, err)

	second, sameSession, exhausted, err := service.ForYou(context.Background(), "", sessionID, false, 2)
	require.NoError(t, err)

	assert.False(t, exhausted)
	assert.Equal(t, sessionID, sameSession)
	assert.Equal(t, 1, repo.sampleCalls)

	seen := make(map[string]bool)
	for _, v := range first {
		seen[v.ID] = true
	}
	for _, v := range second {
		assert.False(t, seen[v.ID], "page two repeated %s", v.ID)
	}
}

/*
TestForYou_Exhaustion verifies the partial last page and the exhaustion
signal past the end of the sample.
*/
func TestForYou_Exhaustion(t *testing.T) {
	service, _, _ := newTestService(7)

	_, sessionID, _, err := service.ForYou(context.Background(), "", "", false, 1)
	require.NoError(t, err)

	second, _, exhausted, err := service.ForYou(context.Background(), "", sessionID, false, 2)
	require.NoError(t, err)
	assert.False(t, exhausted)
	assert.Len(t, second, 2)

	third, _, exhausted, err := service.ForYou(context.Background(), "", sessionID, false, 3)
	require.NoError(t, err)
	assert.True(t, exhausted)
	assert.Empty(t, third)
}

/*
TestForYou_RefreshResamples verifies that an explicit refresh abandons the
old session and draws a new sample.
*/
func TestForYou_RefreshResamples(t *testing.T) {
	service, repo, _ := newTestService(12)

	_, oldSession, _, err := service.ForYou(context.Background(), "", "", false, 1)
	require.NoError(t, err)

	_, newSession, _, err := service.ForYou(context.Background(), "", oldSession, true, 1)
	require.NoError(t, err)

	assert.NotEqual(t, oldSession, newSession)
	assert.Equal(t, 2, repo.sampleCalls)
}

/*
TestForYou_ExpiredSessionResamples verifies transparent recovery when the
cached sample has expired out of Redis.
*/
func TestForYou_ExpiredSessionResamples(t *testing.T) {
	service, repo, _ := newTestService(12)

	videos, sessionID, exhausted, err := service.ForYou(context.Background(), "", "session-that-expired", false, 1)
	require.NoError(t, err)

	assert.False(t, exhausted)
	assert.NotEqual(t, "session-that-expired", sessionID)
	assert.Equal(t, 1, repo.sampleCalls)
	assert.Len(t, videos, pagination.FeedLimit)
}

// # Following Feed

/*
TestFollowing verifies fixed-size pages and the exhaustion signal.
*/
func TestFollowing(t *testing.T) {
	service, repo, _ := newTestService(0)
	for i := 0; i < 7; i++ {
		repo.following = append(repo.following, video.Video{ID: fmt.Sprintf("followed-%d", i)})
	}

	first, exhausted, err := service.Following(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.False(t, exhausted)
	assert.Len(t, first, pagination.FeedLimit)

	second, exhausted, err := service.Following(context.Background(), "user-1", 2)
	require.NoError(t, err)
	assert.False(t, exhausted)
	assert.Len(t, second, 2)

	_, exhausted, err = service.Following(context.Background(), "user-1", 3)
	require.NoError(t, err)
	assert.True(t, exhausted)
}

/*
TestFollowing_NothingFollowed verifies immediate exhaustion when the user
follows nobody with videos.
*/
func TestFollowing_NothingFollowed(t *testing.T) {
	service, _, _ := newTestService(0)

	videos, exhausted, err := service.Following(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.True(t, exhausted)
	assert.Empty(t, videos)
}

// # Tag Exploration

/*
TestExplore verifies tag listing with pagination metadata.
*/
func TestExplore(t *testing.T) {
	service, repo, _ := newTestService(0)
	for i := 0; i < 13; i++ {
		repo.byTag["comedy"] = append(repo.byTag["comedy"], video.Video{ID: fmt.Sprintf("funny-%d", i)})
	}

	videos, meta, err := service.Explore(context.Background(), "comedy", "", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, videos, 10)
	assert.Equal(t, 13, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}

/*
TestExplore_UnknownTag verifies rejection of tags outside the catalogue.
*/
func TestExplore_UnknownTag(t *testing.T) {
	service, _, _ := newTestService(0)

	_, _, err := service.Explore(context.Background(), "gardening", "", pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
