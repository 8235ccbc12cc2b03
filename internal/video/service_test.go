// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package video_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/internal/video"
	"github.com/minhle/reelo/pkg/pagination"
)

// # Test Doubles

type edge struct{ userID, videoID string }

// fakeVideoRepository is an in-memory VideoRepository mirroring the
// transactional counter behavior of the SQL implementation.
type fakeVideoRepository struct {
	videos     map[string]*video.Video
	likes      map[edge]bool
	favorites  map[edge]bool
	ownerLikes map[string]int
}

func newFakeVideoRepository() *fakeVideoRepository {
	return &fakeVideoRepository{
		videos:     make(map[string]*video.Video),
		likes:      make(map[edge]bool),
		favorites:  make(map[edge]bool),
		ownerLikes: make(map[string]int),
	}
}

func (repo *fakeVideoRepository) Create(_ context.Context, v *video.Video) error {
	clone := *v
	clone.Owner = &video.Owner{ID: v.OwnerID}
	repo.videos[v.ID] = &clone
	return nil
}

func (repo *fakeVideoRepository) FindByID(_ context.Context, videoID, viewerID string) (*video.Video, error) {
	stored, ok := repo.videos[videoID]
	if !ok {
		return nil, apperr.NotFound("Video")
	}

	hydrated := *stored
	hydrated.IsLiked = viewerID != "" && repo.likes[edge{viewerID, videoID}]
	hydrated.IsFavorited = viewerID != "" && repo.favorites[edge{viewerID, videoID}]

	for e := range repo.likes {
		if e.videoID == videoID {
			hydrated.LikesCount++
		}
	}

	return &hydrated, nil
}

func (repo *fakeVideoRepository) IncrementView(_ context.Context, videoID string) error {
	stored, ok := repo.videos[videoID]
	if !ok {
		return apperr.NotFound("Video")
	}
	stored.Views++
	return nil
}

func (repo *fakeVideoRepository) ListByOwner(_ context.Context, ownerID, _ string, _ pagination.Params) ([]video.Video, int, error) {
	matched := make([]video.Video, 0)
	for _, v := range repo.videos {
		if v.OwnerID == ownerID {
			matched = append(matched, *v)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeVideoRepository) ListLiked(_ context.Context, userID, _ string, _ pagination.Params) ([]video.Video, int, error) {
	matched := make([]video.Video, 0)
	for e := range repo.likes {
		if e.userID == userID {
			matched = append(matched, *repo.videos[e.videoID])
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeVideoRepository) ListFavorited(_ context.Context, userID, _ string, _ pagination.Params) ([]video.Video, int, error) {
	matched := make([]video.Video, 0)
	for e := range repo.favorites {
		if e.userID == userID {
			matched = append(matched, *repo.videos[e.videoID])
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeVideoRepository) Like(_ context.Context, userID, videoID string) error {
	stored, ok := repo.videos[videoID]
	if !ok {
		return apperr.NotFound("Video")
	}

	// The counter moves only when the edge is new.
	if !repo.likes[edge{userID, videoID}] {
		repo.likes[edge{userID, videoID}] = true
		repo.ownerLikes[stored.OwnerID]++
	}
	return nil
}

func (repo *fakeVideoRepository) Unlike(_ context.Context, userID, videoID string) error {
	stored, ok := repo.videos[videoID]
	if !ok {
		return apperr.NotFound("Video")
	}

	if repo.likes[edge{userID, videoID}] {
		delete(repo.likes, edge{userID, videoID})
		if repo.ownerLikes[stored.OwnerID] > 0 {
			repo.ownerLikes[stored.OwnerID]--
		}
	}
	return nil
}

func (repo *fakeVideoRepository) Favorite(_ context.Context, userID, videoID string) error {
	if _, ok := repo.videos[videoID]; !ok {
		return apperr.NotFound("Video")
	}
	repo.favorites[edge{userID, videoID}] = true
	return nil
}

func (repo *fakeVideoRepository) Unfavorite(_ context.Context, userID, videoID string) error {
	delete(repo.favorites, edge{userID, videoID})
	return nil
}

// # Tests

/*
TestIsValidTag pins the tag catalogue boundary.
*/
func TestIsValidTag(t *testing.T) {
	for _, tag := range video.Tags {
		assert.True(t, video.IsValidTag(tag), tag)
	}

	assert.False(t, video.IsValidTag("gardening"))
	assert.False(t, video.IsValidTag("Comedy"))
	assert.False(t, video.IsValidTag(""))
}

/*
TestServiceCreate verifies publishing, including the nil-tags default.
*/
func TestServiceCreate(t *testing.T) {
	repo := newFakeVideoRepository()
	service := video.NewService(repo, slog.Default())
	owner := &auth.User{ID: "owner-1"}

	created, err := service.Create(context.Background(), owner, video.CreateInput{
		Description: "first clip",
		VideoURL:    "https://cdn.reelo.dev/v/1.mp4",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-1", created.OwnerID)

	// Tags serialize as [] rather than null.
	require.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags)

	require.NotNil(t, created.Owner)
	assert.Equal(t, "owner-1", created.Owner.ID)
}

/*
TestServiceRegisterView verifies the play counter and unknown-video rejection.
*/
func TestServiceRegisterView(t *testing.T) {
	repo := newFakeVideoRepository()
	service := video.NewService(repo, slog.Default())

	created, err := service.Create(context.Background(), &auth.User{ID: "owner-1"}, video.CreateInput{VideoURL: "https://cdn.reelo.dev/v/1.mp4"})
	require.NoError(t, err)

	require.NoError(t, service.RegisterView(context.Background(), created.ID))
	require.NoError(t, service.RegisterView(context.Background(), created.ID))

	fetched, err := service.Get(context.Background(), created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Views)

	err = service.RegisterView(context.Background(), "no-such-video")
	require.Error(t, err)
	assert.Equal(t, "Video not found", err.Error())
}

/*
TestServiceLike verifies idempotent likes, the owner counter, and the
viewer flag on reads.
*/
func TestServiceLike(t *testing.T) {
	repo := newFakeVideoRepository()
	service := video.NewService(repo, slog.Default())

	owner := &auth.User{ID: "owner-1"}
	fan := &auth.User{ID: "fan-1"}

	created, err := service.Create(context.Background(), owner, video.CreateInput{VideoURL: "https://cdn.reelo.dev/v/1.mp4"})
	require.NoError(t, err)

	// Double-like must count once.
	require.NoError(t, service.Like(context.Background(), fan, created.ID))
	require.NoError(t, service.Like(context.Background(), fan, created.ID))
	assert.Equal(t, 1, repo.ownerLikes["owner-1"])

	asFan, err := service.Get(context.Background(), created.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, asFan.IsLiked)
	assert.Equal(t, 1, asFan.LikesCount)

	asAnonymous, err := service.Get(context.Background(), created.ID, "")
	require.NoError(t, err)
	assert.False(t, asAnonymous.IsLiked)

	// Unlike twice must not go negative.
	require.NoError(t, service.Unlike(context.Background(), fan, created.ID))
	require.NoError(t, service.Unlike(context.Background(), fan, created.ID))
	assert.Equal(t, 0, repo.ownerLikes["owner-1"])

	// Liking a missing video is a 404.
	err = service.Like(context.Background(), fan, "no-such-video")
	require.Error(t, err)
	assert.Equal(t, "Video not found", err.Error())
}

/*
TestServiceFavorited verifies the bookmark listing with metadata.
*/
func TestServiceFavorited(t *testing.T) {
	repo := newFakeVideoRepository()
	service := video.NewService(repo, slog.Default())

	owner := &auth.User{ID: "owner-1"}
	fan := &auth.User{ID: "fan-1"}

	created, err := service.Create(context.Background(), owner, video.CreateInput{VideoURL: "https://cdn.reelo.dev/v/1.mp4"})
	require.NoError(t, err)

	require.NoError(t, service.Favorite(context.Background(), fan, created.ID))

	videos, meta, err := service.Favorited(context.Background(), fan.ID, fan.ID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, created.ID, videos[0].ID)
	assert.Equal(t, 1, meta.Total)

	require.NoError(t, service.Unfavorite(context.Background(), fan, created.ID))

	videos, _, err = service.Favorited(context.Background(), fan.ID, fan.ID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, videos)
}
