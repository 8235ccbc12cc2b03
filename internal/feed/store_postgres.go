// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package feed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhle/reelo/internal/video"
	"github.com/minhle/reelo/pkg/pagination"
)

// # Feed Repository

// PostgresFeedRepository implements the FeedRepository interface using pgx.
type PostgresFeedRepository struct {
	pool *pgxpool.Pool
}

// NewFeedRepository creates a new PostgreSQL implementation of the FeedRepository.
func NewFeedRepository(pool *pgxpool.Pool) *PostgresFeedRepository {
	return &PostgresFeedRepository{pool: pool}
}

/*
SampleIDs draws a random sample of video ids.

Parameters:
  - context: context.Context
  - size: int

Returns:
  - []string: Up to size video ids in random order
  - error: Execution failures
*/
func (repository *PostgresFeedRepository) SampleIDs(context context.Context, size int) ([]string, error) {
	const query = `SELECT id FROM content.video ORDER BY random() LIMIT $1`

	rows, err := repository.pool.Query(context, query, size)
	if err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_sample_failed: %w", err)
	}
	defer rows.Close()

	videoIDs := make([]string, 0, size)
	for rows.Next() {
		var videoID string
		if err := rows.Scan(&videoID); err != nil {
			return nil, fmt.Errorf("postgres_feed_repo_sample_scan_failed: %w", err)
		}
		videoIDs = append(videoIDs, videoID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_sample_rows_failed: %w", err)
	}

	return videoIDs, nil
}

/*
FindByIDs returns hydrated videos for the given ids, preserving input order.

Description: The id slice is joined with ordinality so the page keeps the
shuffle order of the cached sample. Deleted videos simply drop out.

Parameters:
  - context: context.Context
  - videoIDs: []string
  - viewerID: string

Returns:
  - []video.Video: Hydrated videos in input order
  - error: Execution failures
*/
func (repository *PostgresFeedRepository) FindByIDs(context context.Context, videoIDs []string, viewerID string) ([]video.Video, error) {
	if len(videoIDs) == 0 {
		return []video.Video{}, nil
	}

	query := fmt.Sprintf(video.Select, "$2") + `
		JOIN unnest($1::text[]) WITH ORDINALITY AS sample(id, position) ON sample.id = v.id
		ORDER BY sample.position`

	rows, err := repository.pool.Query(context, query, videoIDs, viewerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_find_by_ids_failed: %w", err)
	}
	defer rows.Close()

	videos := make([]video.Video, 0, len(videoIDs))
	for rows.Next() {
		entry, err := video.ScanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_feed_repo_scan_failed: %w", err)
		}
		videos = append(videos, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_rows_failed: %w", err)
	}

	return videos, nil
}

/*
ListFollowing returns videos from followed accounts, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []video.Video: Page of videos
  - int: Total count
  - error: Execution failures
*/
func (repository *PostgresFeedRepository) ListFollowing(context context.Context, userID string, params pagination.Params) ([]video.Video, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM content.video v
		JOIN users.follow f ON f.followeeid = v.ownerid AND f.followerid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_feed_repo_following_count_failed: %w", err)
	}

	query := fmt.Sprintf(video.Select, "$1") + `
		JOIN users.follow f ON f.followeeid = v.ownerid AND f.followerid = $1
		ORDER BY v.createdat DESC
		LIMIT $2 OFFSET $3`

	videos, err := repository.queryVideos(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

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
func (repository *PostgresFeedRepository) ListByTag(context context.Context, tag, viewerID string, params pagination.Params) ([]video.Video, int, error) {
	const countQuery = `SELECT COUNT(*) FROM content.video WHERE $1 = ANY(tags)`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, tag).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_feed_repo_tag_count_failed: %w", err)
	}

	query := fmt.Sprintf(video.Select, "$2") + `
		WHERE $1 = ANY(v.tags)
		ORDER BY v.createdat DESC
		LIMIT $3 OFFSET $4`

	videos, err := repository.queryVideos(context, query, tag, viewerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

func (repository *PostgresFeedRepository) queryVideos(ctx context.Context, query string, args ...any) ([]video.Video, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_list_failed: %w", err)
	}
	defer rows.Close()

	videos := make([]video.Video, 0)
	for rows.Next() {
		entry, err := video.ScanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_feed_repo_scan_failed: %w", err)
		}
		videos = append(videos, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_rows_failed: %w", err)
	}

	return videos, nil
}
