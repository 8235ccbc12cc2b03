// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/platform/dberr"
	"github.com/minhle/reelo/pkg/pagination"
)

// Select is the canonical projection for hydrated videos. The single format
// argument is the placeholder carrying the viewer id (empty string for
// anonymous viewers). The feed queries reuse it so every surface returns
// identically shaped videos.
const Select = `
	SELECT
		v.id, v.ownerid, v.description, v.videourl, v.thumbnailurl, v.tags, v.views, v.createdat,
		(SELECT COUNT(*) FROM content.videolike l     WHERE l.videoid = v.id) AS likes,
		(SELECT COUNT(*) FROM content.videofavorite f WHERE f.videoid = v.id) AS favorites,
		(SELECT COUNT(*) FROM content.comment c       WHERE c.videoid = v.id) AS comments,
		EXISTS (SELECT 1 FROM content.videolike l     WHERE l.videoid = v.id AND l.userid = NULLIF(%[1]s, '')) AS isliked,
		EXISTS (SELECT 1 FROM content.videofavorite f WHERE f.videoid = v.id AND f.userid = NULLIF(%[1]s, '')) AS isfavorited,
		a.id, a.name, a.nickname, a.avatarurl, a.likescount
	FROM content.video v
	JOIN users.account a ON a.id = v.ownerid`

// # Video Repository

// PostgresVideoRepository implements the VideoRepository interface using pgx.
type PostgresVideoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new PostgreSQL implementation of the VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

/*
Create persists a new video record into the content.video table.

Parameters:
  - context: context.Context
  - video: *Video

Returns:
  - error: Persistence failures
*/
func (repository *PostgresVideoRepository) Create(context context.Context, video *Video) error {
	const query = `
		INSERT INTO content.video (id, ownerid, description, videourl, thumbnailurl, tags, views, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.OwnerID,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Tags,
		video.Views,
		video.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_video_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID returns a single hydrated video.

Parameters:
  - context: context.Context
  - videoID: string
  - viewerID: string

Returns:
  - *Video: Hydrated entity with owner card and viewer flags
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresVideoRepository) FindByID(context context.Context, videoID, viewerID string) (*Video, error) {
	query := fmt.Sprintf(Select, "$2") + ` WHERE v.id = $1`

	row := repository.pool.QueryRow(context, query, videoID, viewerID)
	video, err := ScanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Video")
		}
		return nil, fmt.Errorf("postgres_video_repo_find_failed: %w", err)
	}

	return video, nil
}

/*
IncrementView adds one to the play counter.

Parameters:
  - context: context.Context
  - videoID: string

Returns:
  - error: apperr.NotFound when the video does not exist
*/
func (repository *PostgresVideoRepository) IncrementView(context context.Context, videoID string) error {
	const query = `UPDATE content.video SET views = views + 1 WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, videoID)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_increment_view_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}

	return nil
}

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
func (repository *PostgresVideoRepository) ListByOwner(context context.Context, ownerID, viewerID string, params pagination.Params) ([]Video, int, error) {
	const countQuery = `SELECT COUNT(*) FROM content.video WHERE ownerid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_owner_count_failed: %w", err)
	}

	query := fmt.Sprintf(Select, "$2") + `
		WHERE v.ownerid = $1
		ORDER BY v.createdat DESC
		LIMIT $3 OFFSET $4`

	videos, err := repository.queryVideos(context, query, ownerID, viewerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

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
func (repository *PostgresVideoRepository) ListLiked(context context.Context, userID, viewerID string, params pagination.Params) ([]Video, int, error) {
	const countQuery = `SELECT COUNT(*) FROM content.videolike WHERE userid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_liked_count_failed: %w", err)
	}

	query := fmt.Sprintf(Select, "$2") + `
		JOIN content.videolike ul ON ul.videoid = v.id AND ul.userid = $1
		ORDER BY ul.createdat DESC
		LIMIT $3 OFFSET $4`

	videos, err := repository.queryVideos(context, query, userID, viewerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

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
func (repository *PostgresVideoRepository) ListFavorited(context context.Context, userID, viewerID string, params pagination.Params) ([]Video, int, error) {
	const countQuery = `SELECT COUNT(*) FROM content.videofavorite WHERE userid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_favorited_count_failed: %w", err)
	}

	query := fmt.Sprintf(Select, "$2") + `
		JOIN content.videofavorite uf ON uf.videoid = v.id AND uf.userid = $1
		ORDER BY uf.createdat DESC
		LIMIT $3 OFFSET $4`

	videos, err := repository.queryVideos(context, query, userID, viewerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// # Engagement Relations

/*
Like records a like and bumps the owner's received-likes counter.

Description: Both writes happen in one transaction. The counter moves only
when the like edge is actually new, so repeated likes cannot inflate it.

Parameters:
  - context: context.Context
  - userID: string
  - videoID: string

Returns:
  - error: apperr.NotFound when the video does not exist
*/
func (repository *PostgresVideoRepository) Like(context context.Context, userID, videoID string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_like_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const insertQuery = `
		INSERT INTO content.videolike (userid, videoid, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (userid, videoid) DO NOTHING`

	tag, err := transaction.Exec(context, insertQuery, userID, videoID)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Video")
		}
		return fmt.Errorf("postgres_video_repo_like_failed: %w", err)
	}

	if tag.RowsAffected() == 1 {
		const counterQuery = `
			UPDATE users.account
			SET likescount = likescount + 1
			WHERE id = (SELECT ownerid FROM content.video WHERE id = $1)`

		if _, err := transaction.Exec(context, counterQuery, videoID); err != nil {
			return fmt.Errorf("postgres_video_repo_like_counter_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_video_repo_like_commit_failed: %w", err)
	}

	return nil
}

/*
Unlike removes a like and decrements the owner's counter.

Parameters:
  - context: context.Context
  - userID: string
  - videoID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresVideoRepository) Unlike(context context.Context, userID, videoID string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_unlike_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const deleteQuery = `DELETE FROM content.videolike WHERE userid = $1 AND videoid = $2`

	tag, err := transaction.Exec(context, deleteQuery, userID, videoID)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_unlike_failed: %w", err)
	}

	if tag.RowsAffected() == 1 {
		// GREATEST guards the counter against ever going negative.
		const counterQuery = `
			UPDATE users.account
			SET likescount = GREATEST(likescount - 1, 0)
			WHERE id = (SELECT ownerid FROM content.video WHERE id = $1)`

		if _, err := transaction.Exec(context, counterQuery, videoID); err != nil {
			return fmt.Errorf("postgres_video_repo_unlike_counter_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_video_repo_unlike_commit_failed: %w", err)
	}

	return nil
}

/*
Favorite bookmarks a video for a user. Re-favoriting is a no-op.

Parameters:
  - context: context.Context
  - userID: string
  - videoID: string

Returns:
  - error: apperr.NotFound when the video does not exist
*/
func (repository *PostgresVideoRepository) Favorite(context context.Context, userID, videoID string) error {
	const query = `
		INSERT INTO content.videofavorite (userid, videoid, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (userid, videoid) DO NOTHING`

	_, err := repository.pool.Exec(context, query, userID, videoID)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Video")
		}
		return fmt.Errorf("postgres_video_repo_favorite_failed: %w", err)
	}

	return nil
}

/*
Unfavorite removes the bookmark. Idempotent.

Parameters:
  - context: context.Context
  - userID: string
  - videoID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresVideoRepository) Unfavorite(context context.Context, userID, videoID string) error {
	const query = `DELETE FROM content.videofavorite WHERE userid = $1 AND videoid = $2`

	_, err := repository.pool.Exec(context, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_unfavorite_failed: %w", err)
	}

	return nil
}

// # Row Hydration

// queryVideos runs a multi-row video query and hydrates the result set.
func (repository *PostgresVideoRepository) queryVideos(context context.Context, query string, arguments ...any) ([]Video, error) {
	rows, err := repository.pool.Query(context, query, arguments...)
	if err != nil {
		return nil, fmt.Errorf("postgres_video_repo_query_failed: %w", err)
	}
	defer rows.Close()

	videos := make([]Video, 0)
	for rows.Next() {
		video, err := ScanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_video_repo_scan_failed: %w", err)
		}
		videos = append(videos, *video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_video_repo_rows_failed: %w", err)
	}

	return videos, nil
}

// ScanVideo hydrates one video (plus embedded owner) from the shared projection.
func ScanVideo(row pgx.Row) (*Video, error) {
	video := &Video{Owner: &Owner{}}

	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Tags,
		&video.Views,
		&video.CreatedAt,
		&video.LikesCount,
		&video.FavoritesCount,
		&video.CommentsCount,
		&video.IsLiked,
		&video.IsFavorited,
		&video.Owner.ID,
		&video.Owner.Name,
		&video.Owner.Nickname,
		&video.Owner.Avatar,
		&video.Owner.LikesCount,
	)
	if err != nil {
		return nil, err
	}

	return video, nil
}
