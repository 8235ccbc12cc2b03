// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package comment

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

// commentSelect is the canonical projection with the embedded author card.
const commentSelect = `
	SELECT c.id, c.videoid, c.userid, c.content, c.createdat,
	       a.id, a.name, a.nickname, a.avatarurl, a.likescount
	FROM content.comment c
	JOIN users.account a ON a.id = c.userid`

// # Comment Repository

// PostgresCommentRepository implements the CommentRepository interface using pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of the CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

/*
Create persists a new comment into the content.comment table.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: apperr.NotFound when the video does not exist
*/
func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO content.comment (id, videoid, userid, content, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.VideoID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	)

	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Video")
		}
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID returns a single comment with its author card.

Parameters:
  - context: context.Context
  - commentID: string

Returns:
  - *Comment: Hydrated entity
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresCommentRepository) FindByID(context context.Context, commentID string) (*Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`

	comment, err := scanComment(repository.pool.QueryRow(context, query, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFoundMsg("No comment found with that ID")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

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
func (repository *PostgresCommentRepository) ListByVideo(context context.Context, videoID string, params pagination.Params) ([]Comment, int, error) {
	const countQuery = `SELECT COUNT(*) FROM content.comment WHERE videoid = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, videoID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	query := commentSelect + `
		WHERE c.videoid = $1
		ORDER BY c.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, videoID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_rows_failed: %w", err)
	}

	return comments, total, nil
}

/*
Delete removes a comment by id.

Parameters:
  - context: context.Context
  - commentID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresCommentRepository) Delete(context context.Context, commentID string) error {
	const query = `DELETE FROM content.comment WHERE id = $1`

	_, err := repository.pool.Exec(context, query, commentID)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	return nil
}

// scanComment hydrates one comment (plus embedded author) from the shared projection.
func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{Author: &Author{}}

	err := row.Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.Author.ID,
		&comment.Author.Name,
		&comment.Author.Nickname,
		&comment.Author.Avatar,
		&comment.Author.LikesCount,
	)
	if err != nil {
		return nil, err
	}

	return comment, nil
}
