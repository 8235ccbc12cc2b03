// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

/*
Package comment implements the comment thread attached to every video.

Comments are flat (no reply nesting) and carry an embedded author card so
the client can render a thread without extra profile lookups.
*/
package comment

import "time"

// # Domain Entities

// Comment represents a single entry in a video's thread.
type Comment struct {
	ID      string `json:"id"`
	VideoID string `json:"video_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`

	// Author is the embedded card of the commenting user.
	Author *Author `json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Author is the compact user representation embedded in comment payloads.
type Author struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Nickname   string `json:"nickname"`
	Avatar     string `json:"avatar,omitempty"`
	LikesCount int    `json:"likes_count"`
}

// # Field Identifiers

const (
	FieldContent = "content"
)

// ContentMaxLen bounds a single comment's length.
const ContentMaxLen = 500
