// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

/*
Package video implements the video catalog: upload metadata, playback pages,
view counting, and the like/favorite relations.

# Architecture

Videos reference their owner in users.account; the like relation also feeds
the owner's denormalized likes_count (the profile-page "hearts" total), which
is kept consistent transactionally on every like/unlike.
*/
package video

import "time"

// # Domain Entities

// Video represents a published clip with its engagement counters.
type Video struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Description  string   `json:"description"`
	VideoURL     string   `json:"video_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Tags         []string `json:"tags"`

	Views          int `json:"views"`
	LikesCount     int `json:"likes_count"`
	FavoritesCount int `json:"favorites_count"`
	CommentsCount  int `json:"comments_count"`

	// IsLiked / IsFavorited reflect the viewing user. Always false for
	// anonymous viewers.
	IsLiked     bool `json:"is_liked"`
	IsFavorited bool `json:"is_favorited"`

	// Owner is the embedded author card for player UIs.
	Owner *Owner `json:"owner,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Owner is the compact author representation embedded in video payloads.
type Owner struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Nickname   string `json:"nickname"`
	Avatar     string `json:"avatar,omitempty"`
	LikesCount int    `json:"likes_count"`
}

// # Tag Taxonomy

// Tags is the closed set of discovery categories a video can carry.
var Tags = []string{
	"dancing",
	"comedy",
	"sports",
	"anime",
	"shows",
	"daily life",
	"beauty",
	"games",
	"cars",
	"food",
	"animal",
	"fitness",
}

// IsValidTag reports whether tag belongs to the taxonomy.
func IsValidTag(tag string) bool {
	for _, known := range Tags {
		if tag == known {
			return true
		}
	}
	return false
}

// # Field Identifiers

const (
	FieldDescription  = "description"
	FieldVideoURL     = "video_url"
	FieldThumbnailURL = "thumbnail_url"
	FieldTags         = "tags"
)

// DescriptionMaxLen bounds the caption length.
const DescriptionMaxLen = 300
