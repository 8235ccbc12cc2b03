// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

/*
Package profile implements public user profiles and the social graph.

It covers everything about a user that other users can see: the profile page
with its computed counters, accent-insensitive people search, nickname
availability checks, and the follow/unfollow relationship.

# Architecture

The profile layer reads the same users.account rows the auth package owns,
but through its own aggregating queries. Credential fields never cross this
package's boundary.
*/
package profile

import "time"

// # Domain Entities

// Profile is the public view of a user, enriched with social counters.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`

	// LikesCount is the total likes received across the user's videos.
	LikesCount     int `json:"likes_count"`
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	VideosCount    int `json:"videos_count"`

	// IsFollowed reports whether the viewing user follows this profile.
	// Always false for anonymous viewers.
	IsFollowed bool `json:"is_followed"`

	CreatedAt time.Time `json:"created_at"`
}

// Card is the compact profile representation used in follower/following
// lists and search results.
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldNickname = "nickname"
	FieldBio      = "bio"
	FieldAvatar   = "avatar"
	FieldQuery    = "q"
	FieldUserID   = "user_id"
)
