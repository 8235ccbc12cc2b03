// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/pkg/pagination"
	"github.com/minhle/reelo/pkg/textnorm"
)

// # Service Layer

// Service orchestrates business logic for public profiles and the follow graph.
type Service struct {
	profileRepository ProfileRepository
	userRepository    auth.UserRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(profileRepo ProfileRepository, userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		profileRepository: profileRepo,
		userRepository:    userRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves a public profile with its computed counters.

Parameters:
  - context: context.Context
  - userID: string
  - viewerID: string (empty for anonymous viewers)

Returns:
  - *Profile: The hydrated public profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID, viewerID string) (*Profile, error) {
	return service.profileRepository.GetProfile(context, userID, viewerID)
}

// UpdateProfileInput defines the mutable subset of profile fields.
// Nil pointers leave the corresponding field untouched.
type UpdateProfileInput struct {
	Name     *string
	Nickname *string
	Bio      *string
	Avatar   *string
}

/*
UpdateProfile applies a partial set of changes to the acting user's profile.

Description: Fetches the current account state, overlays the provided
fields, and persists the result. Email and password are deliberately not
reachable through this path; they have their own authenticated flows.

Parameters:
  - context: context.Context
  - user: *auth.User (the acting user)
  - input: UpdateProfileInput

Returns:
  - *Profile: The refreshed public profile
  - error: Conflict on duplicate nickname, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, user *auth.User, input UpdateProfileInput) (*Profile, error) {

	// Re-read the account: the context user may be stale within the request.
	account, err := service.userRepository.FindByID(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("profile_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Nickname != nil {
		account.Nickname = *input.Nickname
	}
	if input.Bio != nil {
		account.Bio = *input.Bio
	}
	if input.Avatar != nil {
		account.Avatar = *input.Avatar
	}

	if err := service.profileRepository.UpdateAccount(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", user.ID))

	return service.profileRepository.GetProfile(context, user.ID, user.ID)
}

// # Discovery

/*
Search finds profiles by name or nickname, ignoring case and accents.

Parameters:
  - context: context.Context
  - query: string (raw user input)
  - params: pagination.Params

Returns:
  - []Card: Matching profiles
  - pagination.Meta: Pagination metadata
  - error: Execution failures
*/
func (service *Service) Search(context context.Context, query string, params pagination.Params) ([]Card, pagination.Meta, error) {
	needle := textnorm.Fold(strings.TrimSpace(query))
	if needle == "" {
		return []Card{}, pagination.NewMeta(params.Page, params.Limit, 0), nil
	}

	cards, total, err := service.profileRepository.Search(context, needle, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return cards, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
CheckNickname reports whether a nickname is still available.

Parameters:
  - context: context.Context
  - nickname: string

Returns:
  - bool: true when the nickname is free
  - error: Execution failures
*/
func (service *Service) CheckNickname(context context.Context, nickname string) (bool, error) {
	taken, err := service.profileRepository.NicknameExists(context, nickname)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// # Follow Graph

/*
Follow makes the acting user follow the target profile.

Parameters:
  - context: context.Context
  - actor: *auth.User
  - targetID: string

Returns:
  - error: Validation (self-follow), NotFound, or storage failures
*/
func (service *Service) Follow(context context.Context, actor *auth.User, targetID string) error {
	if actor.ID == targetID {
		return apperr.ValidationError("You cannot follow yourself")
	}

	return service.profileRepository.Follow(context, actor.ID, targetID)
}

/*
Unfollow removes the acting user's follow edge to the target profile.

Parameters:
  - context: context.Context
  - actor: *auth.User
  - targetID: string

Returns:
  - error: Storage failures
*/
func (service *Service) Unfollow(context context.Context, actor *auth.User, targetID string) error {
	return service.profileRepository.Unfollow(context, actor.ID, targetID)
}

/*
Following lists the profiles that userID follows.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Card: Followed profiles
  - pagination.Meta: Pagination metadata
  - error: Execution failures
*/
func (service *Service) Following(context context.Context, userID string, params pagination.Params) ([]Card, pagination.Meta, error) {
	cards, total, err := service.profileRepository.ListFollowing(context, userID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return cards, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Followers lists the profiles following userID.

Parameters:
  - context: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Card: Follower profiles
  - pagination.Meta: Pagination metadata
  - error: Execution failures
*/
func (service *Service) Followers(context context.Context, userID string, params pagination.Params) ([]Card, pagination.Meta, error) {
	cards, total, err := service.profileRepository.ListFollowers(context, userID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return cards, pagination.NewMeta(params.Page, params.Limit, total), nil
}
