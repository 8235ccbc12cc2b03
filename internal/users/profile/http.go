// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minhle/reelo/internal/platform/request"
	"github.com/minhle/reelo/internal/platform/respond"
	"github.com/minhle/reelo/internal/platform/validate"
	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements profile and social-graph HTTP endpoints.
type Handler struct {
	profileService *Service
	authService    *auth.Service
}

// NewHandler constructs a new [Handler]. The auth service powers the route
// guards (Protect for mutations, Optional for public reads).
func NewHandler(service *Service, authService *auth.Service) *Handler {
	return &Handler{
		profileService: service,
		authService:    authService,
	}
}

// Routes returns a [chi.Router] configured with profile routes.
//
// # Endpoints
//   - GET    /me                  : Own profile with counters.
//   - PATCH  /me                  : Partial profile update.
//   - GET    /search?q=           : Accent-insensitive people search.
//   - GET    /check-nickname      : Nickname availability probe.
//   - GET    /{userID}            : Public profile page.
//   - GET    /{userID}/followers  : Who follows this user.
//   - GET    /{userID}/following  : Who this user follows.
//   - POST   /{userID}/follow     : Follow.
//   - DELETE /{userID}/follow     : Unfollow.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints (viewer-aware where it matters)
	router.Get("/search", handler.search)
	router.Get("/check-nickname", handler.checkNickname)
	router.With(auth.Optional(handler.authService)).Get("/{userID}", handler.getProfile)
	router.Get("/{userID}/followers", handler.followers)
	router.Get("/{userID}/following", handler.following)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(auth.Protect(handler.authService))
		r.Get("/me", handler.me)
		r.Patch("/me", handler.updateMe)
		r.Post("/{userID}/follow", handler.follow)
		r.Delete("/{userID}/follow", handler.unfollow)
	})

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Nickname *string `json:"nickname"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

// nicknameAvailability is the check-nickname response payload.
type nicknameAvailability struct {
	Nickname  string `json:"nickname"`
	Available bool   `json:"available"`
}

/*
Me returns the acting user's own profile.

GET /api/v1/users/me

Response:
  - 200: Profile: Own profile with counters
  - 401: ErrUnauthorized: Not logged in
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.GetProfile(request.Context(), user.ID, user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
UpdateMe applies a partial update to the acting user's profile.

PATCH /api/v1/users/me

Request:
  - Body: updateProfileRequest (any subset of name, nickname, bio, avatar)

Response:
  - 200: Profile: Refreshed profile
  - 400: ErrInvalidJSON: Validation failure
  - 409: ErrConflict: Nickname already taken
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, auth.NameMaxLen)
	}
	if input.Nickname != nil {
		validator.LenBetween(FieldNickname, *input.Nickname, auth.NicknameMinLen, auth.NicknameMaxLen)
	}
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, auth.BioMaxLen)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.UpdateProfile(request.Context(), user, UpdateProfileInput{
		Name:     input.Name,
		Nickname: input.Nickname,
		Bio:      input.Bio,
		Avatar:   input.Avatar,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GetProfile returns a public profile page.

GET /api/v1/users/{userID}

Description: Anonymous viewers get is_followed = false; logged-in viewers
get their actual follow state via the Optional guard.

Response:
  - 200: Profile: Public profile with counters
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	viewerID := ""
	if viewer := auth.UserFrom(request.Context()); viewer != nil {
		viewerID = viewer.ID
	}

	profile, err := handler.profileService.GetProfile(request.Context(), userID, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
Search finds users by name or nickname.

GET /api/v1/users/search?q=<needle>&page=&limit=

Description: Matching is case- and accent-insensitive ("Hoang" finds
"Hoàng"). An empty query returns an empty page rather than everyone.

Response:
  - 200: []Card: Matching profiles with pagination metadata
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query().Get(FieldQuery)

	cards, meta, err := handler.profileService.Search(request.Context(), query, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, meta)
}

/*
CheckNickname probes nickname availability for sign-up forms.

GET /api/v1/users/check-nickname?nickname=<candidate>

Response:
  - 200: nicknameAvailability: Availability flag
  - 400: ErrInvalidJSON: Nickname missing or out of bounds
*/
func (handler *Handler) checkNickname(writer http.ResponseWriter, request *http.Request) {
	nickname := request.URL.Query().Get(FieldNickname)

	validator := &validate.Validator{}
	validator.Required(FieldNickname, nickname).
		LenBetween(FieldNickname, nickname, auth.NicknameMinLen, auth.NicknameMaxLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	available, err := handler.profileService.CheckNickname(request.Context(), nickname)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nicknameAvailability{Nickname: nickname, Available: available})
}

/*
Follow makes the acting user follow the target.

POST /api/v1/users/{userID}/follow

Response:
  - 204: No Content: Edge recorded (idempotent)
  - 400: ErrValidation: Self-follow attempt
  - 404: ErrNotFound: Unknown target user
*/
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.Param(request, "userID")
	if err := handler.profileService.Follow(request.Context(), user, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Unfollow removes the acting user's follow edge to the target.

DELETE /api/v1/users/{userID}/follow

Response:
  - 204: No Content: Edge removed (idempotent)
*/
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.Param(request, "userID")
	if err := handler.profileService.Unfollow(request.Context(), user, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Followers lists who follows the given user.

GET /api/v1/users/{userID}/followers?page=&limit=

Response:
  - 200: []Card: Follower profiles with pagination metadata
*/
func (handler *Handler) followers(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")
	params := pagination.FromRequest(request)

	cards, meta, err := handler.profileService.Followers(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, meta)
}

/*
Following lists who the given user follows.

GET /api/v1/users/{userID}/following?page=&limit=

Response:
  - 200: []Card: Followed profiles with pagination metadata
*/
func (handler *Handler) following(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")
	params := pagination.FromRequest(request)

	cards, meta, err := handler.profileService.Following(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, meta)
}
