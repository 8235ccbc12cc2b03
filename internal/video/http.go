// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package video

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minhle/reelo/internal/platform/request"
	"github.com/minhle/reelo/internal/platform/respond"
	"github.com/minhle/reelo/internal/platform/validate"
	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements video catalog HTTP endpoints.
type Handler struct {
	videoService *Service
	authService  *auth.Service
}

// NewHandler constructs a new [Handler]. The auth service powers the route guards.
func NewHandler(service *Service, authService *auth.Service) *Handler {
	return &Handler{
		videoService: service,
		authService:  authService,
	}
}

// Routes returns a [chi.Router] configured with video routes.
//
// # Endpoints
//   - POST   /                          : Publish a video (protected).
//   - GET    /{videoID}                 : Player page payload.
//   - PATCH  /{videoID}/view            : Register a playback.
//   - POST   /{videoID}/like            : Like (protected).
//   - DELETE /{videoID}/like            : Unlike (protected).
//   - POST   /{videoID}/favorite        : Bookmark (protected).
//   - DELETE /{videoID}/favorite        : Remove bookmark (protected).
//   - GET    /user/{userID}             : A user's published videos.
//   - GET    /user/{userID}/liked       : Videos a user liked.
//   - GET    /user/{userID}/favorites   : Videos a user bookmarked.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints (viewer-aware where it matters)
	router.With(auth.Optional(handler.authService)).Get("/{videoID}", handler.get)
	router.Patch("/{videoID}/view", handler.registerView)
	router.With(auth.Optional(handler.authService)).Get("/user/{userID}", handler.byOwner)
	router.With(auth.Optional(handler.authService)).Get("/user/{userID}/liked", handler.liked)
	router.With(auth.Optional(handler.authService)).Get("/user/{userID}/favorites", handler.favorited)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(auth.Protect(handler.authService))
		r.Post("/", handler.create)
		r.Post("/{videoID}/like", handler.like)
		r.Delete("/{videoID}/like", handler.unlike)
		r.Post("/{videoID}/favorite", handler.favorite)
		r.Delete("/{videoID}/favorite", handler.unfavorite)
	})

	return router
}

// # Request Payloads

type createVideoRequest struct {
	Description  string   `json:"description"`
	VideoURL     string   `json:"video_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	Tags         []string `json:"tags"`
}

/*
Create publishes a new video.

POST /api/v1/videos

Request:
  - Body: createVideoRequest (Description, VideoURL, ThumbnailURL, Tags)

Response:
  - 201: Video: The published entity
  - 400: ErrInvalidJSON: Validation failure or unknown tag
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createVideoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldDescription, input.Description).
		MaxLen(FieldDescription, input.Description, DescriptionMaxLen).
		Required(FieldVideoURL, input.VideoURL).
		Required(FieldThumbnailURL, input.ThumbnailURL)

	for _, tag := range input.Tags {
		validator.Custom(FieldTags, !IsValidTag(tag), "Unknown tag: "+tag)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.videoService.Create(request.Context(), user, CreateInput{
		Description:  input.Description,
		VideoURL:     input.VideoURL,
		ThumbnailURL: input.ThumbnailURL,
		Tags:         input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

/*
Get returns a single video for the player page.

GET /api/v1/videos/{videoID}

Response:
  - 200: Video: Hydrated entity with owner card and viewer flags
  - 404: ErrNotFound: Unknown video
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, "videoID")

	video, err := handler.videoService.Get(request.Context(), videoID, viewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

/*
RegisterView bumps a video's play counter.

PATCH /api/v1/videos/{videoID}/view

Response:
  - 200: Message: The view has been counted
  - 404: ErrNotFound: Unknown video
*/
func (handler *Handler) registerView(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, "videoID")

	if err := handler.videoService.RegisterView(request.Context(), videoID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "The view has been increased")
}

/*
ByOwner lists a user's published videos.

GET /api/v1/videos/user/{userID}?page=&limit=

Response:
  - 200: []Video: Newest first, with pagination metadata
*/
func (handler *Handler) byOwner(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")
	params := pagination.FromRequest(request)

	videos, meta, err := handler.videoService.ByOwner(request.Context(), userID, viewerID(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, meta)
}

/*
Liked lists the videos a user has liked.

GET /api/v1/videos/user/{userID}/liked?page=&limit=

Response:
  - 200: []Video: Most recent like first, with pagination metadata
*/
func (handler *Handler) liked(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")
	params := pagination.FromRequest(request)

	videos, meta, err := handler.videoService.Liked(request.Context(), userID, viewerID(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, meta)
}

/*
Favorited lists the videos a user has bookmarked.

GET /api/v1/videos/user/{userID}/favorites?page=&limit=

Response:
  - 200: []Video: Most recent bookmark first, with pagination metadata
*/
func (handler *Handler) favorited(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")
	params := pagination.FromRequest(request)

	videos, meta, err := handler.videoService.Favorited(request.Context(), userID, viewerID(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, meta)
}

/*
Like records the acting user liking a video.

POST /api/v1/videos/{videoID}/like

Response:
  - 204: No Content: Like recorded (idempotent)
  - 404: ErrNotFound: Unknown video
*/
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	handler.engagement(writer, request, handler.videoService.Like)
}

/*
Unlike removes the acting user's like.

DELETE /api/v1/videos/{videoID}/like

Response:
  - 204: No Content: Like removed (idempotent)
*/
func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	handler.engagement(writer, request, handler.videoService.Unlike)
}

/*
Favorite bookmarks a video for the acting user.

POST /api/v1/videos/{videoID}/favorite

Response:
  - 204: No Content: Bookmark recorded (idempotent)
  - 404: ErrNotFound: Unknown video
*/
func (handler *Handler) favorite(writer http.ResponseWriter, request *http.Request) {
	handler.engagement(writer, request, handler.videoService.Favorite)
}

/*
Unfavorite removes the acting user's bookmark.

DELETE /api/v1/videos/{videoID}/favorite

Response:
  - 204: No Content: Bookmark removed (idempotent)
*/
func (handler *Handler) unfavorite(writer http.ResponseWriter, request *http.Request) {
	handler.engagement(writer, request, handler.videoService.Unfavorite)
}

// engagement is the shared shape of the four like/favorite toggles.
func (handler *Handler) engagement(
	writer http.ResponseWriter,
	request *http.Request,
	operation func(ctx context.Context, actor *auth.User, videoID string) error,
) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoID")
	if err := operation(request.Context(), user, videoID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// viewerID extracts the optional authenticated viewer's id.
func viewerID(request *http.Request) string {
	if viewer := auth.UserFrom(request.Context()); viewer != nil {
		return viewer.ID
	}
	return ""
}
