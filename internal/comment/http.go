// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package comment

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

// Handler implements comment thread HTTP endpoints.
type Handler struct {
	commentService *Service
	authService    *auth.Service
}

// NewHandler constructs a new [Handler]. The auth service powers the route guards.
func NewHandler(service *Service, authService *auth.Service) *Handler {
	return &Handler{
		commentService: service,
		authService:    authService,
	}
}

// Routes returns a [chi.Router] with comment routes. It is mounted under
// /videos/{videoID}/comments, so the video id arrives as a URL parameter.
//
// # Endpoints
//   - GET    /             : The video's thread, newest first.
//   - POST   /             : Append a comment (protected).
//   - DELETE /{commentID}  : Delete own comment (protected).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(auth.Protect(handler.authService))
		r.Post("/", handler.create)
		r.Delete("/{commentID}", handler.delete)
	})

	return router
}

// # Request Payloads

type createCommentRequest struct {
	Content string `json:"content"`
}

/*
Create appends a comment to the video's thread.

POST /api/v1/videos/{videoID}/comments

Request:
  - Body: createCommentRequest (Content)

Response:
  - 201: Comment: Created comment with its author card
  - 404: ErrNotFound: Unknown video
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, ContentMaxLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoID")
	comment, err := handler.commentService.Create(request.Context(), user, videoID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
List returns the video's thread.

GET /api/v1/videos/{videoID}/comments?page=&limit=

Response:
  - 200: []Comment: Newest first, with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, "videoID")
	params := pagination.FromRequest(request)

	comments, meta, err := handler.commentService.ListByVideo(request.Context(), videoID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, meta)
}

/*
Delete removes the acting user's own comment.

DELETE /api/v1/videos/{videoID}/comments/{commentID}

Response:
  - 204: No Content: Comment removed
  - 403: ErrForbidden: Not the comment's author
  - 404: ErrNotFound: Unknown comment
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, "commentID")
	if err := handler.commentService.Delete(request.Context(), user, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
