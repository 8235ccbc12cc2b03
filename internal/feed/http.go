// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package feed

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minhle/reelo/internal/platform/constants"
	"github.com/minhle/reelo/internal/platform/respond"
	"github.com/minhle/reelo/internal/users/auth"
	"github.com/minhle/reelo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements discovery feed HTTP endpoints.
type Handler struct {
	feedService  *Service
	authService  *auth.Service
	secureCookie bool
}

// NewHandler constructs a new [Handler]. The auth service powers the route guards.
func NewHandler(service *Service, authService *auth.Service, secureCookie bool) *Handler {
	return &Handler{
		feedService:  service,
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Routes returns a [chi.Router] with all feed routes attached.
//
// # Endpoints
//   - GET /           : The randomized for-you feed (?new=true resamples).
//   - GET /explore    : Videos carrying a tag (?tag=).
//   - GET /following  : Videos from followed accounts (protected).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(auth.Optional(handler.authService))
		r.Get("/", handler.forYou)
		r.Get("/explore", handler.explore)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.Protect(handler.authService))
		r.Get("/following", handler.following)
	})

	return router
}

/*
ForYou returns one page of the randomized feed.

GET /api/v1/feed?page=&new=

Description: The browsing session rides on the feed_session cookie. A missing
or expired session, or ?new=true, draws a fresh random sample. Paging past the
sample returns an exhaustion message instead of videos.

Response:
  - 200: []video.Video: The page, or a message once the sample is exhausted
*/
func (handler *Handler) forYou(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request).Page
	refresh := request.URL.Query().Get("new") == "true"

	sessionID := ""
	if cookie, err := request.Cookie(constants.FeedSessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	videos, sessionID, exhausted, err := handler.feedService.ForYou(request.Context(), viewerID(request), sessionID, refresh, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, sessionID)

	if exhausted {
		respond.Message(writer, ExhaustedMessage)
		return
	}

	respond.OK(writer, videos)
}

/*
Following returns one page of videos from followed accounts, newest first.

GET /api/v1/feed/following?page=

Response:
  - 200: []video.Video: The page, or a message once the feed is exhausted
*/
func (handler *Handler) following(writer http.ResponseWriter, request *http.Request) {
	user, err := auth.RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request).Page

	videos, exhausted, err := handler.feedService.Following(request.Context(), user.ID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if exhausted {
		respond.Message(writer, ExhaustedMessage)
		return
	}

	respond.OK(writer, videos)
}

/*
Explore returns videos carrying a tag, newest first.

GET /api/v1/feed/explore?tag=&page=&limit=

Response:
  - 200: []video.Video: Page of videos with pagination metadata
  - 400: ErrValidation: Unknown tag
*/
func (handler *Handler) explore(writer http.ResponseWriter, request *http.Request) {
	tag := request.URL.Query().Get("tag")
	params := pagination.FromRequest(request)

	videos, meta, err := handler.feedService.Explore(request.Context(), tag, viewerID(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, meta)
}

// setSessionCookie re-issues the browsing-session cookie, extending its
// lifetime to match the cached sample's TTL.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, sessionID string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.FeedSessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(constants.FeedSessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   handler.secureCookie,
	})
}

// viewerID returns the acting user's id, or "" for anonymous requests.
func viewerID(request *http.Request) string {
	if viewer := auth.UserFrom(request.Context()); viewer != nil {
		return viewer.ID
	}
	return ""
}
