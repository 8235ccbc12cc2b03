// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth

import (
	"net/http"
	"strings"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/platform/constants"
	"github.com/minhle/reelo/internal/platform/respond"
)

// # Route Guards

// Protect rejects requests that do not carry a valid session token and
// attaches the resolved user to the request context.
//
// # Token Sources
//
// The Authorization header ("Bearer <token>") takes precedence; the "jwt"
// cookie is the fallback for browser clients. Requests with neither are
// rejected with 401 before any verification work happens.
func Protect(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			token := extractToken(request)
			if token == "" {
				respond.Error(writer, request, apperr.Unauthorized("You are not logged in! Please log in to get access."))
				return
			}

			user, err := service.Authenticate(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request.WithContext(WithUser(request.Context(), user)))
		})
	}
}

// Optional attaches the user to the context when a valid session token is
// present, and lets the request through anonymously otherwise.
//
// Public endpoints whose response is enriched for logged-in viewers (e.g.
// the is_followed flag on profiles) use this instead of [Protect].
func Optional(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			token := extractToken(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			user, err := service.Authenticate(request.Context(), token)
			if err != nil {
				// A broken token on a public endpoint is treated as anonymous.
				next.ServeHTTP(writer, request)
				return
			}

			next.ServeHTTP(writer, request.WithContext(WithUser(request.Context(), user)))
		})
	}
}

// extractToken pulls the session token from the request, header first.
func extractToken(request *http.Request) string {
	header := request.Header.Get(constants.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" || cookie.Value == constants.LoggedOutCookieValue {
		return ""
	}

	return cookie.Value
}
