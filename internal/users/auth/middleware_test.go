// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhle/reelo/internal/platform/constants"
	"github.com/minhle/reelo/internal/users/auth"
)

// echoUserHandler writes the authenticated user's id, or "anonymous".
func echoUserHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if user := auth.UserFrom(request.Context()); user != nil {
			_, _ = writer.Write([]byte(user.ID))
			return
		}
		_, _ = writer.Write([]byte("anonymous"))
	})
}

/*
TestProtect_BearerHeader verifies the happy path via the Authorization header.
*/
func TestProtect_BearerHeader(t *testing.T) {
	service, _, _ := newTestService(t)
	session := signUpFixture(t, service)

	handler := auth.Protect(service)(echoUserHandler())

	request := httptest.NewRequest("GET", "/me", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer "+session.Token)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, session.User.ID, recorder.Body.String())
}

/*
TestProtect_Cookie verifies the browser fallback via the session cookie.
*/
func TestProtect_Cookie(t *testing.T) {
	service, _, _ := newTestService(t)
	session := signUpFixture(t, service)

	handler := auth.Protect(service)(echoUserHandler())

	request := httptest.NewRequest("GET", "/me", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: session.Token})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, session.User.ID, recorder.Body.String())
}

/*
TestProtect_Rejections verifies 401 responses for every unauthenticated shape.
*/
func TestProtect_Rejections(t *testing.T) {
	service, _, _ := newTestService(t)
	signUpFixture(t, service)

	handler := auth.Protect(service)(echoUserHandler())

	tests := []struct {
		name    string
		prepare func(*http.Request)
	}{
		{"no_credentials", func(*http.Request) {}},
		{"garbage_bearer", func(r *http.Request) {
			r.Header.Set(constants.HeaderAuthorization, "Bearer not-a-token")
		}},
		{"logged_out_cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: constants.LoggedOutCookieValue})
		}},
		{"empty_cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: ""})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/me", nil)
			tt.prepare(request)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

/*
TestProtect_MissingTokenMessage pins the exact 401 body for bare requests.
*/
func TestProtect_MissingTokenMessage(t *testing.T) {
	service, _, _ := newTestService(t)

	handler := auth.Protect(service)(echoUserHandler())

	request := httptest.NewRequest("GET", "/me", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "You are not logged in! Please log in to get access.")
}

/*
TestOptional verifies anonymous pass-through and viewer enrichment.
*/
func TestOptional(t *testing.T) {
	service, _, _ := newTestService(t)
	session := signUpFixture(t, service)

	handler := auth.Optional(service)(echoUserHandler())

	t.Run("anonymous", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/videos/abc", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", recorder.Body.String())
	})

	t.Run("authenticated", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/videos/abc", nil)
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+session.Token)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, session.User.ID, recorder.Body.String())
	})

	t.Run("broken_token_is_anonymous", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/videos/abc", nil)
		request.Header.Set(constants.HeaderAuthorization, "Bearer not-a-token")
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "anonymous", recorder.Body.String())
	})
}
