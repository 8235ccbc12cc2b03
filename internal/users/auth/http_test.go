// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhle/reelo/internal/platform/constants"
	"github.com/minhle/reelo/internal/users/auth"
)

func newTestHandler(t *testing.T) (*auth.Handler, *auth.Service) {
	t.Helper()
	service, _, _ := newTestService(t)
	return auth.NewHandler(service, 24*time.Hour, false), service
}

func doJSON(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	return nil
}

/*
TestSignUpEndpoint verifies the created session, the httpOnly cookie, and
that the password hash never leaks into the response body.
*/
func TestSignUpEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := handler.Routes()

	recorder := doJSON(t, router, "POST", "/signup", `{
		"name": "Minh Le",
		"nickname": "minh.le",
		"email": "minh@example.com",
		"password": "pass1234",
		"password_confirm": "pass1234"
	}`)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var payload struct {
		Data struct {
			Token string          `json:"token"`
			User  json.RawMessage `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.Data.Token)

	// Credentials and reset state are json:"-" on the entity.
	assert.NotContains(t, recorder.Body.String(), "password")

	cookie := sessionCookie(t, recorder)
	require.NotNil(t, cookie)
	assert.Equal(t, payload.Data.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

/*
TestSignUpEndpoint_Validation verifies field rules and the verbatim
password-mismatch message.
*/
func TestSignUpEndpoint_Validation(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := handler.Routes()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			"password_mismatch",
			`{"name":"A","nickname":"abc","email":"a@b.co","password":"pass1234","password_confirm":"different1"}`,
			"Passwords are not the same",
		},
		{
			"password_too_short",
			`{"name":"A","nickname":"abc","email":"a@b.co","password":"short","password_confirm":"short"}`,
			"between 8 and 16",
		},
		{
			"nickname_too_short",
			`{"name":"A","nickname":"ab","email":"a@b.co","password":"pass1234","password_confirm":"pass1234"}`,
			"between 3 and 30",
		},
		{
			"bad_email",
			`{"name":"A","nickname":"abc","email":"nope","password":"pass1234","password_confirm":"pass1234"}`,
			"valid email",
		},
		{
			"malformed_json",
			`{"name":`,
			"Invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(t, router, "POST", "/signup", tt.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.expected)
		})
	}
}

/*
TestLoginEndpoint verifies credential outcomes over HTTP.
*/
func TestLoginEndpoint(t *testing.T) {
	handler, service := newTestHandler(t)
	router := handler.Routes()
	signUpFixture(t, service)

	good := doJSON(t, router, "POST", "/login", `{"email":"minh@example.com","password":"pass1234"}`)
	require.Equal(t, http.StatusOK, good.Code)
	require.NotNil(t, sessionCookie(t, good))

	bad := doJSON(t, router, "POST", "/login", `{"email":"minh@example.com","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
	assert.Contains(t, bad.Body.String(), "Incorrect email or password")
}

/*
TestLogoutEndpoint verifies the sentinel cookie overwrite.
*/
func TestLogoutEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := handler.Routes()

	recorder := doJSON(t, router, "POST", "/logout", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Logged out successfully")

	cookie := sessionCookie(t, recorder)
	require.NotNil(t, cookie)
	assert.Equal(t, constants.LoggedOutCookieValue, cookie.Value)

	// The sentinel dies quickly; it only exists to clobber the old token.
	assert.WithinDuration(t, time.Now().Add(constants.LoggedOutCookieTTL), cookie.Expires, 5*time.Second)
}

/*
TestResetPasswordEndpoint_BadToken verifies the generic 400 for unknown secrets.
*/
func TestResetPasswordEndpoint_BadToken(t *testing.T) {
	handler, _ := newTestHandler(t)
	router := handler.Routes()

	recorder := doJSON(t, router, "PATCH", "/reset-password/deadbeef", `{
		"password": "newpass123",
		"password_confirm": "newpass123"
	}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Token is invalid or has expired")
}

/*
TestChangePasswordEndpoint verifies the guard plus the rotation round trip.
*/
func TestChangePasswordEndpoint(t *testing.T) {
	handler, service := newTestHandler(t)
	router := handler.Routes()
	session := signUpFixture(t, service)

	// Unauthenticated requests never reach the handler.
	anonymous := doJSON(t, router, "PATCH", "/change-password", `{}`)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	request := httptest.NewRequest("PATCH", "/change-password", strings.NewReader(`{
		"current_password": "pass1234",
		"new_password": "newpass5678",
		"new_password_confirm": "newpass5678"
	}`))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(constants.HeaderAuthorization, "Bearer "+session.Token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, sessionCookie(t, recorder))

	// The new credentials are live immediately.
	login := doJSON(t, router, "POST", "/login", `{"email":"minh@example.com","password":"newpass5678"}`)
	assert.Equal(t, http.StatusOK, login.Code)
}
