// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/minhle/reelo/internal/platform/constants"
	requestutil "github.com/minhle/reelo/internal/platform/request"
	"github.com/minhle/reelo/internal/platform/respond"
	"github.com/minhle/reelo/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the account lifecycle entry points (sign-up, login,
// logout, password recovery and rotation). Profile reads and mutations live
// in the profile package.
type Handler struct {
	authService  *Service
	cookieTTL    time.Duration
	secureCookie bool
}

// NewHandler constructs a new [Handler] with its service dependency.
//
// cookieTTL is the lifetime of the "jwt" cookie; secureCookie disables the
// Secure attribute for plain-HTTP local development.
func NewHandler(service *Service, cookieTTL time.Duration, secureCookie bool) *Handler {
	return &Handler{
		authService:  service,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST  /signup                : Creates a new account and logs it in.
//   - POST  /login                 : Authenticates and returns a session token.
//   - POST  /logout                : Overwrites the session cookie.
//   - POST  /forgot-password       : Emails a password-reset secret.
//   - PATCH /reset-password/{token}: Redeems a reset secret.
//   - PATCH /change-password       : Rotates the password of the logged-in user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signUp)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Patch("/reset-password/{token}", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(Protect(handler.authService))
		r.Patch("/change-password", handler.changePassword)
	})

	return router
}

// # Request & Response Payloads

type signUpRequest struct {
	Name            string `json:"name"`
	Nickname        string `json:"nickname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type changePasswordRequest struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// sessionResponse is the payload for every endpoint that issues a token.
type sessionResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

/*
SignUp handles the creation of a new user account.

POST /api/v1/auth/signup

Description: Validates input, checks for identity conflicts, persists the
new profile, sends a welcome email, and logs the account in.

Request:
  - Body: signUpRequest (Name, Nickname, Email, Password, PasswordConfirm)

Response:
  - 201: sessionResponse: Session token and created profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Nickname or Email already exists
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLen).
		Required(FieldNickname, input.Nickname).
		LenBetween(FieldNickname, input.Nickname, NicknameMinLen, NicknameMaxLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		LenBetween(FieldPassword, input.Password, PasswordMinLen, PasswordMaxLen).
		Equal(FieldPasswordConfirm, input.Password, input.PasswordConfirm, PasswordMismatchMessage)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Name:     input.Name,
		Nickname: input.Nickname,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session.Token)
	respond.Created(writer, sessionResponse{Token: session.Token, User: session.User})
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, issues a signed session token, and
injects it as an httpOnly cookie for browser clients.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: sessionResponse: Session token and user profile
  - 401: ErrUnauthorized: Incorrect email or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session.Token)
	respond.OK(writer, sessionResponse{Token: session.Token, User: session.User})
}

/*
Logout ends the browser session.

POST /api/v1/auth/logout

Description: Overwrites the session cookie with a short-lived sentinel
value. The server keeps no session state, so nothing is revoked; clients
holding the raw token simply stop sending it.

Response:
  - 200: Message: Logged out
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    constants.LoggedOutCookieValue,
		Path:     "/",
		Expires:  time.Now().Add(constants.LoggedOutCookieTTL),
		Secure:   handler.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond.Message(writer, "Logged out successfully")
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/v1/auth/forgot-password

Description: Emails a single-use reset secret to the account owner. Unknown
addresses are reported as 404; this API deliberately favors a clear client
error over enumeration resistance, matching the mobile app's UX.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Message: Token sent to email
  - 404: ErrNotFound: No account with that email
  - 500: DELIVERY_ERROR: Email could not be sent (reset state rolled back)
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Token sent to email!")
}

/*
ResetPassword completes the password recovery flow.

PATCH /api/v1/auth/reset-password/{token}

Description: Redeems the emailed secret, replaces the password, and logs
the account straight in with a fresh session token.

Request:
  - Path: token (plain reset secret)
  - Body: resetPasswordRequest (Password, PasswordConfirm)

Response:
  - 200: sessionResponse: Fresh session for the recovered account
  - 400: INVALID_OR_EXPIRED_TOKEN: Unknown, consumed, or expired secret
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Param(request, "token")
	if token == "" {
		respond.Error(writer, request, validate.RequiredError(FieldToken, "This field is required"))
		return
	}

	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldPassword, input.Password).
		LenBetween(FieldPassword, input.Password, PasswordMinLen, PasswordMaxLen).
		Equal(FieldPasswordConfirm, input.Password, input.PasswordConfirm, PasswordMismatchMessage)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.ResetPassword(request.Context(), token, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session.Token)
	respond.OK(writer, sessionResponse{Token: session.Token, User: session.User})
}

/*
ChangePassword rotates the authenticated user's password.

PATCH /api/v1/auth/change-password

Description: Verifies the current password before applying the new one.
Every previously issued session token dies with the rotation; the response
carries a fresh token so this client stays logged in.

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword, NewPasswordConfirm)

Response:
  - 200: sessionResponse: Fresh session surviving the rotation
  - 401: ErrUnauthorized: Current password wrong or session invalid
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	user, err := RequireUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		LenBetween(FieldNewPassword, input.NewPassword, PasswordMinLen, PasswordMaxLen).
		Equal(FieldPasswordConfirm, input.NewPassword, input.NewPasswordConfirm, PasswordMismatchMessage)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.ChangePassword(request.Context(), user, input.CurrentPassword, input.NewPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session.Token)
	respond.OK(writer, sessionResponse{Token: session.Token, User: session.User})
}

// setSessionCookie injects the session token as an httpOnly cookie.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(handler.cookieTTL),
		Secure:   handler.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
