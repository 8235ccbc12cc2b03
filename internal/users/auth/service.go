// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/platform/ctxutil"
	"github.com/minhle/reelo/internal/platform/sec"
	"github.com/minhle/reelo/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for session-token issuance and verification.
type TokenProvider interface {
	// Issue creates a signed session token for the given user id.
	Issue(userID string) (string, error)

	// Verify checks a session token and returns its claims.
	Verify(token string) (*sec.SessionClaims, error)
}

// Notifier defines the contract for outbound account email.
type Notifier interface {
	// SendWelcome delivers the post-signup greeting.
	SendWelcome(context context.Context, to, name, homeURL string) error

	// SendPasswordReset delivers the plain reset secret to the account owner.
	SendPasswordReset(context context.Context, to, name, resetToken string) error
}

// Service implements the authentication and credential lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, token, or
// reset logic must be reviewed before merge.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	notifier       Notifier
	homeURL        string
}

// NewService constructs a new auth [Service] with its dependencies.
//
// homeURL is the public frontend origin linked from welcome emails.
func NewService(userRepo UserRepository, tokenProv TokenProvider, notifier Notifier, homeURL string) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		notifier:       notifier,
		homeURL:        homeURL,
	}
}

// # Registration Flow

// SignUpInput holds the data required to enroll a new member.
type SignUpInput struct {
	Name     string
	Nickname string
	Email    string
	Password string
}

// AuthenticatedUser pairs a user with a freshly issued session token.
type AuthenticatedUser struct {
	Token string
	User  *User
}

/*
SignUp validates, hashes, and persists a brand new user account.

Description: Enrolls a new member, hashing the password and issuing the
first session token. The welcome email is best-effort: a delivery failure
is logged but never blocks account creation.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *AuthenticatedUser: Created entity plus session token
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*AuthenticatedUser, error) {

	// Email identity is case-insensitive: store and compare the canonical form.
	email := normalizeEmail(input.Email)

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify nickname uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByNickname(context, input.Nickname)
	if err == nil {
		return nil, apperr.Conflict("Nickname is already taken")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Nickname:     input.Nickname,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	// Persist the user to the database. The repository maps unique-constraint
	// races to the same Conflict errors as the pre-checks above.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Best-effort welcome email
	if err := service.notifier.SendWelcome(context, user.Email, user.Name, service.homeURL); err != nil {
		ctxutil.GetLogger(context).Warn("welcome_email_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	return service.establishSession(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a session token.

Description: Looks up the account by email and performs a constant-time
password comparison. Unknown email and wrong password produce the same
generic 401 to prevent account probing through this endpoint.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthenticatedUser: Session token plus user profile
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthenticatedUser, error) {
	user, err := service.userRepository.FindByEmail(context, normalizeEmail(input.Email))

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}

	// Constant-time comparison in bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}

	return service.establishSession(user)
}

/*
Authenticate resolves a session token into a live user account.

Description: The core of the Protect middleware. Beyond signature and expiry
checks, it confirms the account still exists and that the password has not
been changed after the token was issued. This is what invalidates every
outstanding token on password change without a server-side revocation list.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *User: The authenticated account
  - err: Unauthorized with a cause-specific message
*/
func (service *Service) Authenticate(context context.Context, token string) (*User, error) {
	claims, err := service.tokenProvider.Verify(token)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return nil, apperr.Unauthorized("Your token has expired! Please log in again.")
		}
		return nil, apperr.Unauthorized("Invalid token. Please log in again.")
	}

	// The account behind the token may have been deleted since issuance.
	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("The user belonging to this token does no longer exist.")
	}

	// Tokens minted before the last password change are dead.
	if user.ChangedPasswordAfter(claims.IssuedAt) {
		return nil, apperr.Unauthorized("User recently changed password! Please log in again.")
	}

	return user, nil
}

// # Password Recovery

/*
ForgotPassword initiates the password recovery flow.

Description: Generates a high-entropy reset secret, persists only its hash
and expiry on the account, and emails the plain secret to the owner. If the
email cannot be delivered, the persisted reset state is rolled back so no
orphaned secret remains redeemable.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: NotFound for unknown email, Delivery on mail failure, or storage errors
*/
func (service *Service) ForgotPassword(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		return apperr.NotFoundMsg("There is no user with that email address")
	}

	resetToken, err := sec.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// Persist hash + expiry before sending: the email must never reference
	// a secret the database does not know about.
	if err := service.userRepository.SetResetToken(context, user.ID, resetToken.Hash, resetToken.ExpiresAt); err != nil {
		return fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	if err := service.notifier.SendPasswordReset(context, user.Email, user.Name, resetToken.Plain); err != nil {
		// Roll back: a secret the user never received must not stay live.
		if clearErr := service.userRepository.ClearResetToken(context, user.ID); clearErr != nil {
			ctxutil.GetLogger(context).Error("reset_token_rollback_failed",
				slog.String("user_id", user.ID),
				slog.Any("error", clearErr),
			)
		}
		return apperr.Delivery(err)
	}

	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Hashes the presented secret and redeems it in a single atomic
statement that also replaces the password. The change instant is backdated
by one second so the session token issued immediately afterwards is not
itself invalidated by the password-change check.

Parameters:
  - context: context.Context
  - token: string (plain reset secret from the email)
  - newPassword: string

Returns:
  - *AuthenticatedUser: Fresh session for the recovered account
  - err: InvalidOrExpiredToken or storage failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) (*AuthenticatedUser, error) {
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	changedAt := time.Now().Add(-1 * time.Second)

	user, err := service.userRepository.ConsumeResetToken(context, sec.HashToken(token), hashedPassword, changedAt)
	if err != nil {
		// Unknown, consumed, and expired secrets are indistinguishable to the caller.
		if apperr.IsAppError(err) {
			return nil, apperr.InvalidOrExpiredToken()
		}
		return nil, err
	}

	return service.establishSession(user)
}

/*
ChangePassword allows an authenticated user to rotate their credentials.

Description: Verifies the current password, stores the new hash, and records
a password-change instant that invalidates every previously issued session
token. A fresh token is issued so the current client stays logged in.

Parameters:
  - context: context.Context
  - user: *User (resolved by the Protect middleware)
  - currentPassword: string
  - newPassword: string

Returns:
  - *AuthenticatedUser: Fresh session surviving the rotation
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, user *User, currentPassword, newPassword string) (*AuthenticatedUser, error) {

	// Verify the current password before allowing change.
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return nil, apperr.Unauthorized("Your current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Backdated by one second: the token issued below carries an "iat" of
	// now, which must compare strictly after the change instant.
	changedAt := time.Now().Add(-1 * time.Second)

	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword, changedAt); err != nil {
		return nil, fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.PasswordChangedAt = &changedAt

	return service.establishSession(user)
}

// normalizeEmail folds an address to its canonical stored form. Every store
// write and lookup goes through this, so "Minh@Example.com" and
// "minh@example.com" name the same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// establishSession issues a session token for the user.
func (service *Service) establishSession(user *User) (*AuthenticatedUser, error) {
	token, err := service.tokenProvider.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthenticatedUser{Token: token, User: user}, nil
}
