// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhle/reelo/internal/platform/apperr"
	"github.com/minhle/reelo/internal/platform/sec"
	"github.com/minhle/reelo/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByNickname(_ context.Context, nickname string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Nickname == nickname {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range repo.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
		if existing.Nickname == user.Nickname {
			return apperr.Conflict("Nickname is already taken")
		}
	}
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string, changedAt time.Time) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	user.PasswordChangedAt = &changedAt
	user.ResetTokenHash = nil
	user.ResetExpiresAt = nil
	return nil
}

func (repo *fakeUserRepository) SetResetToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.ResetTokenHash = &tokenHash
	user.ResetExpiresAt = &expiresAt
	return nil
}

func (repo *fakeUserRepository) ClearResetToken(_ context.Context, userID string) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.ResetTokenHash = nil
	user.ResetExpiresAt = nil
	return nil
}

func (repo *fakeUserRepository) ConsumeResetToken(_ context.Context, tokenHash, newHash string, changedAt time.Time) (*auth.User, error) {
	for _, user := range repo.users {
		if user.ResetTokenHash == nil || *user.ResetTokenHash != tokenHash {
			continue
		}
		if user.ResetExpiresAt == nil || user.ResetExpiresAt.Before(time.Now()) {
			continue
		}
		user.PasswordHash = newHash
		user.PasswordChangedAt = &changedAt
		user.ResetTokenHash = nil
		user.ResetExpiresAt = nil
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

// fakeNotifier records outbound email and can simulate delivery failures.
type fakeNotifier struct {
	welcomeErr error
	resetErr   error

	welcomes    []string
	resetTokens []string
}

func (notifier *fakeNotifier) SendWelcome(_ context.Context, to, _, _ string) error {
	if notifier.welcomeErr != nil {
		return notifier.welcomeErr
	}
	notifier.welcomes = append(notifier.welcomes, to)
	return nil
}

func (notifier *fakeNotifier) SendPasswordReset(_ context.Context, _, _, resetToken string) error {
	if notifier.resetErr != nil {
		return notifier.resetErr
	}
	notifier.resetTokens = append(notifier.resetTokens, resetToken)
	return nil
}

// newTestService wires a service against in-memory storage and real tokens.
func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository, *fakeNotifier) {
	t.Helper()

	repo := newFakeUserRepository()
	notifier := &fakeNotifier{}
	tokens := sec.NewTokenService("test-secret", "reelo.dev", time.Hour)

	return auth.NewService(repo, tokens, notifier, "http://localhost:3000"), repo, notifier
}

func signUpFixture(t *testing.T, service *auth.Service) *auth.AuthenticatedUser {
	t.Helper()

	session, err := service.SignUp(context.Background(), auth.SignUpInput{
		Name:     "Minh Le",
		Nickname: "minh.le",
		Email:    "minh@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	return session
}

// # Registration

/*
TestSignUp_Success verifies enrollment, hashing, and the welcome email.
*/
func TestSignUp_Success(t *testing.T) {
	service, repo, notifier := newTestService(t)

	session := signUpFixture(t, service)

	require.NotNil(t, session.User)
	assert.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.User.ID)

	// The password must be stored hashed, never plain.
	stored := repo.users[session.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "pass1234", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("pass1234", stored.PasswordHash))

	assert.Equal(t, []string{"minh@example.com"}, notifier.welcomes)
}

/*
TestSignUp_DuplicateIdentity verifies field-specific conflicts.
*/
func TestSignUp_DuplicateIdentity(t *testing.T) {
	service, _, _ := newTestService(t)
	signUpFixture(t, service)

	_, err := service.SignUp(context.Background(), auth.SignUpInput{
		Name:     "Other",
		Nickname: "other",
		Email:    "minh@example.com",
		Password: "pass1234",
	})
	require.Error(t, err)
	assert.Equal(t, "Email is already registered", err.Error())

	_, err = service.SignUp(context.Background(), auth.SignUpInput{
		Name:     "Other",
		Nickname: "minh.le",
		Email:    "other@example.com",
		Password: "pass1234",
	})
	require.Error(t, err)
	assert.Equal(t, "Nickname is already taken", err.Error())
}

/*
TestSignUp_WelcomeFailureIsNotFatal verifies that a broken mailer never
blocks enrollment.
*/
func TestSignUp_WelcomeFailureIsNotFatal(t *testing.T) {
	service, repo, notifier := newTestService(t)
	notifier.welcomeErr = errors.New("smtp down")

	session := signUpFixture(t, service)

	assert.NotEmpty(t, session.Token)
	assert.Len(t, repo.users, 1)
}

// # Login

/*
TestLogin verifies credential checking and the anti-enumeration behavior:
unknown email and wrong password surface the exact same message.
*/
func TestLogin(t *testing.T) {
	service, _, _ := newTestService(t)
	signUpFixture(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "minh@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	_, wrongPassword := service.Login(context.Background(), auth.LoginInput{
		Email:    "minh@example.com",
		Password: "wrong-password",
	})
	_, unknownEmail := service.Login(context.Background(), auth.LoginInput{
		Email:    "ghost@example.com",
		Password: "pass1234",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, "Incorrect email or password", wrongPassword.Error())
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

/*
TestEmailCaseInsensitivity verifies that email identity ignores case: the
address is stored canonically, any casing logs into the same account, and a
re-registration differing only in case is a duplicate.

The fake repository matches emails exactly, so this passes only when the
service normalizes on both write and lookup.
*/
func TestEmailCaseInsensitivity(t *testing.T) {
	service, repo, _ := newTestService(t)

	session, err := service.SignUp(context.Background(), auth.SignUpInput{
		Name:     "Minh Le",
		Nickname: "minh.le",
		Email:    "Minh@Example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)

	// Stored lowercased.
	assert.Equal(t, "minh@example.com", repo.users[session.User.ID].Email)

	// Any casing resolves to the same account.
	for _, email := range []string{"minh@example.com", "MINH@EXAMPLE.COM", "Minh@Example.com"} {
		logged, err := service.Login(context.Background(), auth.LoginInput{
			Email:    email,
			Password: "pass1234",
		})
		require.NoError(t, err, email)
		assert.Equal(t, session.User.ID, logged.User.ID)
	}

	// A second account differing only in case is a duplicate.
	_, err = service.SignUp(context.Background(), auth.SignUpInput{
		Name:     "Other",
		Nickname: "other",
		Email:    "MINH@example.COM",
		Password: "pass1234",
	})
	require.Error(t, err)
	assert.Equal(t, "Email is already registered", err.Error())

	// Recovery reaches the account regardless of casing.
	require.NoError(t, service.ForgotPassword(context.Background(), "Minh@Example.COM"))
}

// # Token Authentication

/*
TestAuthenticate_Success resolves a fresh token back to its account.
*/
func TestAuthenticate_Success(t *testing.T) {
	service, _, _ := newTestService(t)
	session := signUpFixture(t, service)

	user, err := service.Authenticate(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
}

/*
TestAuthenticate_InvalidToken verifies the rejection message for garbage.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Authenticate(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, "Invalid token. Please log in again.", err.Error())
}

/*
TestAuthenticate_DeletedAccount verifies that tokens outlive their account
gracefully.
*/
func TestAuthenticate_DeletedAccount(t *testing.T) {
	service, repo, _ := newTestService(t)
	session := signUpFixture(t, service)

	delete(repo.users, session.User.ID)

	_, err := service.Authenticate(context.Background(), session.Token)
	require.Error(t, err)
	assert.Equal(t, "The user belonging to this token does no longer exist.", err.Error())
}

/*
TestAuthenticate_AfterPasswordChange verifies the core invalidation rule:
a password change kills every previously issued token, while the session
returned by the change itself stays valid.
*/
func TestAuthenticate_AfterPasswordChange(t *testing.T) {
	service, _, _ := newTestService(t)
	oldSession := signUpFixture(t, service)

	// The JWT "iat" claim has second precision and the change instant is
	// backdated by one second, so the rotation must happen a full two
	// seconds later to compare strictly after the old token's iat.
	time.Sleep(2100 * time.Millisecond)

	newSession, err := service.ChangePassword(context.Background(), oldSession.User, "pass1234", "newpass5678")
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), oldSession.Token)
	require.Error(t, err)
	assert.Equal(t, "User recently changed password! Please log in again.", err.Error())

	// The freshly issued token postdates the (backdated) change instant.
	user, err := service.Authenticate(context.Background(), newSession.Token)
	require.NoError(t, err)
	assert.Equal(t, oldSession.User.ID, user.ID)
}

// # Password Recovery

/*
TestForgotPassword_UnknownEmail verifies the explicit not-found message.
*/
func TestForgotPassword_UnknownEmail(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.ForgotPassword(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, "There is no user with that email address", err.Error())
}

/*
TestForgotPassword_Success verifies that only the digest is persisted and
that the email carries the plain secret.
*/
func TestForgotPassword_Success(t *testing.T) {
	service, repo, notifier := newTestService(t)
	session := signUpFixture(t, service)

	require.NoError(t, service.ForgotPassword(context.Background(), "minh@example.com"))

	stored := repo.users[session.User.ID]
	require.NotNil(t, stored.ResetTokenHash)
	require.NotNil(t, stored.ResetExpiresAt)

	require.Len(t, notifier.resetTokens, 1)
	plain := notifier.resetTokens[0]

	// Persisted digest must match the emailed secret, never equal it.
	assert.Equal(t, sec.HashToken(plain), *stored.ResetTokenHash)
	assert.NotEqual(t, plain, *stored.ResetTokenHash)
}

/*
TestForgotPassword_DeliveryFailureRollsBack verifies that an undeliverable
secret never stays redeemable.
*/
func TestForgotPassword_DeliveryFailureRollsBack(t *testing.T) {
	service, repo, notifier := newTestService(t)
	session := signUpFixture(t, service)
	notifier.resetErr = errors.New("smtp down")

	err := service.ForgotPassword(context.Background(), "minh@example.com")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "DELIVERY_ERROR", ae.Code)

	stored := repo.users[session.User.ID]
	assert.Nil(t, stored.ResetTokenHash)
	assert.Nil(t, stored.ResetExpiresAt)
}

/*
TestResetPassword_Success walks the full recovery flow and verifies the
secret is single-use.
*/
func TestResetPassword_Success(t *testing.T) {
	service, _, notifier := newTestService(t)
	signUpFixture(t, service)

	require.NoError(t, service.ForgotPassword(context.Background(), "minh@example.com"))
	plain := notifier.resetTokens[0]

	session, err := service.ResetPassword(context.Background(), plain, "recovered99")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	// Old credentials are dead, new ones work.
	_, err = service.Login(context.Background(), auth.LoginInput{Email: "minh@example.com", Password: "pass1234"})
	assert.Error(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{Email: "minh@example.com", Password: "recovered99"})
	assert.NoError(t, err)

	// Redeeming the same secret twice must fail.
	_, err = service.ResetPassword(context.Background(), plain, "again12345")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", ae.Code)
}

/*
TestResetPassword_UnknownToken verifies that unknown secrets are rejected
with the generic invalid-or-expired error.
*/
func TestResetPassword_UnknownToken(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.ResetPassword(context.Background(), "deadbeef", "newpass123")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", ae.Code)
}

/*
TestResetPassword_ExpiredToken verifies that a stale secret is not redeemable.
*/
func TestResetPassword_ExpiredToken(t *testing.T) {
	service, repo, notifier := newTestService(t)
	session := signUpFixture(t, service)

	require.NoError(t, service.ForgotPassword(context.Background(), "minh@example.com"))
	plain := notifier.resetTokens[0]

	// Force the pending secret past its expiry.
	expired := time.Now().Add(-time.Minute)
	repo.users[session.User.ID].ResetExpiresAt = &expired

	_, err := service.ResetPassword(context.Background(), plain, "newpass123")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_OR_EXPIRED_TOKEN", ae.Code)
}

// # Password Change

/*
TestChangePassword_WrongCurrent verifies the current-password gate.
*/
func TestChangePassword_WrongCurrent(t *testing.T) {
	service, _, _ := newTestService(t)
	session := signUpFixture(t, service)

	_, err := service.ChangePassword(context.Background(), session.User, "wrong-password", "newpass5678")
	require.Error(t, err)
	assert.Equal(t, "Your current password is incorrect", err.Error())
}

/*
TestChangePassword_Success verifies rotation plus the fresh session.
*/
func TestChangePassword_Success(t *testing.T) {
	service, repo, _ := newTestService(t)
	session := signUpFixture(t, service)

	rotated, err := service.ChangePassword(context.Background(), session.User, "pass1234", "newpass5678")
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.Token)

	stored := repo.users[session.User.ID]
	assert.True(t, sec.CheckPasswordHash("newpass5678", stored.PasswordHash))
	require.NotNil(t, stored.PasswordChangedAt)

	// The change instant is backdated so the fresh token survives the
	// password-change check.
	assert.True(t, stored.PasswordChangedAt.Before(time.Now()))
}
