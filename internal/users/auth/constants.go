// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package auth

// # Validation Bounds

// Account field limits enforced at sign-up and on every later mutation.
const (
	NicknameMinLen = 3
	NicknameMaxLen = 30

	PasswordMinLen = 8
	PasswordMaxLen = 16

	NameMaxLen = 50
	BioMaxLen  = 40
)

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldName            = "name"
	FieldNickname        = "nickname"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirm"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

// PasswordMismatchMessage is the confirm-field failure shown whenever
// password and password_confirm differ.
const PasswordMismatchMessage = "Passwords are not the same"
