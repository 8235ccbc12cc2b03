// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/minhle/reelo/internal/platform/config"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// The work factor is pinned to [config.BcryptCost] so every stored hash has
// the same strength regardless of deployment environment.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// bcrypt's comparison is constant-time; an unknown hash format and a wrong
// password are indistinguishable to the caller, both return false.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
