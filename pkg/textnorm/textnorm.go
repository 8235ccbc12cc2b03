// Copyright (c) 2026 Reelo. All rights reserved.
// Author: minh.le@reelo.dev

// Package textnorm folds arbitrary Unicode text into a plain ASCII-friendly
// form for case- and accent-insensitive matching.
//
// # Usage
//
// User search compares the folded form of the query against the folded form
// of display names and nicknames, so "Hàn Quốc" matches a search for
// "han quoc".
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases the input and strips combining accent marks.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase and trims surrounding whitespace.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		// Transformation never fails for valid UTF-8; fall back to the input.
		result = s
	}

	return strings.TrimSpace(strings.ToLower(result))
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
