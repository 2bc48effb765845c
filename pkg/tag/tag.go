// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

// Package tag normalizes hashtag text for case-insensitive matching.
//
// # Usage
//
// Hashtags are displayed exactly as the author typed them ("#GoLang"), but
// lookups and indexing must treat "#golang", "#GoLang" and "#GOLANG" as the
// same tag. Fold produces the canonical key used for that comparison.
package tag

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts hashtag text into its canonical lookup key.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
//
// Display text is never folded; only index keys are.
func Fold(s string) string {
	// 1. Normalize and strip accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	return strings.ToLower(result)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
