// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

/*
Package pointer provides small generic helpers for optional values.

Partial-update inputs across the codebase (profile edits, draft patches) model
"field not provided" as a nil pointer. These helpers remove the boilerplate of
taking the address of a literal and of nil-safe dereferencing.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Safely dereferences a pointer, returning the zero value if nil.
*/
package pointer

// To returns a pointer to the provided value.
// Useful when populating optional fields from literals (e.g. pointer.To("bio")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
