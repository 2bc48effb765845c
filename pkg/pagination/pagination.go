// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

// Package pagination provides shared types for page-based feed navigation.
//
// # Overview
//
// It standardizes how a page of posts is requested from a post service and
// how the service reports pagination progress back to the feed controller.
package pagination

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent abusive requests.
	MaxLimit = 100
	// FirstPage is the initial page cursor (1-indexed).
	FirstPage = 1
)

// Params holds the page cursor and page size for a single fetch.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the zero-based item offset derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Clamp normalizes out-of-range values to safe defaults.
//
// # Clamping
//
// A non-positive page becomes [FirstPage]; a non-positive or excessive limit
// becomes [DefaultLimit].
func Clamp(page, limit int) Params {
	if page < 1 {
		page = FirstPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}
