// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

/*
Package post defines the Post entity and its creation rules.

# Architecture

A Post is immutable once created, with two exceptions: its counters and the
viewer-relation booleans (IsLiked, IsBookmarked), which mutate only under the
interaction layer's rules. The author travels inside the post as a value
snapshot, never as a live reference to the session's user.
*/
package post

import (
	"time"

	"github.com/levutran/ripple/internal/platform/validate"
	"github.com/levutran/ripple/internal/users/session"
	"github.com/levutran/ripple/pkg/uuidv7"
)

// # Creation Constraints

const (
	// MinContentLength is the minimum post content length in runes.
	MinContentLength = 1

	// MaxContentLength is the maximum post content length in runes.
	MaxContentLength = 280

	// MaxImages bounds the number of image references per post.
	MaxImages = 4
)

// FieldContent is the validation field name for post content.
const FieldContent = "content"

// # Domain Entity

// Post represents a single feed entry.
type Post struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
	Videos  []string `json:"videos,omitempty"`

	// Author is a value snapshot taken at authoring time.
	Author session.User `json:"author"`

	// Counters are non-negative and mutate only through interaction rules.
	LikesCount    int `json:"likes_count"`
	CommentsCount int `json:"comments_count"`
	SharesCount   int `json:"shares_count"`

	// Viewer relation: these describe the CURRENT viewer, not the post itself.
	IsLiked      bool `json:"is_liked"`
	IsBookmarked bool `json:"is_bookmarked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Derived from Content at creation time; display casing preserved.
	Hashtags []string `json:"hashtags"`
	Mentions []string `json:"mentions"`
}

/*
New composes a brand-new post authored by the given user.

Description: Validates the content locally (an empty or over-length post never
reaches the post service), extracts hashtags and mentions, assigns a
time-sortable ID, and zeroes all counters.

Parameters:
  - author: session.User (value snapshot)
  - content: string (1–280 runes)
  - images: []string (at most MaxImages references)
  - videos: []string

Returns:
  - *Post: Ready to submit and to prepend optimistically
  - error: apperr.ValidationError for rejected content
*/
func New(author session.User, content string, images, videos []string) (*Post, error) {

	v := &validate.Validator{}
	err := v.
		Required(FieldContent, content).
		MinLen(FieldContent, content, MinContentLength).
		MaxLen(FieldContent, content, MaxContentLength).
		Custom("images", len(images) > MaxImages, "At most 4 images per post").
		Err()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Post{
		ID:        uuidv7.New(),
		Content:   content,
		Images:    images,
		Videos:    videos,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
		Hashtags:  ExtractHashtags(content),
		Mentions:  ExtractMentions(content),
	}, nil
}

// Clone returns a deep-enough copy: slices are duplicated so callers can
// never alias the original's backing arrays.
func (p *Post) Clone() *Post {
	copied := *p
	copied.Images = append([]string(nil), p.Images...)
	copied.Videos = append([]string(nil), p.Videos...)
	copied.Hashtags = append([]string(nil), p.Hashtags...)
	copied.Mentions = append([]string(nil), p.Mentions...)
	return &copied
}
