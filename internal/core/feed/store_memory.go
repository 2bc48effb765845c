// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/levutran/ripple/internal/core/post"
	"github.com/levutran/ripple/internal/platform/apperr"
	"github.com/levutran/ripple/internal/users/session"
	"github.com/levutran/ripple/pkg/pagination"
	"github.com/levutran/ripple/pkg/slice"
	"github.com/levutran/ripple/pkg/tag"
)

// # In-Memory Post Backend

// MemoryTotalPages is how many feed pages the mock backend serves before
// signalling the end of the feed.
const MemoryTotalPages = 5

// MemoryPostService implements [PostService] entirely in process.
//
// It stands in for the remote post backend during development and tests. Feed
// pages are deterministic: page N always yields the same posts, built from a
// small set of seed templates, so pagination and staleness behavior can be
// asserted exactly.
type MemoryPostService struct {
	// Latency, when positive, delays every call; lets tests and demos
	// exercise in-flight overlap the way a real network would.
	Latency time.Duration

	mu sync.Mutex
	// materialized holds every post this backend has handed out, by id, so
	// interaction round-trips can find their target.
	materialized map[string]*post.Post
	templates    []*post.Post
}

// NewMemoryPostService creates the in-memory backend with seeded templates.
func NewMemoryPostService() *MemoryPostService {
	seededAt := time.Date(2024, time.January, 20, 14, 30, 0, 0, time.UTC)

	maya := session.User{
		ID:             "10",
		Username:       "maya-dev",
		Email:          "maya@example.com",
		DisplayName:    "Maya Lindqvist",
		Bio:            "Backend engineer, feeds and queues",
		Verified:       true,
		FollowersCount: 1250,
		FollowingCount: 340,
		PostsCount:     89,
		CreatedAt:      seededAt.AddDate(0, -6, 0),
		UpdatedAt:      seededAt.AddDate(0, -6, 0),
	}
	kenji := session.User{
		ID:             "11",
		Username:       "kenji",
		Email:          "kenji@example.com",
		DisplayName:    "Kenji Moreau",
		Bio:            "Photographs things, occasionally ships code",
		Verified:       false,
		FollowersCount: 890,
		FollowingCount: 420,
		PostsCount:     156,
		CreatedAt:      seededAt.AddDate(0, -8, 0),
		UpdatedAt:      seededAt.AddDate(0, -8, 0),
	}

	templates := []*post.Post{
		{
			ID:            "seed-1",
			Content:       "Shipped the new feed pagination today. The staleness handling was the fun part. #golang #concurrency #webdev",
			Author:        maya,
			LikesCount:    42,
			CommentsCount: 8,
			SharesCount:   3,
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
			Hashtags:      post.ExtractHashtags("Shipped the new feed pagination today. The staleness handling was the fun part. #golang #concurrency #webdev"),
		},
		{
			ID:            "seed-2",
			Content:       "Caught the sunrise over the bay this morning. Worth the alarm.",
			Images:        []string{"https://images.example.com/sunrise-bay.jpg"},
			Author:        kenji,
			LikesCount:    127,
			CommentsCount: 15,
			SharesCount:   8,
			IsLiked:       true,
			IsBookmarked:  true,
			CreatedAt:     seededAt.Add(4 * time.Hour),
			UpdatedAt:     seededAt.Add(4 * time.Hour),
		},
	}

	return &MemoryPostService{
		materialized: make(map[string]*post.Post),
		templates:    templates,
	}
}

// simulate applies the configured latency, honoring cancellation.
func (service *MemoryPostService) simulate(context context.Context) error {
	if service.Latency <= 0 {
		return nil
	}

	timer := time.NewTimer(service.Latency)
	defer timer.Stop()

	select {
	case <-context.Done():
		return apperr.Unavailable("request cancelled", context.Err())
	case <-timer.C:
		return nil
	}
}

// pageLocked materializes page pageNum deterministically from the templates.
// Callers must hold service.mu.
func (service *MemoryPostService) pageLocked(pageNum, limit int) []*post.Post {
	posts := make([]*post.Post, 0, limit)
	for i := 0; i < limit; i++ {
		id := fmt.Sprintf("%d-%d", pageNum, i)

		if existing, ok := service.materialized[id]; ok {
			posts = append(posts, existing)
			continue
		}

		template := service.templates[i%len(service.templates)]
		generated := template.Clone()
		generated.ID = id
		generated.Content = fmt.Sprintf("%s (Post #%d)", template.Content, (pageNum-1)*limit+i+1)
		service.materialized[id] = generated
		posts = append(posts, generated)
	}

	return posts
}

/*
FetchFeed returns one deterministic page of the mock feed.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - *Page: The materialized page; HasMore is false from page 5 onward
  - error: Cancellation only
*/
func (service *MemoryPostService) FetchFeed(context context.Context, params pagination.Params) (*Page, error) {
	if err := service.simulate(context); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	posts := service.pageLocked(params.Page, params.Limit)
	return &Page{
		Posts:    slice.Map(posts, func(p *post.Post) *post.Post { return p.Clone() }),
		NextPage: params.Page + 1,
		HasMore:  params.Page < MemoryTotalPages,
	}, nil
}

/*
FetchHashtag returns posts carrying the given hashtag, matched case-insensitively.

Description: Materializes the whole mock feed, filters by the folded tag key,
and slices the requested page out of the result.

Parameters:
  - context: context.Context
  - hashtag: string (without the leading '#')
  - params: pagination.Params

Returns:
  - *Page: Matching posts plus pagination signals
  - error: Cancellation only
*/
func (service *MemoryPostService) FetchHashtag(context context.Context, hashtag string, params pagination.Params) (*Page, error) {
	if err := service.simulate(context); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	var all []*post.Post
	for pageNum := 1; pageNum <= MemoryTotalPages; pageNum++ {
		all = append(all, service.pageLocked(pageNum, params.Limit)...)
	}

	wanted := tag.Fold(hashtag)
	matching := slice.Filter(all, func(p *post.Post) bool {
		for _, t := range p.Hashtags {
			if tag.Fold(t) == wanted {
				return true
			}
		}
		return false
	})

	start := params.Offset()
	if start > len(matching) {
		start = len(matching)
	}
	end := start + params.Limit
	if end > len(matching) {
		end = len(matching)
	}

	return &Page{
		Posts:    slice.Map(matching[start:end], func(p *post.Post) *post.Post { return p.Clone() }),
		NextPage: params.Page + 1,
		HasMore:  end < len(matching),
	}, nil
}

/*
CreatePost records a locally composed post.

Parameters:
  - context: context.Context
  - newPost: *post.Post

Returns:
  - *post.Post: The accepted post as recorded
  - error: Cancellation only
*/
func (service *MemoryPostService) CreatePost(context context.Context, newPost *post.Post) (*post.Post, error) {
	if err := service.simulate(context); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	recorded := newPost.Clone()
	service.materialized[recorded.ID] = recorded

	return recorded.Clone(), nil
}

/*
SetLike records the viewer's like relation and returns the confirmed post.

Parameters:
  - context: context.Context
  - postID: string
  - liked: bool

Returns:
  - *post.Post: Confirmed post with authoritative counters
  - error: apperr.NotFound for unknown ids
*/
func (service *MemoryPostService) SetLike(context context.Context, postID string, liked bool) (*post.Post, error) {
	if err := service.simulate(context); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	target, ok := service.materialized[postID]
	if !ok {
		return nil, apperr.NotFound("Post")
	}

	// Idempotent: only a state change moves the counter.
	if target.IsLiked != liked {
		target.IsLiked = liked
		if liked {
			target.LikesCount++
		} else if target.LikesCount > 0 {
			target.LikesCount--
		}
		target.UpdatedAt = time.Now()
	}

	return target.Clone(), nil
}

/*
SetBookmark records the viewer's bookmark relation and returns the confirmed post.

Parameters:
  - context: context.Context
  - postID: string
  - bookmarked: bool

Returns:
  - *post.Post: Confirmed post
  - error: apperr.NotFound for unknown ids
*/
func (service *MemoryPostService) SetBookmark(context context.Context, postID string, bookmarked bool) (*post.Post, error) {
	if err := service.simulate(context); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	target, ok := service.materialized[postID]
	if !ok {
		return nil, apperr.NotFound("Post")
	}

	if target.IsBookmarked != bookmarked {
		target.IsBookmarked = bookmarked
		target.UpdatedAt = time.Now()
	}

	return target.Clone(), nil
}
