// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

/*
Package feed implements the client-side feed controller.

It orchestrates the initial load, wholesale refresh, and incremental
pagination of an ordered post sequence fetched from a [PostService].

# Staleness Protocol

Every refresh bumps a generation counter. A load-more captures the generation
at dispatch and, when its response arrives, appends only if the generation
still matches. A response that lost the race to a refresh is silently
discarded — never reported as an error, never merged.
*/
package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/levutran/ripple/internal/core/post"
	"github.com/levutran/ripple/internal/platform/apperr"
	"github.com/levutran/ripple/pkg/pagination"
)

// # Controller States

// Phase is the feed controller's lifecycle state.
type Phase string

const (
	// PhaseIdle: nothing fetched yet.
	PhaseIdle Phase = "idle"
	// PhaseLoading: initial load in flight.
	PhaseLoading Phase = "loading"
	// PhaseRefreshing: wholesale re-fetch of page one in flight.
	PhaseRefreshing Phase = "refreshing"
	// PhaseLoadingMore: incremental page fetch in flight.
	PhaseLoadingMore Phase = "loading_more"
	// PhaseReady: sequence is consistent and renderable.
	PhaseReady Phase = "ready"
)

// # Controller

// Controller owns the ordered, paginated post sequence shown to the viewer.
//
// # Concurrency
//
// Methods are safe for concurrent use. The internal lock is released while a
// fetch is in flight; consistency across overlapping refresh/load-more calls
// is guaranteed by the generation check, not by serializing the fetches.
type Controller struct {
	service  PostService
	logger   *slog.Logger
	pageSize int

	mu         sync.Mutex
	phase      Phase
	posts      []*post.Post
	cursor     int
	hasMore    bool
	generation uint64
}

// NewController constructs a feed [Controller].
//
// A non-positive pageSize falls back to [pagination.DefaultLimit].
func NewController(service PostService, pageSize int, logger *slog.Logger) *Controller {
	if pageSize < 1 {
		pageSize = pagination.DefaultLimit
	}

	return &Controller{
		service:  service,
		logger:   logger,
		pageSize: pageSize,
		phase:    PhaseIdle,
		cursor:   pagination.FirstPage,
		hasMore:  true,
	}
}

// # Observable State

// Phase returns the controller's current lifecycle state.
func (controller *Controller) Phase() Phase {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.phase
}

// Posts returns a snapshot of the current sequence, newest first.
//
// The slice is a copy; the posts themselves are shared and must only be
// mutated through the interaction layer.
func (controller *Controller) Posts() []*post.Post {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return append([]*post.Post(nil), controller.posts...)
}

// Cursor returns the page cursor of the most recently merged page.
func (controller *Controller) Cursor() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.cursor
}

// HasMore reports whether the service has signalled further pages.
func (controller *Controller) HasMore() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.hasMore
}

// # Fetch Operations

/*
Load performs the initial fetch of page one.

Description: Transitions Idle → Loading → Ready. A no-op unless the controller
is Idle; call [Controller.Refresh] to re-fetch after that. On failure the feed
stays empty and the controller returns to Idle so the load can be retried.

Parameters:
  - context: context.Context

Returns:
  - error: apperr-classified fetch failures
*/
func (controller *Controller) Load(context context.Context) error {
	controller.mu.Lock()
	if controller.phase != PhaseIdle {
		controller.mu.Unlock()
		return nil
	}
	controller.phase = PhaseLoading
	generation := controller.generation
	controller.mu.Unlock()

	page, err := controller.service.FetchFeed(context, pagination.Clamp(pagination.FirstPage, controller.pageSize))

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if err != nil {
		controller.phase = PhaseIdle
		return apperr.Wrap(err, "feed_load")
	}

	// A refresh dispatched during the initial load wins.
	if controller.generation != generation {
		return nil
	}

	controller.replaceLocked(page)
	controller.logger.Info("feed_loaded", slog.Int("posts", len(controller.posts)))

	return nil
}

/*
Refresh re-fetches page one and replaces the sequence wholesale.

Description: Bumps the generation so any in-flight load-more response is
discarded on arrival, then replaces (never appends) the sequence and resets
the cursor to its initial value. Safe to call while a load-more is in flight.
A no-op before the initial load has started.

Parameters:
  - context: context.Context

Returns:
  - error: apperr-classified fetch failures; the pre-refresh feed is kept intact
*/
func (controller *Controller) Refresh(context context.Context) error {
	controller.mu.Lock()
	if controller.phase == PhaseIdle || controller.phase == PhaseLoading || controller.phase == PhaseRefreshing {
		controller.mu.Unlock()
		return nil
	}
	controller.phase = PhaseRefreshing

	// Supersede everything dispatched before this point.
	controller.generation++
	generation := controller.generation
	controller.mu.Unlock()

	page, err := controller.service.FetchFeed(context, pagination.Clamp(pagination.FirstPage, controller.pageSize))

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if err != nil {
		// Failure leaves the existing sequence untouched and renderable.
		controller.phase = PhaseReady
		return apperr.Wrap(err, "feed_refresh")
	}

	// A later refresh may have superseded this one while it was in flight.
	if controller.generation != generation {
		return nil
	}

	controller.replaceLocked(page)
	controller.logger.Info("feed_refreshed", slog.Int("posts", len(controller.posts)))

	return nil
}

/*
LoadMore fetches the page after the current cursor and appends it.

Description: A no-op while any fetch is in flight or when the service has
signalled the end of the feed. Page-boundary overlaps are de-duplicated,
keeping the earlier occurrence. A response that arrives after a refresh has
completed is discarded by the generation check.

Parameters:
  - context: context.Context

Returns:
  - error: apperr-classified fetch failures; the existing feed is kept intact
*/
func (controller *Controller) LoadMore(context context.Context) error {
	controller.mu.Lock()
	if controller.phase != PhaseReady || !controller.hasMore {
		controller.mu.Unlock()
		return nil
	}
	controller.phase = PhaseLoadingMore
	generation := controller.generation
	nextPage := controller.cursor + 1
	controller.mu.Unlock()

	page, err := controller.service.FetchFeed(context, pagination.Clamp(nextPage, controller.pageSize))

	controller.mu.Lock()
	defer controller.mu.Unlock()

	// Stale: a refresh completed while this fetch was in flight. Its result
	// must not touch the post-refresh sequence, phase included.
	if controller.generation != generation {
		controller.logger.Debug("feed_stale_page_discarded", slog.Int("page", nextPage))
		return nil
	}

	if err != nil {
		controller.phase = PhaseReady
		return apperr.Wrap(err, "feed_load_more")
	}

	// Append only ids not already present; earlier occurrences win.
	seen := make(map[string]struct{}, len(controller.posts))
	for _, existing := range controller.posts {
		seen[existing.ID] = struct{}{}
	}
	for _, fetched := range page.Posts {
		if _, dup := seen[fetched.ID]; dup {
			continue
		}
		seen[fetched.ID] = struct{}{}
		controller.posts = append(controller.posts, fetched)
	}

	controller.cursor = nextPage
	controller.hasMore = page.HasMore
	controller.phase = PhaseReady

	controller.logger.Info("feed_page_appended",
		slog.Int("page", nextPage),
		slog.Int("posts", len(controller.posts)),
	)

	return nil
}

// replaceLocked installs a freshly fetched page one, de-duplicated, and
// resets pagination progress. Callers must hold controller.mu.
func (controller *Controller) replaceLocked(page *Page) {
	seen := make(map[string]struct{}, len(page.Posts))
	posts := make([]*post.Post, 0, len(page.Posts))
	for _, fetched := range page.Posts {
		if _, dup := seen[fetched.ID]; dup {
			continue
		}
		seen[fetched.ID] = struct{}{}
		posts = append(posts, fetched)
	}

	controller.posts = posts
	controller.cursor = pagination.FirstPage
	controller.hasMore = page.HasMore
	controller.phase = PhaseReady
}

// # Local Mutations

/*
AddLocalPost prepends a locally composed post without a server round-trip.

Description: The optimistic insert for the composer flow. Independent of
pagination state; ignored if the id is already present.

Parameters:
  - newPost: *post.Post
*/
func (controller *Controller) AddLocalPost(newPost *post.Post) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	for _, existing := range controller.posts {
		if existing.ID == newPost.ID {
			return
		}
	}

	controller.posts = append([]*post.Post{newPost}, controller.posts...)
}
