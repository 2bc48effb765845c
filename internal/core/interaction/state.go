// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

/*
Package interaction tracks the viewer's relationship to a single post.

# Two-Phase Model

Each tracked field (like, bookmark) is either Confirmed — local state equals
the server-confirmed baseline — or Optimistic — the viewer toggled it and the
round-trip has not completed yet. Reconciliation compares phases instead of
overwriting blindly: server truth replaces a Confirmed field, but never
silently drops an Optimistic toggle that has not been round-tripped.

# Counter Discipline

The displayed like counter is always derived as baseline count plus the delta
of the current boolean against the baseline boolean. Deriving from the
baseline, not from the previous optimistic value, keeps rapid double-toggling
drift-free: two toggles land exactly back on the original numbers.
*/
package interaction

import (
	"sync"

	"github.com/levutran/ripple/internal/core/post"
)

// # Phases

// Phase describes whether a tracked field awaits server confirmation.
type Phase string

const (
	// PhaseConfirmed: local state equals the server-confirmed baseline.
	PhaseConfirmed Phase = "confirmed"
	// PhaseOptimistic: a local toggle has not been round-tripped yet.
	PhaseOptimistic Phase = "optimistic"
)

// # State

// State is the per-post optimistic interaction state.
//
// It is created from a post snapshot and lives alongside the rendered post,
// independent of feed re-fetching.
type State struct {
	mu     sync.Mutex
	postID string

	// Server-confirmed baseline.
	baselineLiked      bool
	baselineBookmarked bool
	baselineLikes      int

	// Viewer's current relation, possibly ahead of the baseline.
	liked      bool
	bookmarked bool
}

// NewState derives interaction state from a post snapshot.
//
// The snapshot's viewer-relation fields become both the baseline and the
// current state, so a fresh State is Confirmed on both fields.
func NewState(snapshot *post.Post) *State {
	return &State{
		postID:             snapshot.ID,
		baselineLiked:      snapshot.IsLiked,
		baselineBookmarked: snapshot.IsBookmarked,
		baselineLikes:      snapshot.LikesCount,
		liked:              snapshot.IsLiked,
		bookmarked:         snapshot.IsBookmarked,
	}
}

// PostID returns the id of the tracked post.
func (state *State) PostID() string {
	return state.postID
}

// # Local Toggles

// ToggleLike flips the viewer's like relation.
//
// Pure local mutation, applied before any server confirmation. Returns the
// new relation and the displayed counter.
func (state *State) ToggleLike() (liked bool, likesCount int) {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.liked = !state.liked
	return state.liked, state.likesLocked()
}

// ToggleBookmark flips the viewer's bookmark relation. No counter side effect.
func (state *State) ToggleBookmark() bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.bookmarked = !state.bookmarked
	return state.bookmarked
}

// # Observable State

// Liked reports the viewer's current like relation.
func (state *State) Liked() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.liked
}

// Bookmarked reports the viewer's current bookmark relation.
func (state *State) Bookmarked() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.bookmarked
}

// LikesCount returns the displayed like counter: the server-confirmed
// baseline plus the delta of the current boolean against the baseline.
func (state *State) LikesCount() int {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.likesLocked()
}

// likesLocked derives the displayed counter. Callers must hold state.mu.
func (state *State) likesLocked() int {
	count := state.baselineLikes
	switch {
	case state.liked && !state.baselineLiked:
		count++
	case !state.liked && state.baselineLiked:
		count--
	}

	if count < 0 {
		count = 0
	}
	return count
}

// LikePhase reports whether the like relation awaits confirmation.
func (state *State) LikePhase() Phase {
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.liked == state.baselineLiked {
		return PhaseConfirmed
	}
	return PhaseOptimistic
}

// BookmarkPhase reports whether the bookmark relation awaits confirmation.
func (state *State) BookmarkPhase() Phase {
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.bookmarked == state.baselineBookmarked {
		return PhaseConfirmed
	}
	return PhaseOptimistic
}

// # Reconciliation

/*
Reconcile folds fresh server data for the same post into the state.

Description: The server's values are authoritative for the baseline. A field
in Confirmed phase adopts the server value outright; a field still Optimistic
keeps its local toggle — the pending flip is never dropped — while the counter
re-derives from the new baseline, so it cannot drift.

Parameters:
  - serverPost: *post.Post (ignored unless its id matches)
*/
func (state *State) Reconcile(serverPost *post.Post) {
	if serverPost.ID != state.postID {
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	likePending := state.liked != state.baselineLiked
	bookmarkPending := state.bookmarked != state.baselineBookmarked

	state.baselineLiked = serverPost.IsLiked
	state.baselineLikes = serverPost.LikesCount
	state.baselineBookmarked = serverPost.IsBookmarked

	if !likePending {
		state.liked = serverPost.IsLiked
	}
	if !bookmarkPending {
		state.bookmarked = serverPost.IsBookmarked
	}
}

// revertLike abandons a pending like toggle (e.g. the target post is gone).
func (state *State) revertLike() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.liked = state.baselineLiked
}

// revertBookmark abandons a pending bookmark toggle.
func (state *State) revertBookmark() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.bookmarked = state.baselineBookmarked
}

// # Rendering

// Apply writes the displayed interaction values onto a post for rendering.
//
// Only the viewer-relation fields and the like counter are touched; the
// post's other fields stay as fetched.
func (state *State) Apply(target *post.Post) {
	if target.ID != state.postID {
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	target.IsLiked = state.liked
	target.IsBookmarked = state.bookmarked
	target.LikesCount = state.likesLocked()
}
