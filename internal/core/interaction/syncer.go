// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package interaction

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/levutran/ripple/internal/core/feed"
	"github.com/levutran/ripple/internal/platform/apperr"
)

// # Write Throttling

const (
	// pushRate bounds confirmation round-trips per second across all posts.
	// Rapid double-toggles coalesce behind the limiter instead of racing
	// each other to the backend.
	pushRate = rate.Limit(4)

	// pushBurst allows a short burst of distinct interactions before the
	// limiter starts pacing.
	pushBurst = 8
)

// # Syncer

// Syncer round-trips optimistic toggles to the post service and folds the
// confirmations back into their [State].
//
// The toggle itself is synchronous and local; the Syncer only carries the
// eventual confirmation. Until a push succeeds, the field stays in
// [PhaseOptimistic] and survives any feed reconciliation.
type Syncer struct {
	service feed.PostService
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewSyncer constructs a [Syncer] over the given post service.
func NewSyncer(service feed.PostService, logger *slog.Logger) *Syncer {
	return &Syncer{
		service: service,
		limiter: rate.NewLimiter(pushRate, pushBurst),
		logger:  logger,
	}
}

/*
PushLike submits the state's current like relation for confirmation.

Description: Waits for a limiter slot, sends the CURRENT boolean (not the
boolean at toggle time — intermediate flips of a rapid double-toggle are
deliberately skipped), and reconciles the confirmed post into the state. A
NotFound target reverts the pending toggle; other failures leave the
optimistic state in place so the push can be retried.

Parameters:
  - context: context.Context
  - state: *State

Returns:
  - error: apperr-classified failures
*/
func (syncer *Syncer) PushLike(context context.Context, state *State) error {
	if err := syncer.limiter.Wait(context); err != nil {
		return apperr.Unavailable("like sync cancelled", err)
	}

	confirmed, err := syncer.service.SetLike(context, state.PostID(), state.Liked())
	if err != nil {
		if apperr.IsNotFound(err) {
			// The post is gone; the optimistic flip has nowhere to land.
			state.revertLike()
			return err
		}
		syncer.logger.Warn("interaction_like_push_failed",
			slog.String("post_id", state.PostID()),
			slog.Any("error", err),
		)
		return apperr.Wrap(err, "like_sync")
	}

	state.Reconcile(confirmed)
	return nil
}

/*
PushBookmark submits the state's current bookmark relation for confirmation.

Description: Same contract as [Syncer.PushLike], without counter effects.

Parameters:
  - context: context.Context
  - state: *State

Returns:
  - error: apperr-classified failures
*/
func (syncer *Syncer) PushBookmark(context context.Context, state *State) error {
	if err := syncer.limiter.Wait(context); err != nil {
		return apperr.Unavailable("bookmark sync cancelled", err)
	}

	confirmed, err := syncer.service.SetBookmark(context, state.PostID(), state.Bookmarked())
	if err != nil {
		if apperr.IsNotFound(err) {
			state.revertBookmark()
			return err
		}
		syncer.logger.Warn("interaction_bookmark_push_failed",
			slog.String("post_id", state.PostID()),
			slog.Any("error", err),
		)
		return apperr.Wrap(err, "bookmark_sync")
	}

	state.Reconcile(confirmed)
	return nil
}
