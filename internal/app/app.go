// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

/*
Package app wires the client core into a single explicit root object.

# Why an explicit root?

The presentation layer receives one [*App] by reference and reaches every
store through it. There is no ambient singleton and no package-level mutable
state anywhere in the module — ownership is visible in the constructor.

# Startup Sequence

 1. Mint the token service from the configured secret.
 2. Select session storage (Redis when configured, file otherwise).
 3. Wire the collaborator backends (in-memory mocks in this build).
 4. Construct the session service, feed controller, and interaction syncer.

No business logic lives here. All wiring is explicit constructor injection.
*/
package app

import (
	stdctx "context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/levutran/ripple/internal/core/feed"
	"github.com/levutran/ripple/internal/core/interaction"
	"github.com/levutran/ripple/internal/core/post"
	"github.com/levutran/ripple/internal/platform/apperr"
	"github.com/levutran/ripple/internal/platform/config"
	"github.com/levutran/ripple/internal/platform/redis"
	"github.com/levutran/ripple/internal/platform/sec"
	"github.com/levutran/ripple/internal/users/session"
)

// App is the application root: every store the presentation layer renders,
// reachable from one place.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Session      *session.Service
	Feed         *feed.Controller
	Interactions *interaction.Syncer

	posts       feed.PostService
	redisClient *goredis.Client
}

// New wires the client core from configuration.
//
// The collaborators are the bundled in-memory backends; a production build
// replaces them with remote clients behind the same interfaces.
func New(context stdctx.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {

	tokens, err := sec.NewTokenService(cfg.SessionSecret, session.TokenIssuer)
	if err != nil {
		return nil, err
	}

	// Durable session storage: Redis when configured, file otherwise.
	var storage session.SessionStorage
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(context, cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		storage = session.NewRedisSessionStorage(redisClient, "local", logger)
	} else {
		storage = session.NewFileSessionStorage(cfg.SessionPath, logger)
	}

	authBackend, err := session.NewMemoryAuthService()
	if err != nil {
		return nil, err
	}
	postBackend := feed.NewMemoryPostService()

	return &App{
		Config:       cfg,
		Logger:       logger,
		Session:      session.NewService(authBackend, storage, tokens, logger),
		Feed:         feed.NewController(postBackend, cfg.FeedPageSize, logger),
		Interactions: interaction.NewSyncer(postBackend, logger),
		posts:        postBackend,
		redisClient:  redisClient,
	}, nil
}

// Start rehydrates the session and performs the initial feed load.
func (app *App) Start(context stdctx.Context) error {
	app.Session.CheckAuth(context)
	return app.Feed.Load(context)
}

// Close releases held connections. Safe to call once at shutdown.
func (app *App) Close() error {
	if app.redisClient != nil {
		return app.redisClient.Close()
	}
	return nil
}

// # Composer Flow

/*
CreatePost composes, submits, and optimistically prepends a new post.

Description: Requires an authenticated session — the current user becomes the
author snapshot. Content is validated locally by post.New before anything is
sent. On submission failure nothing is prepended and the caller keeps its
draft (no data loss); on success the accepted post enters the feed
immediately, independent of pagination state.

Parameters:
  - context: context.Context
  - content: string
  - images: []string
  - videos: []string

Returns:
  - *post.Post: The post as the backend accepted it
  - error: apperr.Unauthorized, apperr.ValidationError, or transport failures
*/
func (app *App) CreatePost(context stdctx.Context, content string, images, videos []string) (*post.Post, error) {

	author := app.Session.CurrentUser()
	if author == nil {
		return nil, apperr.Unauthorized("Sign in to post")
	}

	draft, err := post.New(*author, content, images, videos)
	if err != nil {
		return nil, err
	}

	accepted, err := app.posts.CreatePost(context, draft)
	if err != nil {
		return nil, apperr.Wrap(err, "create_post")
	}

	app.Feed.AddLocalPost(accepted)
	app.Logger.Info("post_created", slog.String("post_id", accepted.ID))

	return accepted, nil
}

// InteractionFor derives fresh interaction state from a rendered post.
func (app *App) InteractionFor(rendered *post.Post) *interaction.State {
	return interaction.NewState(rendered)
}
