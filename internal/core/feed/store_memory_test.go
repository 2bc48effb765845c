// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package feed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levutran/ripple/internal/core/feed"
	"github.com/levutran/ripple/internal/core/post"
	"github.com/levutran/ripple/internal/platform/apperr"
	"github.com/levutran/ripple/pkg/pagination"
)

/*
TestMemoryPostService_DeterministicPages serves identical content for repeat
fetches of the same page.
*/
func TestMemoryPostService_DeterministicPages(t *testing.T) {
	service := feed.NewMemoryPostService()
	ctx := context.Background()
	params := pagination.Params{Page: 2, Limit: 4}

	first, err := service.FetchFeed(ctx, params)
	require.NoError(t, err)
	second, err := service.FetchFeed(ctx, params)
	require.NoError(t, err)

	require.Len(t, first.Posts, 4)
	for i := range first.Posts {
		assert.Equal(t, first.Posts[i].ID, second.Posts[i].ID)
		assert.Equal(t, first.Posts[i].Content, second.Posts[i].Content)
	}
	assert.Equal(t, "2-0", first.Posts[0].ID)
}

/*
TestMemoryPostService_HasMore signals the end of the feed at the final page.
*/
func TestMemoryPostService_HasMore(t *testing.T) {
	service := feed.NewMemoryPostService()
	ctx := context.Background()

	mid, err := service.FetchFeed(ctx, pagination.Params{Page: feed.MemoryTotalPages - 1, Limit: 2})
	require.NoError(t, err)
	assert.True(t, mid.HasMore)

	last, err := service.FetchFeed(ctx, pagination.Params{Page: feed.MemoryTotalPages, Limit: 2})
	require.NoError(t, err)
	assert.False(t, last.HasMore)
}

/*
TestMemoryPostService_ReturnsClones hands out copies: mutating a fetched post
never leaks into later fetches.
*/
func TestMemoryPostService_ReturnsClones(t *testing.T) {
	service := feed.NewMemoryPostService()
	ctx := context.Background()
	params := pagination.Params{Page: 1, Limit: 2}

	first, err := service.FetchFeed(ctx, params)
	require.NoError(t, err)
	first.Posts[0].Content = "mutated by caller"

	second, err := service.FetchFeed(ctx, params)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated by caller", second.Posts[0].Content)
}

/*
TestMemoryPostService_FetchHashtag matches tags case-insensitively.
*/
func TestMemoryPostService_FetchHashtag(t *testing.T) {
	service := feed.NewMemoryPostService()
	ctx := context.Background()

	page, err := service.FetchHashtag(ctx, "GOLANG", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)

	require.NotEmpty(t, page.Posts)
	for _, p := range page.Posts {
		assert.Contains(t, p.Hashtags, "golang")
	}
}

/*
TestMemoryPostService_FetchHashtagUnknown returns an empty page, not an error.
*/
func TestMemoryPostService_FetchHashtagUnknown(t *testing.T) {
	service := feed.NewMemoryPostService()

	page, err := service.FetchHashtag(context.Background(), "nosuchtag", pagination.Params{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasMore)
}

/*
TestMemoryPostService_SetLike is idempotent: only a state change moves the
counter.
*/
func TestMemoryPostService_SetLike(t *testing.T) {
	service := feed.NewMemoryPostService()
	ctx := context.Background()

	page, err := service.FetchFeed(ctx, pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	target := page.Posts[0]
	require.False(t, target.IsLiked)
	baseline := target.LikesCount

	liked, err := service.SetLike(ctx, target.ID, true)
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, baseline+1, liked.LikesCount)

	// Repeating the same state is a no-op.
	again, err := service.SetLike(ctx, target.ID, true)
	require.NoError(t, err)
	assert.Equal(t, baseline+1, again.LikesCount)

	unliked, err := service.SetLike(ctx, target.ID, false)
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Equal(t, baseline, unliked.LikesCount)
}

/*
TestMemoryPostService_SetLikeUnknown reports NotFound for ids it never served.
*/
func TestMemoryPostService_SetLikeUnknown(t *testing.T) {
	service := feed.NewMemoryPostService()

	_, err := service.SetLike(context.Background(), "never-served", true)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestMemoryPostService_SetBookmark flips the relation without touching counters.
*/
func TestMemoryPostService_SetBookmark(t *testing.T) {
	service := feed.NewMemoryPostService()
	ctx := context.Background()

	page, err := service.FetchFeed(ctx, pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	target := page.Posts[0]
	likes := target.LikesCount

	marked, err := service.SetBookmark(ctx, target.ID, true)
	require.NoError(t, err)
	assert.True(t, marked.IsBookmarked)
	assert.Equal(t, likes, marked.LikesCount)
}

/*
TestMemoryPostService_CreatePost records the post so interactions can find it.
*/
func TestMemoryPostService_CreatePost(t *testing.T) {
	service := feed.NewMemoryPostService()
	ctx := context.Background()

	composed := &post.Post{ID: "local-1", Content: "fresh off the composer"}
	recorded, err := service.CreatePost(ctx, composed)
	require.NoError(t, err)
	assert.Equal(t, "local-1", recorded.ID)

	confirmed, err := service.SetLike(ctx, "local-1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, confirmed.LikesCount)
}
