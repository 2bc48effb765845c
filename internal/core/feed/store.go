// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package feed

import (
	"context"

	"github.com/levutran/ripple/internal/core/post"
	"github.com/levutran/ripple/pkg/pagination"
)

// # Post Service Collaborator

// Page is one fetched slice of the feed.
type Page struct {
	// Posts in server-returned order, newest first.
	Posts []*post.Post
	// NextPage is the cursor of the page that follows this one.
	NextPage int
	// HasMore reports whether another page exists after this one.
	HasMore bool
}

// PostService defines the contract with the remote post backend.
//
// The bundled implementation is an in-memory mock ([MemoryPostService]); a
// production build swaps in a remote client satisfying the same contract.
// The connection is stateless request/response — no affinity, no ordering
// beyond the controller's own generation tagging.
type PostService interface {

	/*
		FetchFeed returns one page of the viewer's feed.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - *Page: Posts in server order plus pagination signals
		  - error: Transport failures
	*/
	FetchFeed(context context.Context, params pagination.Params) (*Page, error)

	/*
		FetchHashtag returns one page of posts carrying the given hashtag,
		matched case-insensitively.

		Parameters:
		  - context: context.Context
		  - hashtag: string (without the leading '#')
		  - params: pagination.Params

		Returns:
		  - *Page: Matching posts plus pagination signals
		  - error: Transport failures
	*/
	FetchHashtag(context context.Context, hashtag string, params pagination.Params) (*Page, error)

	/*
		CreatePost submits a locally composed post.

		Parameters:
		  - context: context.Context
		  - newPost: *post.Post (already validated by post.New)

		Returns:
		  - *post.Post: The accepted post as the backend recorded it
		  - error: Transport failures
	*/
	CreatePost(context context.Context, newPost *post.Post) (*post.Post, error)

	/*
		SetLike records the viewer's like relation for a post.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - liked: bool

		Returns:
		  - *post.Post: The confirmed post with authoritative counters
		  - error: apperr.NotFound when the post is gone, transport failures otherwise
	*/
	SetLike(context context.Context, postID string, liked bool) (*post.Post, error)

	/*
		SetBookmark records the viewer's bookmark relation for a post.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - bookmarked: bool

		Returns:
		  - *post.Post: The confirmed post
		  - error: apperr.NotFound when the post is gone, transport failures otherwise
	*/
	SetBookmark(context context.Context, postID string, bookmarked bool) (*post.Post, error)
}
