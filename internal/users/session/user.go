// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

/*
Package session implements the client-side identity layer.

It owns the currently authenticated [User], the durable session record, and
the [Service] state machine the presentation layer reads (login, register,
logout, rehydration).

# Architecture

This layer is the "Truth" of the client. At most one user is current at a
time; every other component receives identity as a value snapshot, never as a
live reference into this package's state.
*/
package session

import "time"

// # Domain Entities

// User represents a registered member of the Ripple platform.
//
// Inside a post's author field the User travels by value: a snapshot taken at
// authoring time, deliberately decoupled from later profile edits.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Verified       bool      `json:"verified"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	PostsCount     int       `json:"posts_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Session is the durable record of an authenticated identity.
//
// It wraps the [User] together with the access token minted at login so the
// shell can decide on restart whether the persisted identity is still usable.
type Session struct {
	User        User      `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// # Field Identifiers

// Field names used for validation in the identity domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldDisplayName     = "display_name"
	FieldBio             = "bio"
)
