// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package session

import "time"

// # Identity Constraints

const (
	// AccessTokenTTL is the duration a persisted session remains valid.
	// Long-lived (30 days) because the shell is the only consumer of the
	// token and re-login on every launch would be hostile UX.
	AccessTokenTTL = 30 * 24 * time.Hour

	// TokenIssuer is the standard 'iss' claim in minted access tokens.
	TokenIssuer = "ripple.app"

	// PasswordMinLength is the minimum password length at registration.
	PasswordMinLength = 8

	// UsernameMinLength and UsernameMaxLength bound routing-safe usernames.
	UsernameMinLength = 3
	UsernameMaxLength = 30

	// DisplayNameMaxLength bounds the rendered display name.
	DisplayNameMaxLength = 50

	// BioMaxLength bounds the profile bio.
	BioMaxLength = 160
)
