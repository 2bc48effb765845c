// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package session

import (
	"context"
	"time"

	"github.com/levutran/ripple/internal/platform/sec"
)

// # Auth Collaborator

// AuthService defines the contract with the remote identity backend.
//
// The bundled implementation is an in-memory mock ([MemoryAuthService]); a
// production build swaps in a remote client satisfying the same contract.
type AuthService interface {

	/*
		Authenticate verifies credentials and returns the matching identity.

		Parameters:
		  - context: context.Context
		  - email: string
		  - password: string

		Returns:
		  - *User: Hydrated identity on success
		  - error: apperr.Unauthorized for bad credentials, transport failures otherwise
	*/
	Authenticate(context context.Context, email, password string) (*User, error)

	/*
		CreateAccount enrolls a brand-new identity with zeroed counters and
		unverified status.

		Parameters:
		  - context: context.Context
		  - input: RegisterInput

		Returns:
		  - *User: Created identity
		  - error: apperr.Conflict for taken username/email, transport failures otherwise
	*/
	CreateAccount(context context.Context, input RegisterInput) (*User, error)
}

// # Durable Session Storage

// SessionStorage defines the contract for the single durable session record.
//
// # Corruption Policy
//
// Implementations must tolerate corrupted or unparsable stored payloads by
// clearing the record and reporting it as absent — a parse failure is never
// propagated to the caller.
type SessionStorage interface {

	/*
		Save persists the session record, replacing any previous one.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, session *Session) error

	/*
		Load retrieves the persisted session record.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Session: The stored record, or nil if absent (including after
		    self-healing a corrupt payload)
		  - error: Transport/IO failures only — never parse failures
	*/
	Load(context context.Context) (*Session, error)

	/*
		Clear removes the persisted session record. Idempotent.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Persistence failures
	*/
	Clear(context context.Context) error
}

// # Token Provider

// TokenProvider defines the contract for minting and checking access tokens.
type TokenProvider interface {

	/*
		GenerateAccessToken creates a signed token string for the given user.

		Parameters:
		  - userID: string
		  - username: string
		  - timeToLive: time.Duration

		Returns:
		  - string: Signed token
		  - error: Signing failures
	*/
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)

	/*
		VerifyToken checks the signature and expiry of a token string.

		Parameters:
		  - token: string

		Returns:
		  - *sec.AuthClaims: Parsed claims when valid
		  - error: Expired, tampered, or malformed tokens
	*/
	VerifyToken(token string) (*sec.AuthClaims, error)
}
