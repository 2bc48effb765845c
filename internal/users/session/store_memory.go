// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/levutran/ripple/internal/platform/apperr"
	"github.com/levutran/ripple/internal/platform/sec"
	"github.com/levutran/ripple/pkg/uuidv7"
)

// # In-Memory Auth Backend

// MemoryAuthService implements [AuthService] entirely in process.
//
// It stands in for the remote identity backend during development and tests,
// seeded with the demo account the shell ships with. Passwords are stored as
// bcrypt hashes even here — no clear-text credential ever lives in memory.
type MemoryAuthService struct {
	mu sync.Mutex
	// users is keyed by lowercase email.
	users map[string]*memoryAccount
}

// memoryAccount pairs an identity with its credential hash.
type memoryAccount struct {
	user         User
	passwordHash string
}

// DemoEmail and DemoPassword are the credentials of the seeded demo account.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
)

// NewMemoryAuthService creates the in-memory backend with the demo account seeded.
func NewMemoryAuthService() (*MemoryAuthService, error) {
	service := &MemoryAuthService{users: make(map[string]*memoryAccount)}

	hash, err := sec.HashPassword(DemoPassword)
	if err != nil {
		return nil, err
	}

	seeded := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	service.users[DemoEmail] = &memoryAccount{
		user: User{
			ID:             "1",
			Username:       "demo",
			Email:          DemoEmail,
			DisplayName:    "Demo User",
			Bio:            "Seeded demo account",
			Verified:       true,
			FollowersCount: 1250,
			FollowingCount: 340,
			PostsCount:     89,
			CreatedAt:      seeded,
			UpdatedAt:      seeded,
		},
		passwordHash: hash,
	}

	return service, nil
}

/*
Authenticate verifies credentials against the in-memory accounts.

Description: Performs a bcrypt comparison against the stored hash. The same
generic Unauthorized error covers unknown emails and wrong passwords so the
surface cannot be used for account enumeration.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *User: Copy of the matching identity
  - error: apperr.Unauthorized on any mismatch
*/
func (service *MemoryAuthService) Authenticate(_ context.Context, email, password string) (*User, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	account, ok := service.users[strings.ToLower(email)]
	if !ok || !sec.CheckPasswordHash(password, account.passwordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	copied := account.user
	return &copied, nil
}

/*
CreateAccount enrolls a new identity with zeroed counters.

Description: Rejects taken emails and usernames with a Conflict error, hashes
the password, and constructs the account exactly as the backend would: zero
counters, unverified, time-sortable ID.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Copy of the created identity
  - error: apperr.Conflict for duplicate identity keys
*/
func (service *MemoryAuthService) CreateAccount(_ context.Context, input RegisterInput) (*User, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	email := strings.ToLower(input.Email)
	if _, ok := service.users[email]; ok {
		return nil, apperr.Conflict("Email is already registered")
	}
	for _, account := range service.users {
		if strings.EqualFold(account.user.Username, input.Username) {
			return nil, apperr.Conflict("Username is already taken")
		}
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now()
	user := User{
		ID:          uuidv7.New(),
		Username:    input.Username,
		Email:       email,
		DisplayName: input.DisplayName,
		Verified:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	service.users[email] = &memoryAccount{user: user, passwordHash: hash}

	copied := user
	return &copied, nil
}
