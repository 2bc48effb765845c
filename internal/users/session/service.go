// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/levutran/ripple/internal/platform/apperr"
	"github.com/levutran/ripple/internal/platform/validate"
)

// # Service Layer

// Service is the client-side session store.
//
// It orchestrates authentication against the [AuthService], persists the
// resulting [Session] through [SessionStorage], and exposes the state the
// presentation layer renders.
//
// # Invariant
//
// The store never tracks authentication as a separate flag: a user is
// authenticated if and only if a current [User] is present. [State] derives
// IsAuthenticated from presence, so the invariant cannot be violated.
//
// # Concurrency
//
// Operations that suspend on a collaborator release the internal lock while
// waiting. Two logins racing each other are permitted: the store's final
// state reflects whichever completion writes last (last-write-wins). This is
// deliberate — a single client holds a single identity, and concurrent login
// attempts are a user-error scenario, not a correctness-critical one.
type Service struct {
	authService AuthService
	storage     SessionStorage
	tokens      TokenProvider
	logger      *slog.Logger

	mu      sync.Mutex
	user    *User
	loading bool
	err     *apperr.AppError
}

// NewService constructs a new session [Service] with its collaborators.
func NewService(authService AuthService, storage SessionStorage, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		authService: authService,
		storage:     storage,
		tokens:      tokens,
		logger:      logger,
	}
}

// # Observable State

// State is an immutable snapshot of the session store.
type State struct {
	// User is the current identity, or nil when unauthenticated.
	User *User
	// IsAuthenticated is true exactly when User is present.
	IsAuthenticated bool
	// IsLoading reports an in-flight login or register attempt.
	IsLoading bool
	// Err is the failure of the most recent login/register attempt, or nil.
	Err *apperr.AppError
}

// Snapshot returns the current observable state.
//
// The returned User is a copy; mutating it never affects the store.
func (service *Service) Snapshot() State {
	service.mu.Lock()
	defer service.mu.Unlock()

	var user *User
	if service.user != nil {
		copied := *service.user
		user = &copied
	}

	return State{
		User:            user,
		IsAuthenticated: service.user != nil,
		IsLoading:       service.loading,
		Err:             service.err,
	}
}

// IsAuthenticated reports whether a current user is present.
func (service *Service) IsAuthenticated() bool {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.user != nil
}

// CurrentUser returns a copy of the current user, or nil when unauthenticated.
func (service *Service) CurrentUser() *User {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.user == nil {
		return nil
	}
	copied := *service.user
	return &copied
}

// # Authentication Flow

/*
Login authenticates the given credentials and establishes the session.

Description: Transitions to loading, clears any stale error, verifies the
credentials against the auth service, mints an access token, and persists the
session envelope.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - error: apperr.Unauthorized for invalid credentials, apperr.Unavailable for
    transport failures. The same error is also retained on [State.Err] so the
    login surface can render a retryable message.
*/
func (service *Service) Login(context context.Context, email, password string) error {

	// Enter the loading phase; a stale error must never color a new attempt.
	service.mu.Lock()
	service.loading = true
	service.err = nil
	service.mu.Unlock()

	// Suspend on the collaborator without holding the lock.
	user, err := service.authService.Authenticate(context, email, password)

	service.mu.Lock()
	defer service.mu.Unlock()
	service.loading = false

	if err != nil {
		failure := apperr.Wrap(err, "login")
		service.err = failure
		service.logger.Warn("session_login_failed", slog.String("code", failure.Code))
		return failure
	}

	service.establishLocked(context, user)
	service.logger.Info("session_login_succeeded", slog.String("user_id", user.ID))

	return nil
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	DisplayName     string
}

/*
Register enrolls a new account and treats it as authenticated immediately.

Description: Validates the input locally (nothing invalid ever reaches the
auth service), creates the account with zeroed counters and unverified status,
and establishes the session exactly as a successful login would.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - error: apperr.ValidationError, apperr.Conflict, or transport failures.
    Also retained on [State.Err].
*/
func (service *Service) Register(context context.Context, input RegisterInput) error {

	// Reject invalid input before any collaborator call.
	v := &validate.Validator{}
	err := v.
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Username(FieldUsername, input.Username).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		Custom(FieldConfirmPassword, input.Password != input.ConfirmPassword, "Passwords do not match").
		Required(FieldDisplayName, input.DisplayName).
		MaxLen(FieldDisplayName, input.DisplayName, DisplayNameMaxLength).
		Err()
	if err != nil {
		failure := apperr.As(err)
		service.mu.Lock()
		service.err = failure
		service.mu.Unlock()
		return failure
	}

	service.mu.Lock()
	service.loading = true
	service.err = nil
	service.mu.Unlock()

	user, err := service.authService.CreateAccount(context, input)

	service.mu.Lock()
	defer service.mu.Unlock()
	service.loading = false

	if err != nil {
		failure := apperr.Wrap(err, "register")
		service.err = failure
		service.logger.Warn("session_register_failed", slog.String("code", failure.Code))
		return failure
	}

	service.establishLocked(context, user)
	service.logger.Info("session_register_succeeded", slog.String("user_id", user.ID))

	return nil
}

// establishLocked installs the user and persists the session envelope.
// Callers must hold service.mu.
func (service *Service) establishLocked(context context.Context, user *User) {
	service.user = user
	service.err = nil

	envelope := &Session{User: *user, ExpiresAt: time.Now().Add(AccessTokenTTL)}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		// The in-memory session is still valid; only restart rehydration is lost.
		service.logger.Error("session_token_mint_failed", slog.Any("error", err))
	} else {
		envelope.AccessToken = token
	}

	if err := service.storage.Save(context, envelope); err != nil {
		service.logger.Warn("session_persist_failed", slog.Any("error", err))
	}
}

/*
Logout clears the session. It always succeeds.

Description: Drops the current user and error, and removes the persisted
record. Storage failures are logged, never surfaced — the in-memory state is
cleared regardless.

Parameters:
  - context: context.Context
*/
func (service *Service) Logout(context context.Context) {
	service.mu.Lock()
	service.user = nil
	service.err = nil
	service.mu.Unlock()

	if err := service.storage.Clear(context); err != nil {
		service.logger.Warn("session_clear_failed", slog.Any("error", err))
	}

	service.logger.Info("session_logged_out")
}

// # Profile Updates

// UpdateUserInput defines the mutable subset of profile fields.
// A nil field means "leave unchanged".
type UpdateUserInput struct {
	Username    *string
	Email       *string
	DisplayName *string
	AvatarURL   *string
	Bio         *string
}

/*
UpdateUser merges partial profile changes into the current user.

Description: A no-op when unauthenticated. Identity keys cannot be cleared: a
provided username must remain a valid routing key, and the user ID is not
updatable at all. The merged user is re-persisted.

Parameters:
  - context: context.Context
  - input: UpdateUserInput

Returns:
  - error: apperr.ValidationError for rejected fields
*/
func (service *Service) UpdateUser(context context.Context, input UpdateUserInput) error {

	// Username and email stay structurally valid; empty values are rejected,
	// never merged.
	v := &validate.Validator{}
	if input.Username != nil {
		v.Required(FieldUsername, *input.Username).
			MinLen(FieldUsername, *input.Username, UsernameMinLength).
			MaxLen(FieldUsername, *input.Username, UsernameMaxLength).
			Username(FieldUsername, *input.Username)
	}
	if input.Email != nil {
		v.Email(FieldEmail, *input.Email)
	}
	if input.Bio != nil {
		v.MaxLen(FieldBio, *input.Bio, BioMaxLength)
	}
	if input.DisplayName != nil {
		v.Required(FieldDisplayName, *input.DisplayName).
			MaxLen(FieldDisplayName, *input.DisplayName, DisplayNameMaxLength)
	}
	if err := v.Err(); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	// Unauthenticated: nothing to merge into.
	if service.user == nil {
		return nil
	}

	// Apply delta updates
	if input.Username != nil {
		service.user.Username = *input.Username
	}
	if input.Email != nil {
		service.user.Email = *input.Email
	}
	if input.DisplayName != nil {
		service.user.DisplayName = *input.DisplayName
	}
	if input.AvatarURL != nil {
		service.user.AvatarURL = *input.AvatarURL
	}
	if input.Bio != nil {
		service.user.Bio = *input.Bio
	}
	service.user.UpdatedAt = time.Now()

	service.establishLocked(context, service.user)
	service.logger.Info("session_user_updated", slog.String("user_id", service.user.ID))

	return nil
}

// # Rehydration

/*
CheckAuth rehydrates the session from durable storage at startup.

Description: Loads the persisted envelope and verifies its access token. An
absent record, a corrupt payload (self-healed by the storage), or an expired/
invalid token all resolve to a clean unauthenticated state — corruption is
recovered silently and never surfaced to the viewer. On success the call is
idempotent and side-effect-free.

Parameters:
  - context: context.Context
*/
func (service *Service) CheckAuth(context context.Context) {
	envelope, err := service.storage.Load(context)

	if err != nil {
		// Transport failure: stay unauthenticated but leave the stored
		// record alone; it may be readable on the next launch.
		service.logger.Warn("session_rehydrate_failed", slog.Any("error", err))
		service.reset()
		return
	}

	if envelope == nil {
		service.reset()
		return
	}

	// A stale or tampered token invalidates the whole record.
	if _, err := service.tokens.VerifyToken(envelope.AccessToken); err != nil {
		service.logger.Info("session_token_rejected", slog.Any("error", err))
		if clearErr := service.storage.Clear(context); clearErr != nil {
			service.logger.Warn("session_clear_failed", slog.Any("error", clearErr))
		}
		service.reset()
		return
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	user := envelope.User
	service.user = &user
	service.loading = false

	service.logger.Info("session_rehydrated", slog.String("user_id", user.ID))
}

// reset returns the store to a clean unauthenticated state.
func (service *Service) reset() {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.user = nil
	service.loading = false
}

// ClearError clears the retained attempt error without affecting other fields.
func (service *Service) ClearError() {
	service.mu.Lock()
	defer service.mu.Unlock()
	service.err = nil
}
