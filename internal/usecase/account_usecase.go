// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ecell/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SignupInput defines the data required to register a new member account.
type SignupInput struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	LibraryID       string `validate:"required"`
	PhoneNumber     string `validate:"required"`
}

// AccountUsecase defines the account synchronization operations the delivery
// layer depends on. Remote state (auth provider + document store) is the
// source of truth; the local cache is a disposable per-device projection.
type AccountUsecase interface {
	// Login verifies the credentials with the auth provider, then loads the
	// matching account local-first with remote fallback and write-through
	// caching. A caching failure is logged, never surfaced: login succeeds
	// once remote state agrees.
	Login(ctx context.Context, input LoginInput) (*entity.Account, error)

	// Signup registers the identity with the auth provider, validates that
	// email and library id are not already taken, writes the account
	// document, and returns the canonical copy fetched and cached through
	// LoadAccount. The duplicate check and the write are not atomic; a
	// concurrent signup can still slip through.
	Signup(ctx context.Context, input SignupInput) (*entity.Account, error)

	// LoadAccount returns the account for the canonical key, serving from
	// the local cache first and falling back to the remote store on any
	// cache failure. A remote hit is written through to the cache.
	LoadAccount(ctx context.Context, key string) (*entity.Account, error)

	// EditDetails updates the locally cached account only. Remote state is
	// deliberately untouched.
	EditDetails(ctx context.Context, account *entity.Account) error

	// Logout deletes the cached account before signing out of the auth
	// provider, so a sign-out failure can never leave stale local data.
	Logout(ctx context.Context, key string) error

	// CurrentUser returns the identity of the active session, or nil when
	// signed out.
	CurrentUser() *entity.User

	// WatchUser streams the identity on every auth-state change, starting
	// with the current state. Cancel releases the subscription.
	WatchUser() (<-chan *entity.User, func())
}
