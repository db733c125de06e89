// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"

	"ecell/internal/domain/entity"
)

// AuthSource abstracts the external authentication provider. It owns the
// credential verification, identity creation, and session state; it never
// touches the account document or the local cache.
type AuthSource interface {
	// SignIn verifies the credential pair against the provider and, on
	// success, establishes the session for the matching identity.
	SignIn(ctx context.Context, email, password string) error

	// SignUp registers a new identity with the provider and establishes its
	// session. The returned identity carries the provider-assigned UID.
	SignUp(ctx context.Context, email, password string) (*entity.User, error)

	// SignOut tears down the current session. Safe to call when no session
	// is active.
	SignOut(ctx context.Context) error

	// Current returns the identity of the active session, or nil when
	// signed out.
	Current() *entity.User

	// Watch emits the identity on every auth-state change, starting with
	// the current state. The stream closes when the returned cancel func
	// is called or the source shuts down.
	Watch() (<-chan *entity.User, func())
}
