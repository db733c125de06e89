// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ecell/internal/domain/entity"
)

// ErrCacheMiss is a domain-specific error returned when the cache holds no
// row for the requested key. A miss is an expected outcome, distinct from a
// cache-engine failure.
var ErrCacheMiss = errors.New("account not cached")

// AccountCache defines the standard operations of the on-device cache store.
// The application layer will depend on this interface, not the concrete implementation.
type AccountCache interface {
	// Upsert inserts the account or replaces the cached row with the same ID.
	Upsert(ctx context.Context, account *entity.Account) error

	// GetByKey retrieves the cached account with the given canonical key.
	// Returns ErrCacheMiss when no row exists.
	GetByKey(ctx context.Context, key string) (*entity.Account, error)

	// Update modifies the cached row with the account's ID. The row must
	// already exist; updating an absent row is an error.
	Update(ctx context.Context, account *entity.Account) error

	// DeleteByKey removes the cached row with the given canonical key.
	// Deleting an absent row is a no-op.
	DeleteByKey(ctx context.Context, key string) error
}
