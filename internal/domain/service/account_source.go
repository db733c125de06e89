package service

import (
	"context"

	"ecell/internal/domain/entity"
)

// RemoteAccountSource abstracts the authoritative account document store.
// Lookups are equality queries on a single field; zero matches surface the
// remote NO_DOCUMENTS_FOUND value so callers can tell "absent" from "failed".
type RemoteAccountSource interface {
	// Create writes the account document. The document name is derived from
	// the account's display name and ID by the implementation.
	Create(ctx context.Context, account *entity.Account) error

	// FindByKey retrieves the account whose id field equals the canonical key.
	FindByKey(ctx context.Context, key string) (*entity.Account, error)

	// FindByEmail retrieves the account registered with the given email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByLibraryID retrieves the account holding the given library card.
	FindByLibraryID(ctx context.Context, libraryID string) (*entity.Account, error)

	// TeamMembers lists every account whose account type marks it a team
	// member.
	TeamMembers(ctx context.Context) ([]*entity.Account, error)
}
