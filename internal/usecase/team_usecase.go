package usecase

import (
	"context"

	"ecell/internal/domain/entity"
)

// TeamUsecase exposes the organization's member directory.
type TeamUsecase interface {
	// TeamMembers lists every verified team-member account from the remote
	// store.
	TeamMembers(ctx context.Context) ([]*entity.Account, error)
}
