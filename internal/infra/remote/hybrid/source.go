// Package hybrid composes the Firestore and portal-API account sources.
// Writes and single-account lookups always hit Firestore, the source of
// truth; the team-member listing can be routed through the API with an
// optional Firestore fallback, both behind config flags.
package hybrid

import (
	"context"
	"log/slog"

	"ecell/config"
	"ecell/internal/domain/entity"
	"ecell/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type hybridSource struct {
	store             service.RemoteAccountSource // Firestore, authoritative
	api               service.RemoteAccountSource // portal HTTP API
	useAPIForTeam     bool
	enableAPIFallback bool
	logger            *slog.Logger
}

// SourceParams holds dependencies for the hybrid source, injected by Fx.
type SourceParams struct {
	fx.In

	Store  service.RemoteAccountSource `name:"firestore"`
	API    service.RemoteAccountSource `name:"rest"`
	Config *config.Config
	Logger *slog.Logger
}

// NewSource is the constructor for hybridSource.
func NewSource(params SourceParams) service.RemoteAccountSource {
	useAPI := false
	fallback := false
	if params.Config != nil && params.Config.DataSource != nil {
		useAPI = params.Config.DataSource.UseAPIForTeamMembers
		fallback = params.Config.DataSource.EnableAPIFallback
	}

	return &hybridSource{
		store:             params.Store,
		api:               params.API,
		useAPIForTeam:     useAPI,
		enableAPIFallback: fallback,
		logger:            params.Logger,
	}
}

// Create always writes to the document store.
func (s *hybridSource) Create(ctx context.Context, account *entity.Account) error {
	return errors.WithStack(s.store.Create(ctx, account))
}

// FindByKey always reads from the document store.
func (s *hybridSource) FindByKey(ctx context.Context, key string) (*entity.Account, error) {
	account, err := s.store.FindByKey(ctx, key)

	return account, errors.WithStack(err)
}

// FindByEmail always reads from the document store.
func (s *hybridSource) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	account, err := s.store.FindByEmail(ctx, email)

	return account, errors.WithStack(err)
}

// FindByLibraryID always reads from the document store.
func (s *hybridSource) FindByLibraryID(ctx context.Context, libraryID string) (*entity.Account, error) {
	account, err := s.store.FindByLibraryID(ctx, libraryID)

	return account, errors.WithStack(err)
}

// TeamMembers routes through the API when enabled, falling back to the
// document store when the API fails and fallback is allowed.
func (s *hybridSource) TeamMembers(ctx context.Context) ([]*entity.Account, error) {
	if !s.useAPIForTeam {
		members, err := s.store.TeamMembers(ctx)

		return members, errors.WithStack(err)
	}

	members, err := s.api.TeamMembers(ctx)
	if err == nil {
		return members, nil
	}

	if !s.enableAPIFallback {
		return nil, errors.Wrap(err, "api team member listing failed")
	}

	s.logger.Warn("API team member listing failed, falling back to store", slog.Any("error", err))
	members, err = s.store.TeamMembers(ctx)

	return members, errors.WithStack(err)
}
