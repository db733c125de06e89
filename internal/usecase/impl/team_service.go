package impl

import (
	"context"
	"log/slog"

	"ecell/config"
	deliverycontext "ecell/internal/delivery/context"
	"ecell/internal/domain/entity"
	"ecell/internal/domain/repository"
	"ecell/internal/domain/service"
	"ecell/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// teamService implements the TeamUsecase interface.
type teamService struct {
	remote           service.RemoteAccountSource
	cache            repository.AccountCache
	cacheTeamMembers bool
	logger           *slog.Logger
}

// TeamServiceParams holds dependencies for teamService, injected by Fx.
type TeamServiceParams struct {
	fx.In

	Remote service.RemoteAccountSource
	Cache  repository.AccountCache
	Config *config.Config
	Logger *slog.Logger
}

// NewTeamService is the constructor for teamService.
func NewTeamService(params TeamServiceParams) usecase.TeamUsecase {
	cacheTeamMembers := false
	if params.Config != nil && params.Config.DataSource != nil {
		cacheTeamMembers = params.Config.DataSource.CacheTeamMembers
	}

	return &teamService{
		remote:           params.Remote,
		cache:            params.Cache,
		cacheTeamMembers: cacheTeamMembers,
		logger:           params.Logger,
	}
}

func (srv *teamService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// TeamMembers lists the team-member accounts from the remote store. When
// directory caching is enabled, each member is upserted into the local cache;
// cache failures are logged, never surfaced.
func (srv *teamService) TeamMembers(ctx context.Context) ([]*entity.Account, error) {
	members, err := srv.remote.TeamMembers(ctx)
	if err != nil {
		srv.log(ctx).Warn("Failed to load team members", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load team members")
	}

	if srv.cacheTeamMembers {
		for _, member := range members {
			if err := srv.cache.Upsert(ctx, member); err != nil {
				srv.log(ctx).Warn("Failed to cache team member", slog.String("accountID", member.ID), slog.Any("error", err))
			}
		}
	}

	srv.log(ctx).Debug("Team members loaded", slog.Int("count", len(members)))

	return members, nil
}
