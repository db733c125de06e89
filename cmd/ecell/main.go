package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"ecell/config"
	"ecell/internal/delivery/cli"
	"ecell/internal/domain/service"
	"ecell/internal/infra/auth"
	"ecell/internal/infra/auth/firebase"
	"ecell/internal/infra/cache/sqlite"
	logs "ecell/internal/infra/log"
	"ecell/internal/infra/remote/firestore"
	"ecell/internal/infra/remote/hybrid"
	"ecell/internal/infra/remote/rest"
	"ecell/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		injectInfra(),
		injectRemote(),
		injectCache(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		fx.Invoke(
			runCLI,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		firebase.NewApp,
		firebase.NewAuthClient,
	)
}

type firestoreSourceOut struct {
	fx.Out

	Source service.RemoteAccountSource `name:"firestore"`
}

func newFirestoreSource(params firestore.AccountStoreParams) firestoreSourceOut {
	return firestoreSourceOut{Source: firestore.NewAccountStore(params)}
}

type restSourceOut struct {
	fx.Out

	Source service.RemoteAccountSource `name:"rest"`
}

// newRESTSource creates the portal API client; the API section is optional
// and a missing one yields a nil source, rejected later only if the
// configured provider actually needs it.
func newRESTSource(params rest.AccountClientParams) (restSourceOut, error) {
	if params.Config.API == nil || params.Config.API.BaseURL == "" {
		return restSourceOut{}, nil
	}

	client, err := rest.NewAccountClient(params)
	if err != nil {
		return restSourceOut{}, fmt.Errorf("failed to create api client: %w", err)
	}

	return restSourceOut{Source: client}, nil
}

type remoteSourceParams struct {
	fx.In

	Store  service.RemoteAccountSource `name:"firestore"`
	API    service.RemoteAccountSource `name:"rest"`
	Config *config.Config
	Logger *slog.Logger
}

// newRemoteSource picks the account source named by dataSource.provider.
func newRemoteSource(params remoteSourceParams) (service.RemoteAccountSource, error) {
	provider := config.ProviderFirebase
	if params.Config.DataSource != nil && params.Config.DataSource.Provider != "" {
		provider = params.Config.DataSource.Provider
	}

	switch provider {
	case config.ProviderFirebase:
		return params.Store, nil
	case config.ProviderREST:
		if params.API == nil {
			return nil, fmt.Errorf("provider %q requires the api config section", provider)
		}

		return params.API, nil
	case config.ProviderHybrid:
		if params.API == nil && params.Config.DataSource.UseAPIForTeamMembers {
			return nil, fmt.Errorf("provider %q requires the api config section", provider)
		}

		return hybrid.NewSource(hybrid.SourceParams{
			Store:  params.Store,
			API:    params.API,
			Config: params.Config,
			Logger: params.Logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown data source provider %q", provider)
	}
}

func injectRemote() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewClient,
			newFirestoreSource,
			newRESTSource,
			newRemoteSource,
		),
	)
}

func injectCache() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewDB,
			sqlite.NewAccountCache,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			firebase.NewAuthSource,
			firebase.NewTokenProvider,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewTeamService,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			newCLIApp,
		),
	)
}

func newCLIApp(params cli.Params) *cli.App {
	return cli.NewApp(params, os.Stdin, os.Stdout)
}

type runCLIParams struct {
	fx.In
	fx.Lifecycle

	App        *cli.App
	Shutdowner fx.Shutdowner
}

func runCLI(params runCLIParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := params.App.Run(context.Background()); err != nil {
					slog.Error("command loop failed", slog.Any("error", err))
				}
				if err := params.Shutdowner.Shutdown(); err != nil {
					slog.Error("shutdown failed", slog.Any("error", err))
					os.Exit(1)
				}
			}()

			return nil
		},
	})
}
