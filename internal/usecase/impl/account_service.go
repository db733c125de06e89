// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "ecell/internal/delivery/context"
	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/domain/repository"
	"ecell/internal/domain/service"
	"ecell/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// uidNotFound is stored as the account ID when the auth provider reports a
// session without a UID right after signup. The write still goes through;
// the broken key surfaces on the next load instead of failing the signup.
const uidNotFound = "error_uid_not_found"

// accountService implements the AccountUsecase interface. It reconciles the
// remote account record (auth provider + document store) with the local
// cache; remote state always wins.
type accountService struct {
	auth     service.AuthSource
	remote   service.RemoteAccountSource
	cache    repository.AccountCache
	hasher   service.PasswordHasher
	validate *validator.Validate
	logger   *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	Auth   service.AuthSource
	Remote service.RemoteAccountSource
	Cache  repository.AccountCache
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		auth:     params.Auth,
		remote:   params.Remote,
		cache:    params.Cache,
		hasher:   params.Hasher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   params.Logger,
	}
}

// log returns an operation-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credential pair, then loads the account for the
// signed-in identity through the local-first path.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*entity.Account, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	if err := srv.validate.Struct(input); err != nil {
		srv.log(ctx).Warn("Login input validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrValidationFailed.WrapMessage("login input validation failed")
	}

	// The session commit must survive caller cancellation: once the provider
	// accepts the credentials, the local cache has to catch up.
	ctx = context.WithoutCancel(ctx)

	if err := srv.auth.SignIn(ctx, input.Email, input.Password); err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to sign in")
	}

	account, err := srv.LoadAccount(ctx, srv.currentKey())
	if err != nil {
		srv.log(ctx).Warn("Login failed to load account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load account after sign in")
	}

	srv.log(ctx).Debug("Login completed", slog.String("accountID", account.ID))

	return account, nil
}

// Signup registers a new member: duplicate-key validation, identity creation,
// account document write, then a load of the canonical copy which caches it.
// The duplicate check and the create are separate remote calls; a concurrent
// signup with the same email or library id can still race past the check.
func (srv *accountService) Signup(ctx context.Context, input usecase.SignupInput) (*entity.Account, error) {
	srv.log(ctx).Debug("Starting signup", slog.String("email", input.Email), slog.String("libraryID", input.LibraryID))

	if err := srv.validate.Struct(input); err != nil {
		srv.log(ctx).Warn("Signup input validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrValidationFailed.WrapMessage("signup input validation failed")
	}

	ctx = context.WithoutCancel(ctx)

	if err := srv.checkDuplicates(ctx, input.Email, input.LibraryID); err != nil {
		return nil, err
	}

	identity, err := srv.auth.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register identity")
	}

	uid := uidNotFound
	if identity != nil && identity.UID != "" {
		uid = identity.UID
	} else {
		srv.log(ctx).Error("Signup produced no UID, storing sentinel key", slog.String("email", input.Email))
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash credential placeholder", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	account := entity.NewAccount(uid, input.Name, input.Email, hashed, input.LibraryID, input.PhoneNumber)

	// No compensation on failure here: the auth identity already exists and
	// stays. The caller sees the creation error; the identity remains for a
	// later retry of the document write.
	if err := srv.remote.Create(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to create account document", slog.String("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account document")
	}

	canonical, err := srv.LoadAccount(ctx, account.ID)
	if err != nil {
		srv.log(ctx).Warn("Signup created the account but failed to load it back", slog.String("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load account after signup")
	}

	srv.log(ctx).Debug("Signup completed", slog.String("accountID", canonical.ID))

	return canonical, nil
}

// checkDuplicates rejects a signup when the email or library id is already
// registered. Email is checked first; its error wins when both collide.
func (srv *accountService) checkDuplicates(ctx context.Context, email, libraryID string) error {
	_, err := srv.remote.FindByEmail(ctx, email)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Signup rejected, email taken", slog.String("email", email))

		return domainerrors.ErrEmailAlreadyExists.WrapMessage("signup duplicate check")
	case !errors.Is(err, domainerrors.ErrNoDocumentsFound):
		return errors.Wrap(err, "failed to check email uniqueness")
	}

	_, err = srv.remote.FindByLibraryID(ctx, libraryID)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Signup rejected, library id taken", slog.String("libraryID", libraryID))

		return domainerrors.ErrDuplicateEntry.WrapMessage("signup duplicate check")
	case !errors.Is(err, domainerrors.ErrNoDocumentsFound):
		return errors.Wrap(err, "failed to check library id uniqueness")
	}

	return nil
}

// LoadAccount serves the account local-first. Any cache failure, miss or
// engine fault alike, falls back to the remote store; a remote hit is written
// back through to the cache.
func (srv *accountService) LoadAccount(ctx context.Context, key string) (*entity.Account, error) {
	cached, err := srv.cache.GetByKey(ctx, key)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, repository.ErrCacheMiss) {
		srv.log(ctx).Warn("Cache read failed, falling back to remote", slog.String("accountID", key), slog.Any("error", err))
	}

	account, err := srv.remote.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNoDocumentsFound) {
			return nil, domainerrors.ErrDocumentNotFound.WrapMessage("account lookup by key")
		}

		return nil, errors.Wrap(err, "failed to load account from remote")
	}

	srv.cacheThrough(ctx, account)

	return account, nil
}

// EditDetails updates the cached account row only. Remote state stays as-is;
// the portal back office reconciles edits out of band.
func (srv *accountService) EditDetails(ctx context.Context, account *entity.Account) error {
	if err := srv.cache.Update(ctx, account); err != nil {
		srv.log(ctx).Warn("Failed to update cached account", slog.String("accountID", account.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to update cached account")
	}
	srv.log(ctx).Debug("Account details updated locally", slog.String("accountID", account.ID))

	return nil
}

// Logout deletes the cached row strictly before provider sign-out. A failed
// delete aborts the logout so a signed-out device can never keep stale
// account data.
func (srv *accountService) Logout(ctx context.Context, key string) error {
	ctx = context.WithoutCancel(ctx)

	if err := srv.cache.DeleteByKey(ctx, key); err != nil {
		srv.log(ctx).Error("Failed to delete cached account, aborting logout", slog.String("accountID", key), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete cached account")
	}

	if err := srv.auth.SignOut(ctx); err != nil {
		srv.log(ctx).Warn("Sign out failed after cache delete", slog.String("accountID", key), slog.Any("error", err))

		return errors.Wrap(err, "failed to sign out")
	}
	srv.log(ctx).Debug("Logout completed", slog.String("accountID", key))

	return nil
}

// CurrentUser returns the identity of the active session, or nil when signed out.
func (srv *accountService) CurrentUser() *entity.User {
	return srv.auth.Current()
}

// WatchUser streams auth-state changes, starting with the current state.
func (srv *accountService) WatchUser() (<-chan *entity.User, func()) {
	return srv.auth.Watch()
}

// currentKey resolves the canonical account key of the active session,
// degrading to the sentinel when the provider reports none.
func (srv *accountService) currentKey() string {
	if identity := srv.auth.Current(); identity != nil && identity.UID != "" {
		return identity.UID
	}

	return uidNotFound
}

// cacheThrough writes the account into the local cache. Failure is logged and
// swallowed: the remote call already succeeded and the cache is disposable.
func (srv *accountService) cacheThrough(ctx context.Context, account *entity.Account) {
	if err := srv.cache.Upsert(ctx, account); err != nil {
		srv.log(ctx).Warn("Write-through cache failed", slog.String("accountID", account.ID), slog.Any("error", err))
	}
}
