package impl

import (
	"context"
	"log/slog"

	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// mockAuthSource is a hand-rolled test double; unset funcs mean the call is
// unexpected and will panic the test.
type mockAuthSource struct {
	signInFn  func(ctx context.Context, email, password string) error
	signUpFn  func(ctx context.Context, email, password string) (*entity.User, error)
	signOutFn func(ctx context.Context) error
	currentFn func() *entity.User
	watchFn   func() (<-chan *entity.User, func())
}

func (m *mockAuthSource) SignIn(ctx context.Context, email, password string) error {
	return m.signInFn(ctx, email, password)
}

func (m *mockAuthSource) SignUp(ctx context.Context, email, password string) (*entity.User, error) {
	return m.signUpFn(ctx, email, password)
}

func (m *mockAuthSource) SignOut(ctx context.Context) error {
	return m.signOutFn(ctx)
}

func (m *mockAuthSource) Current() *entity.User {
	return m.currentFn()
}

func (m *mockAuthSource) Watch() (<-chan *entity.User, func()) {
	return m.watchFn()
}

type mockRemoteSource struct {
	createFn          func(ctx context.Context, account *entity.Account) error
	findByKeyFn       func(ctx context.Context, key string) (*entity.Account, error)
	findByEmailFn     func(ctx context.Context, email string) (*entity.Account, error)
	findByLibraryIDFn func(ctx context.Context, libraryID string) (*entity.Account, error)
	teamMembersFn     func(ctx context.Context) ([]*entity.Account, error)
}

func (m *mockRemoteSource) Create(ctx context.Context, account *entity.Account) error {
	return m.createFn(ctx, account)
}

func (m *mockRemoteSource) FindByKey(ctx context.Context, key string) (*entity.Account, error) {
	return m.findByKeyFn(ctx, key)
}

func (m *mockRemoteSource) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return m.findByEmailFn(ctx, email)
}

func (m *mockRemoteSource) FindByLibraryID(ctx context.Context, libraryID string) (*entity.Account, error) {
	return m.findByLibraryIDFn(ctx, libraryID)
}

func (m *mockRemoteSource) TeamMembers(ctx context.Context) ([]*entity.Account, error) {
	return m.teamMembersFn(ctx)
}

type mockAccountCache struct {
	upsertFn      func(ctx context.Context, account *entity.Account) error
	getByKeyFn    func(ctx context.Context, key string) (*entity.Account, error)
	updateFn      func(ctx context.Context, account *entity.Account) error
	deleteByKeyFn func(ctx context.Context, key string) error
}

func (m *mockAccountCache) Upsert(ctx context.Context, account *entity.Account) error {
	return m.upsertFn(ctx, account)
}

func (m *mockAccountCache) GetByKey(ctx context.Context, key string) (*entity.Account, error) {
	return m.getByKeyFn(ctx, key)
}

func (m *mockAccountCache) Update(ctx context.Context, account *entity.Account) error {
	return m.updateFn(ctx, account)
}

func (m *mockAccountCache) DeleteByKey(ctx context.Context, key string) error {
	return m.deleteByKeyFn(ctx, key)
}

type mockHasher struct {
	hashFn  func(password string) (string, error)
	checkFn func(password, hash string) bool
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFn != nil {
		return m.hashFn(password)
	}

	return "hashed:" + password, nil
}

func (m *mockHasher) Check(password, hash string) bool {
	if m.checkFn != nil {
		return m.checkFn(password, hash)
	}

	return hash == "hashed:"+password
}

func newTestAccountService(auth *mockAuthSource, remote *mockRemoteSource, cache *mockAccountCache) *accountService {
	return &accountService{
		auth:     auth,
		remote:   remote,
		cache:    cache,
		hasher:   &mockHasher{},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   slog.New(slog.DiscardHandler),
	}
}

func validSignupInput() usecase.SignupInput {
	return usecase.SignupInput{
		Name:            "Asha Rao",
		Email:           "asha@kiet.edu",
		Password:        "secret-pass-1",
		ConfirmPassword: "secret-pass-1",
		LibraryID:       "LIB-42",
		PhoneNumber:     "9999999999",
	}
}

// noDocuments is shorthand for the zero-match sentinel.
func noDocuments(context.Context, string) (*entity.Account, error) {
	return nil, domainerrors.ErrNoDocumentsFound.WrapMessage("query")
}
