package cli

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/usecase"
)

type stubAccounts struct {
	loginFn       func(ctx context.Context, input usecase.LoginInput) (*entity.Account, error)
	signupFn      func(ctx context.Context, input usecase.SignupInput) (*entity.Account, error)
	loadAccountFn func(ctx context.Context, key string) (*entity.Account, error)
	editDetailsFn func(ctx context.Context, account *entity.Account) error
	logoutFn      func(ctx context.Context, key string) error
	currentUserFn func() *entity.User
}

func (s *stubAccounts) Login(ctx context.Context, input usecase.LoginInput) (*entity.Account, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAccounts) Signup(ctx context.Context, input usecase.SignupInput) (*entity.Account, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAccounts) LoadAccount(ctx context.Context, key string) (*entity.Account, error) {
	return s.loadAccountFn(ctx, key)
}

func (s *stubAccounts) EditDetails(ctx context.Context, account *entity.Account) error {
	return s.editDetailsFn(ctx, account)
}

func (s *stubAccounts) Logout(ctx context.Context, key string) error {
	return s.logoutFn(ctx, key)
}

func (s *stubAccounts) CurrentUser() *entity.User {
	if s.currentUserFn != nil {
		return s.currentUserFn()
	}

	return nil
}

func (s *stubAccounts) WatchUser() (<-chan *entity.User, func()) {
	ch := make(chan *entity.User)

	return ch, func() { close(ch) }
}

type stubTeam struct {
	teamMembersFn func(ctx context.Context) ([]*entity.Account, error)
}

func (s *stubTeam) TeamMembers(ctx context.Context) ([]*entity.Account, error) {
	return s.teamMembersFn(ctx)
}

func newTestApp(input string, accounts *stubAccounts, team *stubTeam) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := &App{
		accounts: accounts,
		team:     team,
		in:       bufio.NewReader(strings.NewReader(input)),
		out:      out,
		logger:   slog.New(slog.DiscardHandler),
	}

	return app, out
}

func TestRun_LoginCommand(t *testing.T) {
	restore := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("hunter2pass"), nil }
	defer func() { readPassword = restore }()

	var got usecase.LoginInput
	accounts := &stubAccounts{
		loginFn: func(_ context.Context, input usecase.LoginInput) (*entity.Account, error) {
			got = input

			return &entity.Account{ID: "uid-1", Name: "Asha Rao"}, nil
		},
	}

	app, out := newTestApp("login\nasha@kiet.edu\nexit\n", accounts, &stubTeam{})

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "asha@kiet.edu", got.Email)
	assert.Equal(t, "hunter2pass", got.Password)
	assert.Contains(t, out.String(), "Logged in as Asha Rao.")
}

func TestRun_LoginFailureReportsAndContinues(t *testing.T) {
	restore := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("wrong"), nil }
	defer func() { readPassword = restore }()

	accounts := &stubAccounts{
		loginFn: func(context.Context, usecase.LoginInput) (*entity.Account, error) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login")
		},
	}

	app, out := newTestApp("login\nasha@kiet.edu\nwhoami\nexit\n", accounts, &stubTeam{})

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), domainerrors.ErrInvalidCredentials.Message())
	assert.Contains(t, out.String(), "guest")
}

func TestRun_TeamCommand(t *testing.T) {
	team := &stubTeam{
		teamMembersFn: func(context.Context) ([]*entity.Account, error) {
			return []*entity.Account{
				{Name: "Asha Rao", Designation: "Lead", Domain: "Technical"},
			}, nil
		},
	}

	app, out := newTestApp("team\nexit\n", &stubAccounts{}, team)

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Asha Rao")
	assert.Contains(t, out.String(), "Lead")
}

func TestRun_AccountRequiresLogin(t *testing.T) {
	app, out := newTestApp("account\nexit\n", &stubAccounts{}, &stubTeam{})

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Not logged in.")
}

func TestRun_LogoutCommand(t *testing.T) {
	var loggedOutKey string
	accounts := &stubAccounts{
		currentUserFn: func() *entity.User {
			return &entity.User{UID: "uid-1", Email: "asha@kiet.edu"}
		},
		logoutFn: func(_ context.Context, key string) error {
			loggedOutKey = key

			return nil
		},
	}

	app, out := newTestApp("logout\nexit\n", accounts, &stubTeam{})

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, "uid-1", loggedOutKey)
	assert.Contains(t, out.String(), "Logged out.")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, out := newTestApp("frobnicate\nexit\n", &stubAccounts{}, &stubTeam{})

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), `Unknown command "frobnicate"`)
}

func TestRun_EOFStopsLoop(t *testing.T) {
	app, _ := newTestApp("whoami\n", &stubAccounts{}, &stubTeam{})

	require.NoError(t, app.Run(context.Background()))
}

func TestPromptOptional_BlankKeepsCurrent(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("\nnew-value\n"))
	out := &bytes.Buffer{}

	kept, err := promptOptional(reader, out, "Branch", "CSE")
	require.NoError(t, err)
	assert.Equal(t, "CSE", kept)

	changed, err := promptOptional(reader, out, "Branch", "CSE")
	require.NoError(t, err)
	assert.Equal(t, "new-value", changed)
}

func TestReport_TaxonomyHints(t *testing.T) {
	out := &bytes.Buffer{}
	app := &App{out: out}

	app.report(domainerrors.ErrUnauthorized.WrapMessage("fetch"))

	assert.Contains(t, out.String(), domainerrors.ErrUnauthorized.Message())
	assert.Contains(t, out.String(), "please login again")
}
