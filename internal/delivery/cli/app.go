package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	deliverycontext "ecell/internal/delivery/context"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// App drives the account and team usecases from an interactive prompt.
type App struct {
	accounts usecase.AccountUsecase
	team     usecase.TeamUsecase
	in       *bufio.Reader
	out      io.Writer
	logger   *slog.Logger
}

// Params holds dependencies for the CLI app, injected by Fx.
type Params struct {
	fx.In

	Accounts usecase.AccountUsecase
	Team     usecase.TeamUsecase
	Logger   *slog.Logger
}

// NewApp is the constructor for App.
func NewApp(params Params, in io.Reader, out io.Writer) *App {
	return &App{
		accounts: params.Accounts,
		team:     params.Team,
		in:       bufio.NewReader(in),
		out:      out,
		logger:   params.Logger,
	}
}

// opContext stamps the context with a fresh operation ID and a logger
// carrying it, so one command's log lines correlate.
func (a *App) opContext(ctx context.Context, command string) context.Context {
	opID := deliverycontext.NewOperationID()
	ctx = deliverycontext.WithOperationID(ctx, opID)

	return deliverycontext.WithLogger(ctx, a.logger.With(
		slog.String("operationId", opID),
		slog.String("command", command),
	))
}

// report prints the outcome of a command; taxonomy errors surface their
// static user-facing message plus classification hints. Anything outside the
// taxonomies is downgraded to the remote UNKNOWN value here, the outermost
// boundary.
func (a *App) report(err error) {
	if err == nil {
		return
	}

	var de domainerrors.DataError
	if !errors.As(err, &de) {
		de = domainerrors.AsRemote(err)
	}

	msg := de.Message()
	if de.Recoverable() {
		msg += " (you can retry)"
	}
	if de.RequiresAuth() {
		msg += " (please login again)"
	}
	fmt.Fprintln(a.out, msg)
}

func (a *App) login(ctx context.Context) error {
	email, err := promptLine(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		return err
	}

	account, err := a.accounts.Login(a.opContext(ctx, "login"), usecase.LoginInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		a.report(err)

		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", account.Name)

	return nil
}

func (a *App) signup(ctx context.Context) error {
	name, err := promptLine(a.in, a.out, "Full name")
	if err != nil {
		return err
	}
	email, err := promptLine(a.in, a.out, "Email")
	if err != nil {
		return err
	}
	libraryID, err := promptLine(a.in, a.out, "Library ID")
	if err != nil {
		return err
	}
	phone, err := promptLine(a.in, a.out, "Phone number")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}

	account, err := a.accounts.Signup(a.opContext(ctx, "signup"), usecase.SignupInput{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		LibraryID:       libraryID,
		PhoneNumber:     phone,
	})
	if err != nil {
		a.report(err)

		return nil
	}
	fmt.Fprintf(a.out, "Account created for %s. Verification status: %s.\n", account.Name, account.Status)

	return nil
}

func (a *App) showAccount(ctx context.Context) error {
	current := a.accounts.CurrentUser()
	if current == nil {
		fmt.Fprintln(a.out, "Not logged in.")

		return nil
	}

	account, err := a.accounts.LoadAccount(a.opContext(ctx, "account"), current.UID)
	if err != nil {
		a.report(err)

		return nil
	}

	fmt.Fprintf(a.out, "Name:        %s\n", account.Name)
	fmt.Fprintf(a.out, "Email:       %s\n", account.Email)
	fmt.Fprintf(a.out, "Library ID:  %s\n", account.LibraryID)
	fmt.Fprintf(a.out, "Phone:       %s\n", account.PhoneNumber)
	fmt.Fprintf(a.out, "Branch:      %s\n", account.Branch)
	fmt.Fprintf(a.out, "Year:        %s\n", account.Year)
	fmt.Fprintf(a.out, "Designation: %s\n", account.Designation)
	fmt.Fprintf(a.out, "Status:      %s\n", account.Status)

	return nil
}

func (a *App) editDetails(ctx context.Context) error {
	current := a.accounts.CurrentUser()
	if current == nil {
		fmt.Fprintln(a.out, "Not logged in.")

		return nil
	}

	opCtx := a.opContext(ctx, "edit")
	account, err := a.accounts.LoadAccount(opCtx, current.UID)
	if err != nil {
		a.report(err)

		return nil
	}

	fmt.Fprintln(a.out, "Blank keeps the current value.")
	if account.PhoneNumber, err = promptOptional(a.in, a.out, "Phone number", account.PhoneNumber); err != nil {
		return err
	}
	if account.Branch, err = promptOptional(a.in, a.out, "Branch", account.Branch); err != nil {
		return err
	}
	if account.Year, err = promptOptional(a.in, a.out, "Year", account.Year); err != nil {
		return err
	}
	if account.City, err = promptOptional(a.in, a.out, "City", account.City); err != nil {
		return err
	}
	if account.LinkedinURL, err = promptOptional(a.in, a.out, "LinkedIn", account.LinkedinURL); err != nil {
		return err
	}

	if err := a.accounts.EditDetails(opCtx, account); err != nil {
		a.report(err)

		return nil
	}
	fmt.Fprintln(a.out, "Saved locally.")

	return nil
}

func (a *App) listTeam(ctx context.Context) error {
	members, err := a.team.TeamMembers(a.opContext(ctx, "team"))
	if err != nil {
		a.report(err)

		return nil
	}

	for _, member := range members {
		fmt.Fprintf(a.out, "%-24s %-20s %s\n", member.Name, member.Designation, member.Domain)
	}

	return nil
}

func (a *App) logout(ctx context.Context) error {
	current := a.accounts.CurrentUser()
	if current == nil {
		fmt.Fprintln(a.out, "Not logged in.")

		return nil
	}

	if err := a.accounts.Logout(a.opContext(ctx, "logout"), current.UID); err != nil {
		a.report(err)

		return nil
	}
	fmt.Fprintln(a.out, "Logged out.")

	return nil
}

func (a *App) status() string {
	if current := a.accounts.CurrentUser(); current != nil {
		return current.Email
	}

	return "guest"
}
