package cli

import (
	"context"
	"fmt"
	"strings"
)

const helpText = `Commands:
  login    Sign in with email and password
  signup   Create a new member account
  account  Show the current member's details
  edit     Edit locally stored details
  team     List team members
  logout   Sign out and clear the local cache
  whoami   Show the signed-in email
  help     Show this help
  exit     Quit`

// Run reads commands until exit or EOF. Command errors are reported to the
// user and never stop the loop; only input stream failures do.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "E-Cell member portal. Type 'help' for commands.")

	for {
		fmt.Fprintf(a.out, "%s> ", a.status())

		line, err := a.in.ReadString('\n')
		command := strings.TrimSpace(line)
		if command == "" {
			if err != nil {
				return nil
			}

			continue
		}

		if dispatchErr := a.dispatch(ctx, command); dispatchErr != nil {
			return dispatchErr
		}
		if command == "exit" || err != nil {
			return nil
		}
	}
}

func (a *App) dispatch(ctx context.Context, command string) error {
	switch command {
	case "login":
		return a.login(ctx)
	case "signup":
		return a.signup(ctx)
	case "account":
		return a.showAccount(ctx)
	case "edit":
		return a.editDetails(ctx)
	case "team":
		return a.listTeam(ctx)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		fmt.Fprintln(a.out, a.status())
	case "help":
		fmt.Fprintln(a.out, helpText)
	case "exit":
	default:
		fmt.Fprintf(a.out, "Unknown command %q. Type 'help' for commands.\n", command)
	}

	return nil
}
