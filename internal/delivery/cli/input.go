// Package cli is the interactive front end over the account and team
// usecases. It is the thinnest possible driver: prompt, call the facade,
// print the outcome.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptLine prints a prompt and reads one trimmed line. A partial line at
// EOF still counts.
func promptLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", errors.Wrap(err, "write prompt")
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}

		return "", errors.Wrap(err, "read input")
	}

	return strings.TrimSpace(line), nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", errors.Wrap(err, "write prompt")
	}

	pw, err := readPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}

	return string(pw), nil
}

// promptOptional reads one line and keeps the current value on blank input.
func promptOptional(reader *bufio.Reader, w io.Writer, prompt, current string) (string, error) {
	value, err := promptLine(reader, w, fmt.Sprintf("%s [%s]", prompt, current))
	if err != nil {
		return "", err
	}
	if value == "" {
		return current, nil
	}

	return value, nil
}
