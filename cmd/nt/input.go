package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readContent returns the --content flag when set, otherwise whatever is
// piped on stdin. provided is false when neither source was used.
func readContent(cmd *cobra.Command) (content string, provided bool, err error) {
	if cmd.Flags().Changed("content") {
		content, _ = cmd.Flags().GetString("content")
		return content, true, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", false, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", false, fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), true, nil
}

// stdinLines is shared so consecutive prompts read consecutive lines of a
// piped stdin.
var stdinLines *bufio.Reader

// readPassphrase prompts on stderr and reads a passphrase without echo. When
// stdin is not a terminal the next line of stdin is used instead.
func readPassphrase(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		if stdinLines == nil {
			stdinLines = bufio.NewReader(cmd.InOrStdin())
		}
		line, err := stdinLines.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pass), nil
}
