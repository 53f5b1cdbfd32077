package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/klabast/wb-services/kleiderspende/internal/app"
)

// HashPassword handles the hash-password subcommand and returns the exit code
func HashPassword(args []string) int {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	overwrite := fs.Bool("overwrite", false, "Overwrite existing auth file without asking")
	authFile := fs.String("auth-file", "", "Path to auth file (env AUTH_FILE, default: auth.secret next to the binary)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kleiderspende hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates the credentials file for the registration view (Argon2id).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path, err := resolveAuthFile(*authFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	stdin := bufio.NewReader(os.Stdin)

	username, err := prompt(stdin, "Enter username: ")
	if err != nil || username == "" {
		fmt.Fprintf(os.Stderr, "Username cannot be empty\n")
		return 1
	}

	password, err := readPassword(stdin, "Enter password:   ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return 1
	}
	confirm, err := readPassword(stdin, "Confirm password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password confirmation: %v\n", err)
		return 1
	}

	if password == "" {
		fmt.Fprintf(os.Stderr, "Password cannot be empty\n")
		return 1
	}
	if password != confirm {
		fmt.Fprintf(os.Stderr, "Passwords do not match\n")
		return 1
	}

	if err := app.CreateAuthFile(path, username, password, *overwrite, stdin, os.Stdout); err != nil {
		if errors.Is(err, app.ErrAborted) {
			fmt.Fprintln(os.Stderr, "Aborted, auth file left unchanged")
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// resolveAuthFile applies the same precedence as the server: flag, AUTH_FILE, default
func resolveAuthFile(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := app.LoadConfig(nil)
	if err != nil {
		return "", err
	}
	return cfg.AuthFile, nil
}

func prompt(r *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo on a terminal and falls back to a plain
// line read when stdin is piped
func readPassword(r *bufio.Reader, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(r, label)
	}

	fmt.Print(label)
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}
