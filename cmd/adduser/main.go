package main

import (
	"bufio"   // Non-terminal password input
	"context" // Store calls
	"errors"  // Error inspection
	"flag"    // Command-line flags
	"fmt"     // Output
	"io"      // Injected streams
	"os"      // Process streams
	"strings" // Input trimming

	"finance_tracker/internal/config"  // Configuration
	"finance_tracker/internal/db"      // Database connection
	"finance_tracker/internal/domain"  // Error taxonomy
	"finance_tracker/internal/service" // Credential service
	"finance_tracker/internal/store"   // Persistence

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/term"          // Hidden password prompt
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, config.LoadConfig()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, cfg *config.Config) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Login email")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -name <name> -email <email> [-password <password>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: name, email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) // Print newline after password input
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	log := logrus.New()
	log.SetOutput(stderr)
	gdb, err := db.Open(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close(gdb)
	if cfg.DBDriver == config.DriverSQLite {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	creds := service.NewCredentialService(store.NewUserStore(gdb), cfg.JWTSecret)
	user, err := creds.Register(context.Background(), *name, *email, password)
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("user %s already exists", *email)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Email, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
