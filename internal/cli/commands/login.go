package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password, serverAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SUDS_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SUDS_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Store environment alias from suds.json")

	return cmd
}

func runLogin(email, password, serverAlias string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("SUDS_EMAIL")
	}
	if password == "" {
		password = os.Getenv("SUDS_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or SUDS_EMAIL env var)")
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	sess, _ := anonymousSession(server)

	fmt.Printf("Logging in to %s (%s)...\n", server.Alias, server.URL)

	if err := sess.Login(context.Background(), email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user := sess.User()
	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", user.Username, user.Email)
	if sess.IsSuperUser() {
		fmt.Println("  Role: SuperUser")
	} else if sess.IsAdmin() {
		fmt.Println("  Role: Admin")
	}

	return nil
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or SUDS_PASSWORD env var)")
	}

	fmt.Print(label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println() // New line after password input
	return string(bytePassword), nil
}
