package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var username, email, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a store account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(username, email, password, serverAlias)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SUDS_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Store environment alias from suds.json")

	return cmd
}

func runRegister(username, email, password, serverAlias string) error {
	if email == "" {
		email = os.Getenv("SUDS_EMAIL")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag)")
	}
	if email == "" {
		return fmt.Errorf("email is required (use --email flag or SUDS_EMAIL env var)")
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	if password == "" {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}

		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	sess, _ := anonymousSession(server)

	fmt.Printf("Creating account on %s (%s)...\n", server.Alias, server.URL)

	// A successful registration returns a token, so the user is logged in
	// immediately.
	if err := sess.Register(context.Background(), username, email, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	user := sess.User()
	fmt.Println("✓ Account created!")
	fmt.Printf("  User: %s (%s)\n", user.Username, user.Email)
	fmt.Println("  You are now logged in.")

	return nil
}
