package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewForgotPasswordCmd creates the forgot-password command
func NewForgotPasswordCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForgotPassword(args[0], serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Store environment alias from suds.json")

	return cmd
}

func runForgotPassword(email, serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	sess, _ := anonymousSession(server)

	if err := sess.ForgotPassword(context.Background(), email); err != nil {
		return err
	}

	// The server acknowledges whether or not the account exists.
	fmt.Println("If an account exists for that address, a reset email is on its way.")
	return nil
}
