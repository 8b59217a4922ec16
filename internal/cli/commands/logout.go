package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Log out of the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Store environment alias from suds.json")

	return cmd
}

func runLogout(serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	// Logout never makes a network call and is safe to run repeatedly.
	sess, _ := anonymousSession(server)
	sess.Logout()

	fmt.Println("✓ Logged out")
	return nil
}
