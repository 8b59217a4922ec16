package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/suds-dev/suds/internal/cli/auth"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Store environment alias from suds.json")

	return cmd
}

func runWhoami(serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	sess, _ := newSession(context.Background(), server)

	if !sess.IsAuthenticated() {
		fmt.Println("Not logged in. Run 'suds login' to authenticate.")
		return nil
	}

	user := sess.User()
	fmt.Printf("User:  %s (%s)\n", user.Username, user.Email)
	fmt.Printf("Role:  %s\n", user.Role)
	fmt.Printf("Store: %s (%s)\n", server.Alias, server.URL)

	// Expiry is decoded from the token for display only; the server already
	// validated the token during the session check above.
	if token, err := auth.LoadToken(server.URL); err == nil {
		if expiry, err := auth.TokenExpiry(token); err == nil {
			fmt.Printf("Token: expires %s\n", expiry.Local().Format(time.RFC1123))
		}
	}

	return nil
}
