package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/suds-dev/suds/internal/cli/api"
	"github.com/suds-dev/suds/internal/cli/guard"
	"github.com/suds-dev/suds/internal/models"
)

// NewUsersCmd creates the users command group. Every subcommand is gated on
// SuperUser.
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage store accounts (SuperUser)",
	}

	cmd.PersistentFlags().String("server", "", "Store environment alias from suds.json")

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersUpdateCmd())
	cmd.AddCommand(newUsersDeleteCmd())

	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")
			return runUsersList(serverAlias)
		},
	}
}

func runUsersList(serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireSuperUser(sess, "suds users ls"); err != nil {
		return err
	}

	users, err := apiClient.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
	}
	w.Flush()
	return nil
}

func newUsersUpdateCmd() *cobra.Command {
	var username, email, role string

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runUsersUpdate(serverAlias, id, username, email, role)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&role, "role", "", "New role (User, Admin or SuperUser)")

	return cmd
}

func runUsersUpdate(serverAlias string, id int64, username, email, role string) error {
	update := api.UserUpdate{Username: username, Email: email}

	if role != "" {
		parsed, err := parseRole(role)
		if err != nil {
			return err
		}
		update.Role = parsed
	}

	if update == (api.UserUpdate{}) {
		return fmt.Errorf("nothing to update (use --username, --email or --role)")
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireSuperUser(sess, "suds users update"); err != nil {
		return err
	}

	user, err := apiClient.UpdateUser(ctx, id, update)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("user %d not found", id)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	fmt.Printf("✓ Updated user %d (%s, role %s)\n", user.ID, user.Username, user.Role)
	return nil
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runUsersDelete(serverAlias, id)
		},
	}
}

func runUsersDelete(serverAlias string, id int64) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireSuperUser(sess, "suds users delete"); err != nil {
		return err
	}

	if err := apiClient.DeleteUser(ctx, id); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("user %d not found", id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("✓ Deleted user %d\n", id)
	return nil
}

func parseRole(s string) (models.Role, error) {
	switch models.Role(s) {
	case models.RoleUser, models.RoleAdmin, models.RoleSuperUser:
		return models.Role(s), nil
	}
	return "", fmt.Errorf("invalid role '%s' (expected User, Admin or SuperUser)", s)
}
