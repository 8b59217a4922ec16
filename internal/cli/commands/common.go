package commands

import (
	"context"
	"fmt"

	"github.com/suds-dev/suds/internal/cli/api"
	"github.com/suds-dev/suds/internal/cli/auth"
	"github.com/suds-dev/suds/internal/cli/config"
	"github.com/suds-dev/suds/internal/cli/serverselect"
	"github.com/suds-dev/suds/internal/cli/session"
)

// getSelectedServer loads the config and returns the selected store
// environment. This is common logic used by most commands.
func getSelectedServer(serverAlias string) (*config.Server, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'suds init' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, serverAlias)
	if err != nil {
		return nil, err
	}

	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit suds.json and add a valid store URL")
	}

	return server, nil
}

// newSession builds the API client and session store for a server and runs
// the initial session check. Every command that needs to know who the user
// is goes through here; the check hits the who-am-i endpoint only when a
// token is stored.
func newSession(ctx context.Context, server *config.Server) (*session.Store, *api.Client) {
	apiClient := api.New(server.URL, auth.Default)
	sess := session.NewStore(apiClient, auth.Default, server.URL)
	sess.Initialize(ctx)
	return sess, apiClient
}

// anonymousSession builds the store without the initial session check, for
// commands that never read identity (logout only invalidates).
func anonymousSession(server *config.Server) (*session.Store, *api.Client) {
	apiClient := api.New(server.URL, auth.Default)
	sess := session.NewStore(apiClient, auth.Default, server.URL)
	return sess, apiClient
}
