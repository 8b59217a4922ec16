package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/suds-dev/suds/internal/cli/commands"
	"github.com/suds-dev/suds/internal/logger"
)

var version = "dev" // Will be set during build

var debug bool

var rootCmd = &cobra.Command{
	Use:   "suds",
	Short: "Suds - storefront and admin console for the Suds cleaning-products store",
	Long: `Suds CLI - Browse the catalog, manage your cart and place orders.

Admins manage the product catalog and order fulfilment; superusers also
manage accounts. All commands talk to the store's REST API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; it carries SUDS_EMAIL/SUDS_PASSWORD for CI use
		_ = godotenv.Load()

		level := "warn"
		if debug {
			level = "debug"
		}
		logger.Init(level)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("suds version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewForgotPasswordCmd())
	rootCmd.AddCommand(commands.NewProductsCmd())
	rootCmd.AddCommand(commands.NewCartCmd())
	rootCmd.AddCommand(commands.NewCheckoutCmd())
	rootCmd.AddCommand(commands.NewSalesCmd())
	rootCmd.AddCommand(commands.NewUsersCmd())
	rootCmd.AddCommand(commands.NewSelectServerCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
