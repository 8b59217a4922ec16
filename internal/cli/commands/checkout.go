package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckoutCmd creates the checkout command
func NewCheckoutCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Create a sale from your cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Store environment alias from suds.json")

	return cmd
}

func runCheckout(serverAlias string) error {
	ctx, _, apiClient, err := cartSession(serverAlias, "suds checkout")
	if err != nil {
		return err
	}

	sale, err := apiClient.CreateSale(ctx)
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	fmt.Printf("✓ Order %d placed (%d items, total %.2f)\n", sale.ID, len(sale.Items), sale.Total)
	fmt.Printf("  Status: %s\n", sale.Status)
	return nil
}
