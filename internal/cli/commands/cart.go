package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/suds-dev/suds/internal/cli/api"
	"github.com/suds-dev/suds/internal/cli/guard"
	"github.com/suds-dev/suds/internal/cli/session"
	"github.com/suds-dev/suds/internal/models"
)

// NewCartCmd creates the cart command group
func NewCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage your shopping cart",
	}

	cmd.PersistentFlags().String("server", "", "Store environment alias from suds.json")

	cmd.AddCommand(newCartShowCmd())
	cmd.AddCommand(newCartAddCmd())
	cmd.AddCommand(newCartUpdateCmd())
	cmd.AddCommand(newCartRemoveCmd())
	cmd.AddCommand(newCartClearCmd())

	return cmd
}

// cartSession resolves the server, runs the session check and gates the
// command on an authenticated session. The cart is per-user, so every cart
// operation requires login; no particular role.
func cartSession(serverAlias, command string) (context.Context, *session.Store, *api.Client, error) {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireAuth(sess, command); err != nil {
		return nil, nil, nil, err
	}
	return ctx, sess, apiClient, nil
}

func newCartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			ctx, _, apiClient, err := cartSession(serverAlias, "suds cart show")
			if err != nil {
				return err
			}

			cart, err := apiClient.GetCart(ctx)
			if err != nil {
				return fmt.Errorf("failed to get cart: %w", err)
			}

			printCart(cart)
			return nil
		},
	}
}

func printCart(cart *models.Cart) {
	if len(cart.Items) == 0 {
		fmt.Println("Your cart is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tPRODUCT\tQTY\tUNIT PRICE\tSUBTOTAL")
	for _, item := range cart.Items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.2f\n",
			item.ID, item.Product.Name, item.Quantity, item.Product.Price,
			item.Product.Price*float64(item.Quantity))
	}
	w.Flush()
	fmt.Printf("\nTotal: %.2f\n", cart.Total)
}

func newCartAddCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if quantity <= 0 {
				return fmt.Errorf("quantity must be at least 1")
			}

			ctx, _, apiClient, err := cartSession(serverAlias, "suds cart add")
			if err != nil {
				return err
			}

			cart, err := apiClient.AddToCart(ctx, productID, quantity)
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("product %d not found", productID)
				}
				return fmt.Errorf("failed to add to cart: %w", err)
			}

			printCart(cart)
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "qty", 1, "Quantity to add")

	return cmd
}

func newCartUpdateCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Change the quantity of a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if quantity <= 0 {
				return fmt.Errorf("quantity must be at least 1 (use 'suds cart remove' to drop a line)")
			}

			ctx, _, apiClient, err := cartSession(serverAlias, "suds cart update")
			if err != nil {
				return err
			}

			cart, err := apiClient.UpdateCartItem(ctx, itemID, quantity)
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("cart item %d not found", itemID)
				}
				return fmt.Errorf("failed to update cart: %w", err)
			}

			printCart(cart)
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "qty", 0, "New quantity")
	cmd.MarkFlagRequired("qty")

	return cmd
}

func newCartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, _, apiClient, err := cartSession(serverAlias, "suds cart remove")
			if err != nil {
				return err
			}

			cart, err := apiClient.RemoveCartItem(ctx, itemID)
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("cart item %d not found", itemID)
				}
				return fmt.Errorf("failed to remove cart item: %w", err)
			}

			printCart(cart)
			return nil
		},
	}
}

func newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			ctx, _, apiClient, err := cartSession(serverAlias, "suds cart clear")
			if err != nil {
				return err
			}

			if err := apiClient.ClearCart(ctx); err != nil {
				return fmt.Errorf("failed to clear cart: %w", err)
			}

			fmt.Println("✓ Cart cleared")
			return nil
		},
	}
}
