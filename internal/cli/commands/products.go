package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/suds-dev/suds/internal/cli/api"
	"github.com/suds-dev/suds/internal/cli/guard"
	"github.com/suds-dev/suds/internal/cli/validate"
	"github.com/suds-dev/suds/internal/models"
)

// NewProductsCmd creates the products command group
func NewProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the product catalog",
	}

	cmd.PersistentFlags().String("server", "", "Store environment alias from suds.json")

	cmd.AddCommand(newProductsListCmd())
	cmd.AddCommand(newProductsGetCmd())
	cmd.AddCommand(newProductsCreateCmd())
	cmd.AddCommand(newProductsUpdateCmd())
	cmd.AddCommand(newProductsDeleteCmd())
	cmd.AddCommand(newProductsImportCmd())

	return cmd
}

func newProductsListCmd() *cobra.Command {
	var search, category string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")
			return runProductsList(serverAlias, search, category)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by name or description")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")

	return cmd
}

func runProductsList(serverAlias, search, category string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	_, apiClient := anonymousSession(server)

	products, err := apiClient.ListProducts(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	products = filterProducts(products, search, category)
	printProducts(products)
	return nil
}

// filterProducts applies search and category filters over the fetched list.
// The server always returns the full catalog; narrowing happens here.
func filterProducts(products []models.Product, search, category string) []models.Product {
	if search == "" && category == "" {
		return products
	}

	search = strings.ToLower(search)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func printProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Println("No products found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Category, p.Price, p.Stock)
	}
	w.Flush()
}

func newProductsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			server, err := getSelectedServer(serverAlias)
			if err != nil {
				return err
			}

			_, apiClient := anonymousSession(server)

			product, err := apiClient.GetProduct(context.Background(), id)
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("product %d not found", id)
				}
				return fmt.Errorf("failed to get product: %w", err)
			}

			fmt.Printf("ID:          %d\n", product.ID)
			fmt.Printf("Name:        %s\n", product.Name)
			fmt.Printf("Category:    %s\n", product.Category)
			fmt.Printf("Price:       %.2f\n", product.Price)
			fmt.Printf("Stock:       %d\n", product.Stock)
			if product.Description != "" {
				fmt.Printf("Description: %s\n", product.Description)
			}
			return nil
		},
	}
}

func newProductsCreateCmd() *cobra.Command {
	var input api.ProductInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product to the catalog (Admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")
			return runProductsCreate(serverAlias, input)
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&input.Category, "category", "", "Product category")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Unit price")
	cmd.Flags().IntVar(&input.Stock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&input.ImageURL, "image-url", "", "Product image URL")

	return cmd
}

func runProductsCreate(serverAlias string, input api.ProductInput) error {
	if err := validate.Struct(input); err != nil {
		return err
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireAdmin(sess, "suds products create"); err != nil {
		return err
	}

	product, err := apiClient.CreateProduct(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	fmt.Printf("✓ Created product %d (%s)\n", product.ID, product.Name)
	return nil
}

func newProductsUpdateCmd() *cobra.Command {
	var input api.ProductInput

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Update a catalog entry (Admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runProductsUpdate(serverAlias, id, input)
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Product name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Product description")
	cmd.Flags().StringVar(&input.Category, "category", "", "Product category")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "Unit price")
	cmd.Flags().IntVar(&input.Stock, "stock", 0, "Units in stock")
	cmd.Flags().StringVar(&input.ImageURL, "image-url", "", "Product image URL")

	return cmd
}

func runProductsUpdate(serverAlias string, id int64, input api.ProductInput) error {
	if err := validate.Struct(input); err != nil {
		return err
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireAdmin(sess, "suds products update"); err != nil {
		return err
	}

	product, err := apiClient.UpdateProduct(ctx, id, input)
	if err != nil {
		if api.IsNotFound(err) {
			fmt.Printf("Product %d no longer exists. Current catalog:\n\n", id)
			return refreshProducts(ctx, apiClient)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	fmt.Printf("✓ Updated product %d (%s)\n", product.ID, product.Name)
	return nil
}

func newProductsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Remove a product from the catalog (Admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runProductsDelete(serverAlias, id)
		},
	}
}

func runProductsDelete(serverAlias string, id int64) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireAdmin(sess, "suds products delete"); err != nil {
		return err
	}

	if err := apiClient.DeleteProduct(ctx, id); err != nil {
		if api.IsNotFound(err) {
			fmt.Printf("Product %d no longer exists. Current catalog:\n\n", id)
			return refreshProducts(ctx, apiClient)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	fmt.Printf("✓ Deleted product %d\n", id)
	return nil
}

// refreshProducts re-fetches the catalog after a stale-ID operation so the
// user sees the current state instead of just the error.
func refreshProducts(ctx context.Context, apiClient *api.Client) error {
	products, err := apiClient.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh product list: %w", err)
	}
	printProducts(products)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id '%s'", s)
	}
	return id, nil
}
