package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suds-dev/suds/internal/cli/api"
	"github.com/suds-dev/suds/internal/cli/guard"
	"github.com/suds-dev/suds/internal/cli/validate"
)

func newProductsImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-create products from a YAML file (Admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")
			return runProductsImport(serverAlias, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a 'products' list")
	cmd.MarkFlagRequired("file")

	return cmd
}

type productImportFile struct {
	Products []api.ProductInput `yaml:"products"`
}

func runProductsImport(serverAlias, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var imports productImportFile
	if err := yaml.Unmarshal(data, &imports); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	if len(imports.Products) == 0 {
		return fmt.Errorf("no products found in %s", file)
	}

	// All entries are validated before any of them is sent.
	for i, input := range imports.Products {
		if err := validate.Struct(input); err != nil {
			return fmt.Errorf("product %d in %s: %w", i+1, file, err)
		}
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireAdmin(sess, "suds products import"); err != nil {
		return err
	}

	created := 0
	for _, input := range imports.Products {
		product, err := apiClient.CreateProduct(ctx, input)
		if err != nil {
			return fmt.Errorf("failed after creating %d of %d products (%s): %w",
				created, len(imports.Products), input.Name, err)
		}
		fmt.Printf("✓ Created product %d (%s)\n", product.ID, product.Name)
		created++
	}

	fmt.Printf("\nImported %d products\n", created)
	return nil
}
