package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/suds-dev/suds/internal/cli/api"
	"github.com/suds-dev/suds/internal/cli/guard"
	"github.com/suds-dev/suds/internal/models"
)

// NewSalesCmd creates the sales command group
func NewSalesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "View and manage orders",
	}

	cmd.PersistentFlags().String("server", "", "Store environment alias from suds.json")

	cmd.AddCommand(newSalesListCmd())
	cmd.AddCommand(newSalesStatusCmd())

	return cmd
}

func newSalesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List orders (admins see all, others see their own)",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")
			return runSalesList(serverAlias)
		},
	}
}

func runSalesList(serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireAuth(sess, "suds sales ls"); err != nil {
		return err
	}

	// The server scopes the result by role: admins get every sale, ordinary
	// users only their own.
	sales, err := apiClient.ListSales(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sales: %w", err)
	}

	if len(sales) == 0 {
		fmt.Println("No orders found")
		return nil
	}

	showBuyer := sess.IsAdmin()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if showBuyer {
		fmt.Fprintln(w, "ID\tDATE\tBUYER\tITEMS\tTOTAL\tSTATUS")
	} else {
		fmt.Fprintln(w, "ID\tDATE\tITEMS\tTOTAL\tSTATUS")
	}
	for _, s := range sales {
		date := s.CreatedAt.Local().Format(time.DateOnly)
		if showBuyer {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%s\n", s.ID, date, s.UserEmail, len(s.Items), s.Total, s.Status)
		} else {
			fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%s\n", s.ID, date, len(s.Items), s.Total, s.Status)
		}
	}
	w.Flush()
	return nil
}

func newSalesStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <sale-id> <pending|paid|shipped|delivered|cancelled>",
		Short: "Update an order's fulfilment status (Admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverAlias, _ := cmd.Flags().GetString("server")

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			status, err := parseSaleStatus(args[1])
			if err != nil {
				return err
			}

			return runSalesStatus(serverAlias, id, status)
		},
	}
}

func runSalesStatus(serverAlias string, id int64, status models.SaleStatus) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, apiClient := newSession(ctx, server)
	if err := guard.RequireAdmin(sess, "suds sales status"); err != nil {
		return err
	}

	sale, err := apiClient.UpdateSaleStatus(ctx, id, status)
	if err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("sale %d not found", id)
		}
		return fmt.Errorf("failed to update sale status: %w", err)
	}

	fmt.Printf("✓ Sale %d is now %s\n", sale.ID, sale.Status)
	return nil
}

func parseSaleStatus(s string) (models.SaleStatus, error) {
	switch models.SaleStatus(s) {
	case models.SalePending, models.SalePaid, models.SaleShipped, models.SaleDelivered, models.SaleCancelled:
		return models.SaleStatus(s), nil
	}
	return "", fmt.Errorf("invalid status '%s' (expected pending, paid, shipped, delivered or cancelled)", s)
}
