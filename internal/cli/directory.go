package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/wire"
)

var managerCmd = &cobra.Command{
	Use:   "manager",
	Short: "Manage the manager directory",
}

var managerAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Register a manager",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		phone, _ := cmd.Flags().GetString("phone")

		mgr, err := wire.DirectoryService().CreateManager(ctx, primary.CreateManagerRequest{
			Username:  args[0],
			FirstName: firstName,
			LastName:  lastName,
			Phone:     phone,
		})
		if err != nil {
			return fmt.Errorf("failed to create manager: %w", err)
		}

		fmt.Printf("✓ Created manager %s: %s\n", mgr.ID, mgr.Username)
		return nil
	},
}

var managerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List managers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		managers, err := wire.DirectoryService().ListManagers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list managers: %w", err)
		}

		if len(managers) == 0 {
			fmt.Println("No managers found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tPHONE")
		fmt.Fprintln(w, "--\t--------\t----\t-----")
		for _, m := range managers {
			fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\n", m.ID, m.Username, m.FirstName, m.LastName, m.Phone)
		}
		return w.Flush()
	},
}

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage the customer directory",
}

var customerAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		phone, _ := cmd.Flags().GetString("phone")

		cust, err := wire.DirectoryService().CreateCustomer(ctx, primary.CreateCustomerRequest{
			Name:  args[0],
			Phone: phone,
		})
		if err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}

		fmt.Printf("✓ Created customer %s: %s\n", cust.ID, cust.Name)
		return nil
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		customers, err := wire.DirectoryService().ListCustomers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list customers: %w", err)
		}

		if len(customers) == 0 {
			fmt.Println("No customers found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPHONE")
		fmt.Fprintln(w, "--\t----\t-----")
		for _, c := range customers {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Phone)
		}
		return w.Flush()
	},
}

func init() {
	managerAddCmd.Flags().String("first-name", "", "First name")
	managerAddCmd.Flags().String("last-name", "", "Last name")
	managerAddCmd.Flags().String("phone", "", "Contact phone number")

	customerAddCmd.Flags().String("phone", "", "Contact phone number")

	managerCmd.AddCommand(managerAddCmd)
	managerCmd.AddCommand(managerListCmd)

	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerListCmd)
}

// ManagerCmd returns the manager command for registration
func ManagerCmd() *cobra.Command {
	return managerCmd
}

// CustomerCmd returns the customer command for registration
func CustomerCmd() *cobra.Command {
	return customerCmd
}
