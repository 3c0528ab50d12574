package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/wire"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Manage employees and their capabilities",
	Long:  "Register employees and assign the work categories they can perform",
}

var employeeCreateCmd = &cobra.Command{
	Use:   "create [first-name] [last-name]",
	Short: "Register a new employee",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		phone, _ := cmd.Flags().GetString("phone")

		emp, err := wire.EmployeeService().CreateEmployee(ctx, primary.CreateEmployeeRequest{
			FirstName: args[0],
			LastName:  args[1],
			Phone:     phone,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		fmt.Printf("✓ Created employee %s: %s %s\n", emp.ID, emp.FirstName, emp.LastName)
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Printf("   shopfloor employee assign %s TW-XXX\n", emp.ID)
		return nil
	},
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		activeOnly, _ := cmd.Flags().GetBool("active")

		employees, err := wire.EmployeeService().ListEmployees(ctx, activeOnly)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		if len(employees) == 0 {
			fmt.Println("No employees found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPHONE\tACTIVE\tCAPABILITIES")
		fmt.Fprintln(w, "--\t----\t-----\t------\t------------")
		for _, e := range employees {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%t\t%s\n",
				e.ID, e.FirstName, e.LastName, e.Phone, e.Active, strings.Join(e.TypeWorkIDs, ","))
		}
		return w.Flush()
	},
}

var employeeShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an employee and its capability set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		emp, err := wire.EmployeeService().GetEmployee(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		fmt.Printf("Employee %s: %s %s\n", emp.ID, emp.FirstName, emp.LastName)
		if emp.Phone != "" {
			fmt.Printf("  Phone: %s\n", emp.Phone)
		}
		fmt.Printf("  Active: %t\n", emp.Active)
		if len(emp.TypeWorkIDs) == 0 {
			fmt.Println("  Capabilities: none")
			return nil
		}
		fmt.Println("  Capabilities:")
		for _, twID := range emp.TypeWorkIDs {
			tw, err := wire.TypeWorkService().GetTypeWork(ctx, twID)
			if err != nil {
				fmt.Printf("    %s\n", twID)
				continue
			}
			fmt.Printf("    %s  %s\n", tw.ID, tw.Name)
		}
		return nil
	},
}

var employeeAssignCmd = &cobra.Command{
	Use:   "assign [employee-id] [type-work-id]",
	Short: "Add a work-category capability to an employee",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.EmployeeService().AssignTypeWork(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to assign capability: %w", err)
		}

		fmt.Printf("✓ Assigned %s to %s\n", args[1], args[0])
		return nil
	},
}

var employeeRevokeCmd = &cobra.Command{
	Use:   "revoke [employee-id] [type-work-id]",
	Short: "Remove a work-category capability from an employee",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.EmployeeService().RevokeTypeWork(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to revoke capability: %w", err)
		}

		fmt.Printf("✓ Revoked %s from %s\n", args[1], args[0])
		return nil
	},
}

func init() {
	employeeCreateCmd.Flags().String("phone", "", "Contact phone number")
	employeeListCmd.Flags().Bool("active", false, "Show only active employees")

	employeeCmd.AddCommand(employeeCreateCmd)
	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeShowCmd)
	employeeCmd.AddCommand(employeeAssignCmd)
	employeeCmd.AddCommand(employeeRevokeCmd)
}

// EmployeeCmd returns the employee command for registration
func EmployeeCmd() *cobra.Command {
	return employeeCmd
}
