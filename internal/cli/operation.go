package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/wire"
)

var operationCmd = &cobra.Command{
	Use:   "operation",
	Short: "Manage operations (chain steps)",
	Long:  "Inspect, accept, and finish operations in a project's chain",
}

var operationListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List a project's operations in chain order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		operations, err := wire.OperationService().ListOperations(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list operations: %w", err)
		}

		if len(operations) == 0 {
			fmt.Println("No operations found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRIORITY\tNAME\tSTATE\tSTART\tPLANNED END\tEMPLOYEE")
		fmt.Fprintln(w, "--\t--------\t----\t-----\t-----\t-----------\t--------")
		for _, op := range operations {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
				op.ID, op.Priority, op.Name, op.State,
				formatDate(op.StartDate), formatDate(op.PlannedEndDate), op.EmployeeID)
		}
		return w.Flush()
	},
}

var operationShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show operation details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		op, err := wire.OperationService().GetOperation(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get operation: %w", err)
		}

		fmt.Printf("Operation %s: %s\n", op.ID, op.Name)
		if op.Description != "" {
			fmt.Printf("  Description: %s\n", op.Description)
		}
		fmt.Printf("  Project: %s\n", op.ProjectID)
		fmt.Printf("  Type work: %s\n", op.TypeWorkID)
		fmt.Printf("  Priority: %d\n", op.Priority)
		fmt.Printf("  State: %s\n", op.State)
		fmt.Printf("  Period: %d hours\n", op.PeriodHours)
		fmt.Printf("  Start: %s\n", formatDate(op.StartDate))
		fmt.Printf("  Accepted: %s\n", formatDate(op.AcceptanceDate))
		fmt.Printf("  Planned end: %s\n", formatDate(op.PlannedEndDate))
		fmt.Printf("  Real end: %s\n", formatDate(op.RealEndDate))
		if op.EmployeeID != "" {
			fmt.Printf("  Employee: %s\n", op.EmployeeID)
		}
		return nil
	},
}

var operationAcceptCmd = &cobra.Command{
	Use:   "accept [operation-id]",
	Short: "Accept an operation into work",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		employeeID, _ := cmd.Flags().GetString("employee")
		priority, _ := cmd.Flags().GetInt("priority")

		req := primary.AcceptOperationRequest{
			OperationID: args[0],
			EmployeeID:  employeeID,
		}
		if cmd.Flags().Changed("priority") {
			req.Priority = &priority
		}

		if err := wire.OperationService().AcceptOperation(ctx, req); err != nil {
			return fmt.Errorf("failed to accept operation: %w", err)
		}

		fmt.Printf("✓ Operation %s accepted by %s\n", args[0], employeeID)
		return nil
	},
}

var operationFinishCmd = &cobra.Command{
	Use:   "finish [operation-id]",
	Short: "Finish an in-work operation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		employeeID, _ := cmd.Flags().GetString("employee")

		if err := wire.OperationService().FinishOperation(ctx, primary.FinishOperationRequest{
			OperationID: args[0],
			EmployeeID:  employeeID,
		}); err != nil {
			return fmt.Errorf("failed to finish operation: %w", err)
		}

		fmt.Printf("✓ Operation %s finished\n", args[0])
		return nil
	},
}

var operationMineCmd = &cobra.Command{
	Use:   "mine [employee-id]",
	Short: "List operations assigned to an employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		operations, err := wire.OperationService().ListOperationsByEmployee(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to list operations: %w", err)
		}

		if len(operations) == 0 {
			fmt.Println("No operations assigned.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROJECT\tNAME\tSTATE\tPLANNED END")
		fmt.Fprintln(w, "--\t-------\t----\t-----\t-----------")
		for _, op := range operations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				op.ID, op.ProjectID, op.Name, op.State, formatDate(op.PlannedEndDate))
		}
		return w.Flush()
	},
}

func init() {
	operationAcceptCmd.Flags().String("employee", "", "Accepting employee ID")
	operationAcceptCmd.Flags().Int("priority", 0, "Re-rank the operation to this priority")
	operationAcceptCmd.MarkFlagRequired("employee")

	operationFinishCmd.Flags().String("employee", "", "Finishing employee ID")
	operationFinishCmd.MarkFlagRequired("employee")

	operationCmd.AddCommand(operationListCmd)
	operationCmd.AddCommand(operationShowCmd)
	operationCmd.AddCommand(operationAcceptCmd)
	operationCmd.AddCommand(operationFinishCmd)
	operationCmd.AddCommand(operationMineCmd)
}

// OperationCmd returns the operation command for registration
func OperationCmd() *cobra.Command {
	return operationCmd
}
