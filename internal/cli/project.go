package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects (manufacturing orders)",
	Long:  "Create, list, and restructure projects and their operation chains",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a project from an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		number, _ := cmd.Flags().GetInt("number")
		description, _ := cmd.Flags().GetString("description")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		customer, _ := cmd.Flags().GetString("customer")
		manager, _ := cmd.Flags().GetString("manager")
		comment, _ := cmd.Flags().GetString("comment")
		opSpecs, _ := cmd.Flags().GetStringArray("operation")

		startDate, err := parseDate(startStr)
		if err != nil {
			return err
		}
		endDate, err := parseDate(endStr)
		if err != nil {
			return err
		}

		operations := make([]primary.OperationInput, 0, len(opSpecs))
		for _, spec := range opSpecs {
			op, err := parseOperationSpec(spec)
			if err != nil {
				return err
			}
			operations = append(operations, op)
		}

		resp, err := wire.ProjectService().CreateProject(ctx, primary.CreateProjectRequest{
			Number:          number,
			Name:            args[0],
			Description:     description,
			StartDate:       startDate,
			PlannedEndDate:  endDate,
			CustomerName:    customer,
			Comment:         comment,
			ManagerUsername: manager,
			Operations:      operations,
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Printf("✓ Created project %s: %s\n", resp.Project.ID, resp.Project.Name)
		fmt.Printf("  Period: %d hours (%d hours per operation)\n", resp.Project.Period, resp.Project.OperationPeriod)
		fmt.Printf("  Operations: %d (including shipment)\n", len(resp.Operations))
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Printf("   shopfloor operation list %s\n", resp.Project.ID)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		open, _ := cmd.Flags().GetBool("open")
		ended, _ := cmd.Flags().GetBool("ended")
		limit, _ := cmd.Flags().GetInt("limit")

		filters := primary.ProjectFilters{Limit: limit}
		if open {
			f := false
			filters.Ended = &f
		} else if ended {
			t := true
			filters.Ended = &t
		}

		projects, err := wire.ProjectService().ListProjects(ctx, filters)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNUMBER\tNAME\tSTART\tCONTRACT END\tENDED")
		fmt.Fprintln(w, "--\t------\t----\t-----\t------------\t-----")
		for _, p := range projects {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%t\n",
				p.ID, p.Number, p.Name,
				p.StartDate.Format("2006-01-02"),
				p.EndDateInContract.Format("2006-01-02"),
				p.Ended)
		}
		return w.Flush()
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show project details and its operation chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		p, err := wire.ProjectService().GetProject(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get project: %w", err)
		}

		fmt.Printf("Project %s: %s (order #%d)\n", p.ID, p.Name, p.Number)
		if p.Description != "" {
			fmt.Printf("  Description: %s\n", p.Description)
		}
		fmt.Printf("  Start: %s\n", p.StartDate.Format("2006-01-02 15:04"))
		fmt.Printf("  Planned end: %s\n", p.PlannedEndDate.Format("2006-01-02 15:04"))
		fmt.Printf("  Contract end: %s\n", p.EndDateInContract.Format("2006-01-02 15:04"))
		fmt.Printf("  Real end: %s\n", formatDate(p.RealEndDate))
		fmt.Printf("  First operation started: %s\n", formatDate(p.StartFirstOperationDate))
		fmt.Printf("  Period: %d hours (%d per operation)\n", p.Period, p.OperationPeriod)
		fmt.Printf("  Manager: %s  Customer: %s\n", p.ManagerID, p.CustomerID)
		if p.Comment != "" {
			fmt.Printf("  Comment: %s\n", p.Comment)
		}
		fmt.Printf("  Ended: %t\n", p.Ended)

		operations, err := wire.OperationService().ListOperations(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to list operations: %w", err)
		}

		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRIORITY\tNAME\tSTATE\tPLANNED END\tEMPLOYEE")
		fmt.Fprintln(w, "--\t--------\t----\t-----\t-----------\t--------")
		for _, op := range operations {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
				op.ID, op.Priority, op.Name, op.State, formatDate(op.PlannedEndDate), op.EmployeeID)
		}
		return w.Flush()
	},
}

var projectAddOpCmd = &cobra.Command{
	Use:   "add-op [project-id]",
	Short: "Insert operations into a project's chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		opSpecs, _ := cmd.Flags().GetStringArray("operation")

		if len(opSpecs) == 0 {
			return fmt.Errorf("no operations given\nHint: Use --operation \"Name:TW-001:priority\" (repeatable)")
		}

		operations := make([]primary.OperationInput, 0, len(opSpecs))
		for _, spec := range opSpecs {
			op, err := parseOperationSpec(spec)
			if err != nil {
				return err
			}
			operations = append(operations, op)
		}

		if err := wire.ProjectService().InsertOperations(ctx, primary.InsertOperationsRequest{
			ProjectID:  args[0],
			Operations: operations,
		}); err != nil {
			return fmt.Errorf("failed to insert operations: %w", err)
		}

		fmt.Printf("✓ Inserted %d operation(s) into %s and recomputed dates\n", len(operations), args[0])
		return nil
	},
}

var projectRemoveOpCmd = &cobra.Command{
	Use:   "remove-op [operation-id]",
	Short: "Remove an operation that has not started",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.ProjectService().DeleteOperation(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to remove operation: %w", err)
		}

		fmt.Printf("✓ Removed operation %s and recomputed dates\n", args[0])
		return nil
	},
}

var projectRecomputeCmd = &cobra.Command{
	Use:   "recompute [project-id]",
	Short: "Re-run date propagation over a project's chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.ProjectService().RecomputeDates(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to recompute dates: %w", err)
		}

		fmt.Printf("✓ Recomputed dates for project %s\n", args[0])
		return nil
	},
}

var projectSetContractEndCmd = &cobra.Command{
	Use:   "set-contract-end [project-id] [date]",
	Short: "Edit a project's contract end date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		endDate, err := parseDate(args[1])
		if err != nil {
			return err
		}

		if err := wire.ProjectService().SetContractEndDate(ctx, args[0], endDate); err != nil {
			return fmt.Errorf("failed to set contract end date: %w", err)
		}

		fmt.Printf("✓ Set contract end date of %s to %s\n", args[0], endDate.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().Int("number", 0, "Order number")
	projectCreateCmd.Flags().String("description", "", "Project description")
	projectCreateCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	projectCreateCmd.Flags().String("end", "", "Planned end date (YYYY-MM-DD)")
	projectCreateCmd.Flags().String("customer", "", "Customer name")
	projectCreateCmd.Flags().String("manager", "", "Manager username")
	projectCreateCmd.Flags().String("comment", "", "Free-form comment")
	projectCreateCmd.Flags().StringArray("operation", nil, "Operation as name:type-work-id:priority (repeatable)")
	projectCreateCmd.MarkFlagRequired("start")
	projectCreateCmd.MarkFlagRequired("end")
	projectCreateCmd.MarkFlagRequired("customer")
	projectCreateCmd.MarkFlagRequired("manager")

	projectListCmd.Flags().Bool("open", false, "Show only open projects")
	projectListCmd.Flags().Bool("ended", false, "Show only ended projects")
	projectListCmd.Flags().Int("limit", 0, "Limit the number of projects shown")

	projectAddOpCmd.Flags().StringArray("operation", nil, "Operation as name:type-work-id:priority (repeatable)")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectAddOpCmd)
	projectCmd.AddCommand(projectRemoveOpCmd)
	projectCmd.AddCommand(projectRecomputeCmd)
	projectCmd.AddCommand(projectSetContractEndCmd)
}

// ProjectCmd returns the project command for registration
func ProjectCmd() *cobra.Command {
	return projectCmd
}
