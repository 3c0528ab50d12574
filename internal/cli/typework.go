package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/wire"
)

var typeworkCmd = &cobra.Command{
	Use:   "typework",
	Short: "Manage the work-category catalog",
	Long:  "Create, rename, and toggle work categories referenced by operations and employee capabilities",
}

var typeworkCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new work category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		tw, err := wire.TypeWorkService().CreateTypeWork(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to create work category: %w", err)
		}

		fmt.Printf("✓ Created work category %s: %s\n", tw.ID, tw.Name)
		return nil
	},
}

var typeworkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List work categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		activeOnly, _ := cmd.Flags().GetBool("active")

		typeWorks, err := wire.TypeWorkService().ListTypeWorks(ctx, activeOnly)
		if err != nil {
			return fmt.Errorf("failed to list work categories: %w", err)
		}

		if len(typeWorks) == 0 {
			fmt.Println("No work categories found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tACTIVE")
		fmt.Fprintln(w, "--\t----\t------")
		for _, tw := range typeWorks {
			fmt.Fprintf(w, "%s\t%s\t%t\n", tw.ID, tw.Name, tw.Active)
		}
		return w.Flush()
	},
}

var typeworkRenameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a work category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.TypeWorkService().RenameTypeWork(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to rename work category: %w", err)
		}

		fmt.Printf("✓ Renamed work category %s to %s\n", args[0], args[1])
		return nil
	},
}

var typeworkActivateCmd = &cobra.Command{
	Use:   "activate [id]",
	Short: "Reactivate a work category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.TypeWorkService().SetTypeWorkActive(ctx, args[0], true); err != nil {
			return fmt.Errorf("failed to activate work category: %w", err)
		}

		fmt.Printf("✓ Activated work category %s\n", args[0])
		return nil
	},
}

var typeworkDeactivateCmd = &cobra.Command{
	Use:   "deactivate [id]",
	Short: "Deactivate a work category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		if err := wire.TypeWorkService().SetTypeWorkActive(ctx, args[0], false); err != nil {
			return fmt.Errorf("failed to deactivate work category: %w", err)
		}

		fmt.Printf("✓ Deactivated work category %s\n", args[0])
		return nil
	},
}

func init() {
	typeworkListCmd.Flags().Bool("active", false, "Show only active categories")

	typeworkCmd.AddCommand(typeworkCreateCmd)
	typeworkCmd.AddCommand(typeworkListCmd)
	typeworkCmd.AddCommand(typeworkRenameCmd)
	typeworkCmd.AddCommand(typeworkActivateCmd)
	typeworkCmd.AddCommand(typeworkDeactivateCmd)
}

// TypeWorkCmd returns the typework command for registration
func TypeWorkCmd() *cobra.Command {
	return typeworkCmd
}
