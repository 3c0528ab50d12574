package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the shop floor at a glance",
	Long: `Display an overview of the shop floor right now:
- The open shift and who is on it
- Open projects with overdue operations highlighted
- Operations currently in work`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		// Shift section
		shift, err := wire.ShiftService().GetOpenShift(ctx)
		if err != nil {
			return fmt.Errorf("failed to get open shift: %w", err)
		}
		if shift == nil {
			fmt.Println(color.New(color.FgHiBlack).Sprint("No shift is open."))
		} else {
			fmt.Printf("%s shift %s, opened %s\n",
				color.New(color.FgHiGreen).Sprint("Open"),
				shift.ID, shift.StartShift.Format("2006-01-02 15:04"))
			records, err := wire.ShiftService().GetShiftAttendance(ctx, shift.ID)
			if err != nil {
				return fmt.Errorf("failed to get attendance: %w", err)
			}
			onShift := 0
			for _, tc := range records {
				if tc.OnShift {
					onShift++
				}
			}
			fmt.Printf("  %d employee(s) on shift\n", onShift)
		}
		fmt.Println()

		// Project section
		open := false
		projects, err := wire.ProjectService().ListProjects(ctx, primary.ProjectFilters{Ended: &open})
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		if len(projects) == 0 {
			fmt.Println("No open projects.")
			return nil
		}

		now := wire.Clock().Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PROJECT\tNAME\tCONTRACT END\tIN WORK\tOVERDUE")
		fmt.Fprintln(w, "-------\t----\t------------\t-------\t-------")
		for _, p := range projects {
			operations, err := wire.OperationService().ListOperations(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("failed to list operations: %w", err)
			}
			inWork := 0
			overdue := 0
			for _, op := range operations {
				if op.State == models.OperationStateInWork {
					inWork++
				}
				if !op.IsEnded && op.PlannedEndDate != nil && op.PlannedEndDate.Before(now) {
					overdue++
				}
			}
			overdueMark := fmt.Sprintf("%d", overdue)
			if overdue > 0 {
				overdueMark = color.New(color.FgRed).Sprintf("%d", overdue)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				p.ID, p.Name, p.EndDateInContract.Format("2006-01-02"), inWork, overdueMark)
		}
		return w.Flush()
	},
}

// StatusCmd returns the status command for registration
func StatusCmd() *cobra.Command {
	return statusCmd
}
