package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/wire"
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Manage working shifts and attendance",
	Long:  "Open and close shifts, record employee arrivals and departures",
}

var shiftOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a new working shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		shift, err := wire.ShiftService().OpenShift(ctx)
		if err != nil {
			return fmt.Errorf("failed to open shift: %w", err)
		}

		fmt.Printf("✓ Opened %s shift %s at %s\n",
			shift.TimeOfDay, shift.ID, shift.StartShift.Format("2006-01-02 15:04"))
		return nil
	},
}

var shiftCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the open shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		shift, err := wire.ShiftService().CloseShift(ctx)
		if err != nil {
			return fmt.Errorf("failed to close shift: %w", err)
		}
		if shift == nil {
			fmt.Println("No shift is open.")
			return nil
		}

		fmt.Printf("✓ Closed shift %s at %s\n", shift.ID, formatDate(shift.EndShift))
		return nil
	},
}

var shiftStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the open shift and who is on it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		shift, err := wire.ShiftService().GetOpenShift(ctx)
		if err != nil {
			return fmt.Errorf("failed to get open shift: %w", err)
		}
		if shift == nil {
			fmt.Println("No shift is open.")
			return nil
		}

		fmt.Printf("Shift %s (%s), opened %s\n",
			shift.ID, shift.TimeOfDay, shift.StartShift.Format("2006-01-02 15:04"))

		records, err := wire.ShiftService().GetShiftAttendance(ctx, shift.ID)
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No attendance recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EMPLOYEE\tARRIVAL\tDEPARTURE\tON SHIFT")
		fmt.Fprintln(w, "--------\t-------\t---------\t--------")
		for _, tc := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n",
				tc.EmployeeID, tc.Arrival.Format("15:04"), formatDate(tc.Departure), tc.OnShift)
		}
		return w.Flush()
	},
}

var shiftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shifts, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		limit, _ := cmd.Flags().GetInt("limit")

		shifts, err := wire.ShiftService().ListShifts(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to list shifts: %w", err)
		}

		if len(shifts) == 0 {
			fmt.Println("No shifts found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME OF DAY\tSTART\tEND\tENDED")
		fmt.Fprintln(w, "--\t-----------\t-----\t---\t-----")
		for _, s := range shifts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
				s.ID, s.TimeOfDay, s.StartShift.Format("2006-01-02 15:04"), formatDate(s.EndShift), s.Ended)
		}
		return w.Flush()
	},
}

var shiftAttendanceCmd = &cobra.Command{
	Use:   "attendance [shift-id]",
	Short: "Show a shift's attendance records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		records, err := wire.ShiftService().GetShiftAttendance(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No attendance recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEMPLOYEE\tARRIVAL\tDEPARTURE\tHOURS\tAUTO-CLOSED")
		fmt.Fprintln(w, "--\t--------\t-------\t---------\t-----\t-----------")
		for _, tc := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%t\n",
				tc.ID, tc.EmployeeID,
				tc.Arrival.Format("2006-01-02 15:04"), formatDate(tc.Departure),
				tc.HoursOnShift(), tc.AutoClosed)
		}
		return w.Flush()
	},
}

var shiftCheckinCmd = &cobra.Command{
	Use:   "checkin [employee-id]",
	Short: "Record an employee's arrival",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		tc, err := wire.ShiftService().CheckIn(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to check in: %w", err)
		}

		fmt.Printf("✓ %s checked in at %s (shift %s)\n",
			tc.EmployeeID, tc.Arrival.Format("15:04"), tc.ShiftID)
		return nil
	},
}

var shiftCheckoutCmd = &cobra.Command{
	Use:   "checkout [employee-id]",
	Short: "Record an employee's departure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		tc, err := wire.ShiftService().CheckOut(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to check out: %w", err)
		}
		if tc == nil {
			fmt.Printf("%s is not on shift.\n", args[0])
			return nil
		}

		fmt.Printf("✓ %s checked out at %s (%d hours on shift)\n",
			tc.EmployeeID, formatDate(tc.Departure), tc.HoursOnShift())
		return nil
	},
}

func init() {
	shiftListCmd.Flags().Int("limit", 0, "Limit the number of shifts shown")

	shiftCmd.AddCommand(shiftOpenCmd)
	shiftCmd.AddCommand(shiftCloseCmd)
	shiftCmd.AddCommand(shiftStatusCmd)
	shiftCmd.AddCommand(shiftListCmd)
	shiftCmd.AddCommand(shiftAttendanceCmd)
	shiftCmd.AddCommand(shiftCheckinCmd)
	shiftCmd.AddCommand(shiftCheckoutCmd)
}

// ShiftCmd returns the shift command for registration
func ShiftCmd() *cobra.Command {
	return shiftCmd
}
