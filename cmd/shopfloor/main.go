package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/cli"
	"github.com/example/shopfloor/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "shopfloor",
		Short:   "shopfloor - manufacturing order tracking",
		Version: version.String(),
		Long: `shopfloor is a CLI tool for tracking manufacturing orders.
It manages projects and their operation chains, employee capabilities,
working shifts, and attendance.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.OperationCmd())
	rootCmd.AddCommand(cli.TypeWorkCmd())
	rootCmd.AddCommand(cli.EmployeeCmd())
	rootCmd.AddCommand(cli.ShiftCmd())
	rootCmd.AddCommand(cli.ManagerCmd())
	rootCmd.AddCommand(cli.CustomerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
