package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/db"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/wire"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the shopfloor database",
	Long:  `Initialize the shopfloor database at ~/.shopfloor/shopfloor.db with the required schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()

		dbPath, err := db.GetDBPath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}

		fmt.Printf("Initializing shopfloor database at %s\n", dbPath)

		if err := db.InitSchema(); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}

		// The Shipment category backs the synthetic trailing operation of
		// every project, so it must exist before the first order comes in.
		_, err = wire.TypeWorkService().GetTypeWorkByName(ctx, models.ShipmentTypeWorkName)
		if fault.IsKind(err, fault.KindNotFound) {
			if _, err := wire.TypeWorkService().CreateTypeWork(ctx, models.ShipmentTypeWorkName); err != nil {
				return fmt.Errorf("failed to create shipment category: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up shipment category: %w", err)
		}

		fmt.Println("✓ Database initialized successfully")
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  shopfloor typework create \"Welding\"")
		fmt.Println("  shopfloor status")

		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with starter fixtures",
	Long:  "Insert a starter catalog of work categories, employees, managers, and customers for a fresh install.",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.GetDB()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		if err := db.SeedFixtures(database); err != nil {
			return fmt.Errorf("failed to seed fixtures: %w", err)
		}

		fmt.Println("✓ Seeded starter fixtures")
		return nil
	},
}

// InitCmd returns the init command for registration
func InitCmd() *cobra.Command {
	return initCmd
}

// SeedCmd returns the seed command for registration
func SeedCmd() *cobra.Command {
	return seedCmd
}
