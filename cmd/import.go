package cmd

import (
	"context"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/fixtures"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [fixtures.yaml]",
	Short: "Load properties, units, leases, vendors, schedules and rent increases into the database",
	Long: "Import writes directly to the database at --db. Properties, units, leases and " +
		"vendors are upserted by ID; schedules and rent increases that already exist are " +
		"skipped, so the same file can be imported again after edits.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := fixtures.Load(args[0])
		if err != nil {
			return err
		}
		svc, st, closeFn, err := openService()
		if err != nil {
			return err
		}
		defer closeFn()

		sum, err := fixtures.Import(context.Background(), st, svc, f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d properties, %d units, %d leases, %d vendors, %d scheduled charges, %d rent increases",
			sum.Properties, sum.Units, sum.Leases, sum.Vendors, sum.ScheduledCharges, sum.RentIncreases)
		if sum.Existing > 0 {
			fmt.Printf(" (%d already present)", sum.Existing)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
