package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/spf13/cobra"
)

var balanceAsOf string

var balanceCmd = &cobra.Command{
	Use:   "balance [leaseId]",
	Short: "Show a lease's receivable balance and open charges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asOf, err := parseDateFlag("as-of", balanceAsOf)
		if err != nil {
			return err
		}
		aging, err := newClient().LeaseAging(context.Background(), args[0], asOf)
		if err != nil {
			return err
		}
		printLeaseAging(aging)
		return nil
	},
}

var agingAsOf string

var agingCmd = &cobra.Command{
	Use:   "aging",
	Short: "Show receivables aging for all active leases",
	RunE: func(cmd *cobra.Command, args []string) error {
		asOf, err := parseDateFlag("as-of", agingAsOf)
		if err != nil {
			return err
		}
		report, err := newClient().AgingReport(context.Background(), asOf)
		if err != nil {
			return err
		}
		printAgingReport(report)
		return nil
	},
}

func printLeaseAging(a *ledger.TenantAging) {
	fmt.Printf("Lease:   %s\n", a.LeaseID)
	fmt.Printf("Tenant:  %s\n", a.TenantName)
	fmt.Printf("Status:  %s\n", a.Status)
	fmt.Printf("Balance: %s\n", formatSigned(a.Balance))
	if a.Aging.Credit.IsPositive() {
		fmt.Printf("Credit:  %s\n", a.Aging.Credit.StringFixed(2))
	}
	fmt.Println()
	fmt.Printf("  %12s %12s %12s %12s\n", "0-30", "31-60", "61-90", "90+")
	fmt.Printf("  %12s %12s %12s %12s\n",
		a.Aging.Current.StringFixed(2), a.Aging.Days31To60.StringFixed(2),
		a.Aging.Days61To90.StringFixed(2), a.Aging.Over90.StringFixed(2))

	if len(a.OpenCharges) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-10s %-30s %12s %12s %5s\n", "DATE", "DESCRIPTION", "ORIGINAL", "OPEN", "DAYS")
	for _, oc := range a.OpenCharges {
		fmt.Printf("  %-10s %-30s %12s %12s %5d\n", oc.EntryDate, truncate(oc.Description, 30),
			oc.Original.StringFixed(2), oc.Outstanding.StringFixed(2), oc.Days)
	}
}

func printAgingReport(r *ledger.AgingReport) {
	w := 90
	fmt.Println()
	fmt.Println(center("RECEIVABLES AGING", w))
	fmt.Println(center("as of "+r.AsOf.String(), w))
	fmt.Println()

	row := "  %-26s %11s %11s %11s %11s %12s\n"
	fmt.Printf(row, "TENANT", "0-30", "31-60", "61-90", "90+", "TOTAL")
	fmt.Printf("  %s\n", strings.Repeat("─", w-4))
	for _, t := range r.Tenants {
		fmt.Printf(row, truncate(t.TenantName, 26),
			t.Aging.Current.StringFixed(2), t.Aging.Days31To60.StringFixed(2),
			t.Aging.Days61To90.StringFixed(2), t.Aging.Over90.StringFixed(2), t.Aging.Total.StringFixed(2))
	}
	fmt.Printf("  %s\n", strings.Repeat("═", w-4))
	fmt.Printf(row, "Total",
		r.Totals.Current.StringFixed(2), r.Totals.Days31To60.StringFixed(2),
		r.Totals.Days61To90.StringFixed(2), r.Totals.Over90.StringFixed(2), r.Totals.Total.StringFixed(2))
}

func init() {
	balanceCmd.Flags().StringVar(&balanceAsOf, "as-of", "", "Aging date YYYY-MM-DD (default today)")
	agingCmd.Flags().StringVar(&agingAsOf, "as-of", "", "Aging date YYYY-MM-DD (default today)")
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(agingCmd)
}
