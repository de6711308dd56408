package cmd

import (
	"context"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/spf13/cobra"
)

var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"txn"},
	Short:   "Inspect posted transactions",
}

// transaction list
var txnListFlags struct {
	start, end, account, property, lease string
}

var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger lines with DR/CR totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDateFlag("start", txnListFlags.start)
		if err != nil {
			return err
		}
		end, err := parseDateFlag("end", txnListFlags.end)
		if err != nil {
			return err
		}
		report, err := newClient().Transactions(context.Background(), client.TransactionQuery{
			StartDate:   start,
			EndDate:     end,
			AccountCode: txnListFlags.account,
			PropertyID:  txnListFlags.property,
			LeaseID:     txnListFlags.lease,
		})
		if err != nil {
			return err
		}
		printLines(report.Lines)
		fmt.Printf("\n%-52s %12s %12s\n", "TOTALS", report.Debits.StringFixed(2), report.Credits.StringFixed(2))
		return nil
	},
}

// transaction get
var transactionGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get transaction details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		txn, err := newClient().GetTransaction(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:          %s\n", txn.ID)
		fmt.Printf("Kind:        %s\n", txn.Kind)
		fmt.Printf("Description: %s\n", txn.Description)
		fmt.Printf("Entry date:  %s\n", txn.EntryDate)
		if txn.LeaseID != "" {
			fmt.Printf("Lease:       %s\n", txn.LeaseID)
		}
		if txn.Period != "" {
			fmt.Printf("Period:      %s\n", txn.Period)
		}
		fmt.Printf("Posted by:   %s\n", txn.PostedBy)
		fmt.Printf("Posted at:   %s\n", txn.PostedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Finalized:   %v\n", txn.Finalized)
		fmt.Printf("Entries:\n")
		for _, e := range txn.Entries {
			fmt.Printf("  %s %-6s %12s\n", e.Side, e.AccountCode, e.Amount.StringFixed(2))
		}
		return nil
	},
}

// ledger
var ledgerLimit int

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the most recent ledger entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := newClient().RecentEntries(context.Background(), ledgerLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No entries.")
			return nil
		}
		fmt.Printf("%-10s %-6s %-5s %12s %-14s %s\n", "DATE", "ACCT", "SIDE", "AMOUNT", "LEASE", "DESCRIPTION")
		for _, e := range entries {
			side := string(e.Side)
			if e.Side == ledger.Credit {
				side = "  " + side
			}
			fmt.Printf("%-10s %-6s %-5s %12s %-14s %s\n", e.EntryDate, e.AccountCode, side,
				e.Amount.StringFixed(2), truncate(e.LeaseID, 14), truncate(e.Description, 40))
		}
		return nil
	},
}

func init() {
	f := transactionListCmd.Flags()
	f.StringVar(&txnListFlags.start, "start", "", "Start date YYYY-MM-DD")
	f.StringVar(&txnListFlags.end, "end", "", "End date YYYY-MM-DD")
	f.StringVar(&txnListFlags.account, "account", "", "Filter by account code")
	f.StringVar(&txnListFlags.property, "property", "", "Filter by property ID")
	f.StringVar(&txnListFlags.lease, "lease", "", "Filter by lease ID")

	ledgerCmd.Flags().IntVar(&ledgerLimit, "limit", 50, "Number of entries (max 500)")

	transactionCmd.AddCommand(transactionListCmd)
	transactionCmd.AddCommand(transactionGetCmd)
	rootCmd.AddCommand(transactionCmd)
	rootCmd.AddCommand(ledgerCmd)
}
