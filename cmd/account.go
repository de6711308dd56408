package cmd

import (
	"context"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"acct"},
	Short:   "Browse the chart of accounts",
}

// account list
var acctListType string

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts, err := newClient().ListAccounts(context.Background(), ledger.AccountType(acctListType))
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-30s %-10s %-7s %s\n", "CODE", "NAME", "TYPE", "NORMAL", "DESCRIPTION")
		fmt.Printf("%-6s %-30s %-10s %-7s %s\n", "----", "----", "----", "------", "-----------")
		for _, a := range accounts {
			fmt.Printf("%-6s %-30s %-10s %-7s %s\n", a.Code, truncate(a.Name, 30), a.Type, ledger.NormalSide(a.Type), a.Description)
		}
		return nil
	},
}

// account drilldown
var acctDrillStart, acctDrillEnd string

var accountDrillDownCmd = &cobra.Command{
	Use:   "drilldown [code]",
	Short: "List an account's entries with totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDateFlag("start", acctDrillStart)
		if err != nil {
			return err
		}
		end, err := parseDateFlag("end", acctDrillEnd)
		if err != nil {
			return err
		}
		dd, err := newClient().AccountDrillDown(context.Background(), args[0], start, end)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s (%s)\n\n", dd.Account.Code, dd.Account.Name, ledger.TypeLabel(dd.Account.Type))
		printLines(dd.Lines)
		fmt.Printf("\n%-52s %12s %12s\n", "TOTALS", dd.Debits.StringFixed(2), dd.Credits.StringFixed(2))
		fmt.Printf("%-52s %12s\n", "Net", formatSigned(dd.Net))
		return nil
	},
}

func printLines(lines []ledger.LedgerLine) {
	if len(lines) == 0 {
		fmt.Println("No entries.")
		return
	}
	fmt.Printf("%-10s %-6s %-34s %12s %12s\n", "DATE", "ACCT", "DESCRIPTION", "DEBIT", "CREDIT")
	for _, l := range lines {
		debit, credit := "", ""
		if l.Side == ledger.Debit {
			debit = l.Amount.StringFixed(2)
		} else {
			credit = l.Amount.StringFixed(2)
		}
		fmt.Printf("%-10s %-6s %-34s %12s %12s\n", l.EntryDate, l.AccountCode, truncate(l.Description, 34), debit, credit)
	}
}

func init() {
	accountListCmd.Flags().StringVar(&acctListType, "type", "", "Filter by type (ASSET, LIABILITY, INCOME, EXPENSE)")
	accountDrillDownCmd.Flags().StringVar(&acctDrillStart, "start", "", "Start date YYYY-MM-DD")
	accountDrillDownCmd.Flags().StringVar(&acctDrillEnd, "end", "", "End date YYYY-MM-DD")

	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountDrillDownCmd)
	rootCmd.AddCommand(accountCmd)
}
