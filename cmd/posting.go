package cmd

import (
	"context"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/spf13/cobra"
)

// postingFlags are shared by the payment, charge, expense, deposit and
// credit commands; each registers only the ones it takes.
var postingFlags struct {
	lease       string
	amount      string
	account     string
	date        string
	description string
	property    string
	unit        string
	vendor      string
	workOrder   string
}

type recordFunc func(*client.Client, context.Context, client.Posting) (*client.PostingResult, error)

func newRecordCmd(noun, short string, record recordFunc, withAccount, withLease, withLinkage bool) *cobra.Command {
	parent := &cobra.Command{
		Use:   noun,
		Short: short,
	}
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a " + noun,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountFlag("amount", postingFlags.amount)
			if err != nil {
				return err
			}
			date, err := parseDateFlag("date", postingFlags.date)
			if err != nil {
				return err
			}
			p := client.Posting{
				LeaseID:     postingFlags.lease,
				Amount:      amount,
				AccountCode: postingFlags.account,
				Date:        date,
				Description: postingFlags.description,
				PropertyID:  postingFlags.property,
				UnitID:      postingFlags.unit,
				VendorID:    postingFlags.vendor,
				WorkOrderID: postingFlags.workOrder,
			}
			res, err := record(newClient(), context.Background(), p)
			if err != nil {
				return err
			}
			printPosted(res)
			return nil
		},
	}

	f := recordCmd.Flags()
	f.StringVar(&postingFlags.amount, "amount", "", "Amount, e.g. 1500.00")
	f.StringVar(&postingFlags.date, "date", "", "Entry date YYYY-MM-DD (default today)")
	f.StringVar(&postingFlags.description, "description", "", "Description")
	if withLease {
		f.StringVar(&postingFlags.lease, "lease", "", "Lease ID")
		recordCmd.MarkFlagRequired("lease")
	}
	if withAccount {
		f.StringVar(&postingFlags.account, "account", "", "Account code")
		recordCmd.MarkFlagRequired("account")
	}
	if withLinkage {
		f.StringVar(&postingFlags.property, "property", "", "Property ID")
		f.StringVar(&postingFlags.unit, "unit", "", "Unit ID")
		f.StringVar(&postingFlags.vendor, "vendor", "", "Vendor ID")
		f.StringVar(&postingFlags.workOrder, "work-order", "", "Work order ID")
	}
	recordCmd.MarkFlagRequired("amount")

	parent.AddCommand(recordCmd)
	return parent
}

func printPosted(res *client.PostingResult) {
	t := res.Transaction
	fmt.Printf("Transaction posted: %s\n", t.ID)
	fmt.Printf("Kind:        %s\n", t.Kind)
	fmt.Printf("Date:        %s\n", t.EntryDate)
	fmt.Printf("Description: %s\n", t.Description)
	fmt.Printf("Entries:\n")
	for _, e := range res.Entries {
		name := e.AccountCode
		if acct, err := ledger.Lookup(e.AccountCode); err == nil {
			name = acct.Name
		}
		fmt.Printf("  %s %-6s %-28s %12s\n", e.Side, e.AccountCode, truncate(name, 28), e.Amount.StringFixed(2))
	}
}

func init() {
	rootCmd.AddCommand(
		newRecordCmd("payment", "Tenant payments (DR Cash / CR Accounts Receivable)",
			(*client.Client).RecordPayment, false, true, false),
		newRecordCmd("charge", "Tenant charges (DR Accounts Receivable / CR income)",
			(*client.Client).RecordCharge, true, true, false),
		newRecordCmd("expense", "Expenses (DR expense / CR Cash)",
			(*client.Client).RecordExpense, true, false, true),
		newRecordCmd("deposit", "Security deposits (DR Cash / CR Security Deposits Held)",
			(*client.Client).RecordDeposit, false, true, false),
		newRecordCmd("credit", "Tenant credits (DR income / CR Accounts Receivable)",
			(*client.Client).RecordCredit, true, true, false),
	)
}
