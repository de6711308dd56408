package cmd

import (
	"context"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/spf13/cobra"
)

var chargesCmd = &cobra.Command{
	Use:   "charges",
	Short: "Recurring scheduled charges",
}

var chargesAsOf string

var chargesPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List due charges not yet posted",
	RunE: func(cmd *cobra.Command, args []string) error {
		asOf, err := parseDateFlag("as-of", chargesAsOf)
		if err != nil {
			return err
		}
		pending, err := newClient().PendingCharges(context.Background(), asOf)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("Nothing due.")
			return nil
		}
		fmt.Printf("%-14s %-7s %-10s %-6s %12s %s\n", "LEASE", "PERIOD", "DUE", "ACCT", "AMOUNT", "DESCRIPTION")
		beyond := 0
		for _, p := range pending {
			desc := p.ScheduledCharge.Description
			if p.BeyondCatchUp {
				desc += " *"
				beyond++
			}
			fmt.Printf("%-14s %-7s %-10s %-6s %12s %s\n", truncate(p.ScheduledCharge.LeaseID, 14), p.Period,
				p.DueDate, p.ScheduledCharge.AccountCode, p.Amount.StringFixed(2), desc)
		}
		if beyond > 0 {
			fmt.Printf("\n* %d period(s) beyond the catch-up window; post-due will skip them.\n", beyond)
		}
		return nil
	},
}

var chargesPostDueCmd = &cobra.Command{
	Use:   "post-due",
	Short: "Post every due charge; safe to re-run",
	RunE: func(cmd *cobra.Command, args []string) error {
		asOf, err := parseDateFlag("as-of", chargesAsOf)
		if err != nil {
			return err
		}
		res, err := newClient().PostDue(context.Background(), asOf)
		if err != nil {
			return err
		}
		for _, it := range res.Items {
			line := fmt.Sprintf("%-8s %-14s %-7s %12s", it.State, truncate(it.LeaseID, 14), it.Period, it.Amount.StringFixed(2))
			if it.Reason != "" {
				line += "  " + it.Reason
			}
			fmt.Println(line)
		}
		fmt.Printf("\nPosted %d, skipped %d, errors %d (as of %s)\n",
			res.Summary.Posted, res.Summary.Skipped, len(res.Summary.Errors), res.AsOf)
		return nil
	},
}

var scheduleFlags struct {
	lease, account, amount, description, start, end string
	day                                             int
}

var chargesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a recurring charge for a lease",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmountFlag("amount", scheduleFlags.amount)
		if err != nil {
			return err
		}
		start, err := parseDateFlag("start", scheduleFlags.start)
		if err != nil {
			return err
		}
		end, err := parseDateFlag("end", scheduleFlags.end)
		if err != nil {
			return err
		}
		sc, err := newClient().CreateSchedule(context.Background(), &ledger.ScheduledCharge{
			LeaseID:     scheduleFlags.lease,
			AccountCode: scheduleFlags.account,
			Amount:      amount,
			Description: scheduleFlags.description,
			DayOfMonth:  scheduleFlags.day,
			StartDate:   start,
			EndDate:     end,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Scheduled charge created: %s\n", sc.ID)
		return nil
	},
}

var chargesEndDate string

var chargesEndCmd = &cobra.Command{
	Use:   "end [id]",
	Short: "Stop a recurring charge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseDateFlag("on", chargesEndDate)
		if err != nil {
			return err
		}
		sc, err := newClient().EndSchedule(context.Background(), args[0], end)
		if err != nil {
			return err
		}
		fmt.Printf("Scheduled charge %s ends %s\n", sc.ID, sc.EndDate)
		return nil
	},
}

func init() {
	chargesPendingCmd.Flags().StringVar(&chargesAsOf, "as-of", "", "Date YYYY-MM-DD (default today)")
	chargesPostDueCmd.Flags().StringVar(&chargesAsOf, "as-of", "", "Date YYYY-MM-DD (default today)")

	f := chargesCreateCmd.Flags()
	f.StringVar(&scheduleFlags.lease, "lease", "", "Lease ID")
	f.StringVar(&scheduleFlags.account, "account", ledger.CodeRentalIncome, "Income account code")
	f.StringVar(&scheduleFlags.amount, "amount", "", "Amount per period")
	f.StringVar(&scheduleFlags.description, "description", "Monthly rent", "Description")
	f.IntVar(&scheduleFlags.day, "day", 1, "Day of month the charge falls due (1-31)")
	f.StringVar(&scheduleFlags.start, "start", "", "First date YYYY-MM-DD")
	f.StringVar(&scheduleFlags.end, "end", "", "Last date YYYY-MM-DD (optional)")
	chargesCreateCmd.MarkFlagRequired("lease")
	chargesCreateCmd.MarkFlagRequired("amount")
	chargesCreateCmd.MarkFlagRequired("start")

	chargesEndCmd.Flags().StringVar(&chargesEndDate, "on", "", "End date YYYY-MM-DD (default today)")

	chargesCmd.AddCommand(chargesPendingCmd, chargesPostDueCmd, chargesCreateCmd, chargesEndCmd)
	rootCmd.AddCommand(chargesCmd)
}
