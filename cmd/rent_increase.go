package cmd

import (
	"context"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/spf13/cobra"
)

var rentIncreaseCmd = &cobra.Command{
	Use:     "rent-increase",
	Aliases: []string{"ri"},
	Short:   "Scheduled rent increases",
}

var increaseFlags struct {
	lease, amount, effective, notice, notes string
}

var rentIncreaseCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule a rent increase",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmountFlag("amount", increaseFlags.amount)
		if err != nil {
			return err
		}
		effective, err := parseDateFlag("effective", increaseFlags.effective)
		if err != nil {
			return err
		}
		notice, err := parseDateFlag("notice", increaseFlags.notice)
		if err != nil {
			return err
		}
		inc, err := newClient().CreateRentIncrease(context.Background(), &ledger.RentIncrease{
			LeaseID:       increaseFlags.lease,
			NewAmount:     amount,
			EffectiveDate: effective,
			NoticeDate:    notice,
			Notes:         increaseFlags.notes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Rent increase %s: %s -> %s effective %s\n", inc.ID,
			inc.PreviousAmount.StringFixed(2), inc.NewAmount.StringFixed(2), inc.EffectiveDate)
		return nil
	},
}

var rentIncreaseToday string

var rentIncreaseApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply every scheduled increase that has taken effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		today, err := parseDateFlag("today", rentIncreaseToday)
		if err != nil {
			return err
		}
		res, err := newClient().ApplyRentIncreases(context.Background(), today)
		if err != nil {
			return err
		}
		for _, a := range res.Applied {
			fmt.Printf("APPLIED %-14s %12s -> %12s  effective %s\n", truncate(a.LeaseID, 14),
				a.PreviousAmount.StringFixed(2), a.NewAmount.StringFixed(2), a.EffectiveDate)
		}
		for _, e := range res.Errors {
			fmt.Printf("ERROR   %s\n", e.Error())
		}
		fmt.Printf("\nApplied %d, errors %d\n", len(res.Applied), len(res.Errors))
		return nil
	},
}

var rentIncreaseCancelCmd = &cobra.Command{
	Use:   "cancel [id]",
	Short: "Cancel a scheduled increase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inc, err := newClient().CancelRentIncrease(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Rent increase %s is %s\n", inc.ID, inc.Status)
		return nil
	},
}

var rentIncreaseGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a rent increase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inc, err := newClient().GetRentIncrease(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ID:        %s\n", inc.ID)
		fmt.Printf("Lease:     %s\n", inc.LeaseID)
		fmt.Printf("Amount:    %s -> %s\n", inc.PreviousAmount.StringFixed(2), inc.NewAmount.StringFixed(2))
		fmt.Printf("Effective: %s\n", inc.EffectiveDate)
		fmt.Printf("Status:    %s\n", inc.Status)
		if inc.AppliedAt != nil {
			fmt.Printf("Applied:   %s by %s\n", inc.AppliedAt.Format("2006-01-02 15:04"), inc.AppliedBy)
		}
		return nil
	},
}

func init() {
	f := rentIncreaseCreateCmd.Flags()
	f.StringVar(&increaseFlags.lease, "lease", "", "Lease ID")
	f.StringVar(&increaseFlags.amount, "amount", "", "New monthly rent")
	f.StringVar(&increaseFlags.effective, "effective", "", "Effective date YYYY-MM-DD")
	f.StringVar(&increaseFlags.notice, "notice", "", "Notice date YYYY-MM-DD")
	f.StringVar(&increaseFlags.notes, "notes", "", "Notes")
	rentIncreaseCreateCmd.MarkFlagRequired("lease")
	rentIncreaseCreateCmd.MarkFlagRequired("amount")
	rentIncreaseCreateCmd.MarkFlagRequired("effective")

	rentIncreaseApplyCmd.Flags().StringVar(&rentIncreaseToday, "today", "", "Run as of YYYY-MM-DD (default today)")

	rentIncreaseCmd.AddCommand(rentIncreaseCreateCmd, rentIncreaseApplyCmd, rentIncreaseCancelCmd, rentIncreaseGetCmd)
	rootCmd.AddCommand(rentIncreaseCmd)
}
