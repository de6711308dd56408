package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Financial reports",
}

var reportStart, reportEnd string

func reportRange() (ledger.Date, ledger.Date, error) {
	start, err := parseDateFlag("start", reportStart)
	if err != nil {
		return start, ledger.Date{}, err
	}
	end, err := parseDateFlag("end", reportEnd)
	return start, end, err
}

var reportPnLCmd = &cobra.Command{
	Use:   "pnl",
	Short: "Profit & loss with prior-period comparison",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := reportRange()
		if err != nil {
			return err
		}
		pl, err := newClient().ProfitLoss(context.Background(), start, end)
		if err != nil {
			return err
		}
		printProfitLoss(pl)
		return nil
	},
}

var reportIncomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Income by account with share of total",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := reportRange()
		if err != nil {
			return err
		}
		ib, err := newClient().IncomeBreakdown(context.Background(), start, end)
		if err != nil {
			return err
		}
		fmt.Printf("Income %s to %s\n\n", ib.StartDate, ib.EndDate)
		fmt.Printf("  %-6s %-28s %12s %8s\n", "CODE", "ACCOUNT", "AMOUNT", "SHARE")
		for _, l := range ib.Lines {
			fmt.Printf("  %-6s %-28s %12s %7s%%\n", l.AccountCode, truncate(l.AccountName, 28),
				l.Amount.StringFixed(2), l.Share.StringFixed(1))
		}
		fmt.Printf("  %-35s %12s\n", "Total", ib.Total.StringFixed(2))
		return nil
	},
}

var reportRentRollCmd = &cobra.Command{
	Use:   "rent-roll",
	Short: "Units, occupancy and rent by property",
	RunE: func(cmd *cobra.Command, args []string) error {
		rr, err := newClient().RentRoll(context.Background())
		if err != nil {
			return err
		}
		for _, p := range rr.Properties {
			fmt.Printf("%s (%d/%d occupied)\n", p.PropertyName, p.OccupiedCount, p.UnitCount)
			for _, u := range p.Units {
				tenant := "vacant"
				if u.Occupied {
					tenant = u.TenantName
				}
				fmt.Printf("  %-10s %-24s %12s %12s %12s\n", truncate(u.UnitName, 10), truncate(tenant, 24),
					u.MarketRent.StringFixed(2), u.MonthlyRent.StringFixed(2), formatSigned(u.Balance))
			}
			fmt.Printf("  %-35s %12s %12s\n", "Subtotal", "", p.MonthlyRent.StringFixed(2))
			fmt.Println()
		}
		fmt.Printf("Occupancy %s%% (%d/%d)  monthly %s  annual %s\n",
			rr.OccupancyRate.StringFixed(2), rr.OccupiedCount, rr.UnitCount,
			rr.MonthlyRent.StringFixed(2), rr.AnnualRent.StringFixed(2))
		return nil
	},
}

var reportTenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "Tenant balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		tb, err := newClient().TenantBalances(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%-14s %-24s %-18s %-7s %12s\n", "LEASE", "TENANT", "PROPERTY", "STATUS", "BALANCE")
		for _, t := range tb.Tenants {
			fmt.Printf("%-14s %-24s %-18s %-7s %12s\n", truncate(t.LeaseID, 14), truncate(t.TenantName, 24),
				truncate(t.PropertyName, 18), t.Status, formatSigned(t.Balance))
		}
		s := tb.Summary
		fmt.Printf("\nOwed %s  credit %s  net %s  (%d owing, %d in credit, %d paid up)\n",
			s.TotalOwed.StringFixed(2), s.TotalCredit.StringFixed(2), formatSigned(s.NetReceivable),
			s.TenantsOwing, s.TenantsWithCredit, s.TenantsPaidUp)
		return nil
	},
}

func printProfitLoss(pl *ledger.ProfitLoss) {
	w := 72
	fmt.Println()
	fmt.Println(center("PROFIT & LOSS", w))
	fmt.Println(center(fmt.Sprintf("%s to %s", pl.StartDate, pl.EndDate), w))
	fmt.Println()

	row := "  %-6s %-28s %12s %12s %8s\n"
	fmt.Printf(row, "", "", "CURRENT", "PRIOR", "CHANGE")
	section := func(title string, s ledger.ProfitLossSection) {
		fmt.Printf("  %s\n", strings.ToUpper(title))
		for _, l := range s.Lines {
			fmt.Printf(row, l.AccountCode, truncate(l.AccountName, 28),
				formatSigned(l.Amount), formatSigned(l.PriorAmount), formatPercent(l.PercentChange))
		}
		fmt.Printf("  %s\n", strings.Repeat("─", w-4))
		fmt.Printf(row, "", "Total "+title, formatSigned(s.Total), formatSigned(s.PriorTotal), formatPercent(s.PercentChange))
		fmt.Println()
	}
	section("Income", pl.Income)
	section("Expenses", pl.Expenses)
	fmt.Printf("  %s\n", strings.Repeat("═", w-4))
	fmt.Printf(row, "", "Net Income", formatSigned(pl.NetIncome), formatSigned(pl.PriorNetIncome), formatPercent(pl.PercentChange))
}

func init() {
	for _, c := range []*cobra.Command{reportPnLCmd, reportIncomeCmd} {
		c.Flags().StringVar(&reportStart, "start", "", "Start date YYYY-MM-DD (default first of the month)")
		c.Flags().StringVar(&reportEnd, "end", "", "End date YYYY-MM-DD (default today)")
	}
	reportCmd.AddCommand(reportPnLCmd, reportIncomeCmd, reportRentRollCmd, reportTenantsCmd)
	rootCmd.AddCommand(reportCmd)
}
