package accounting

import (
	"context"
	"testing"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsOnEmptyLedger(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pl, err := svc.ProfitLoss(ctx, ledger.Date{}, ledger.Date{})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", pl.StartDate.String())
	assert.Equal(t, "2026-03-15", pl.EndDate.String())
	assert.Empty(t, pl.Income.Lines)
	assert.True(t, pl.NetIncome.IsZero())

	aging, err := svc.AgingReport(ctx, ledger.Date{})
	require.NoError(t, err)
	assert.Empty(t, aging.Tenants)
	assert.True(t, aging.Totals.Total.IsZero())

	balances, err := svc.TenantBalances(ctx)
	require.NoError(t, err)
	assert.Empty(t, balances.Tenants)
	assert.True(t, balances.Summary.NetReceivable.IsZero())

	rr, err := svc.RentRoll(ctx)
	require.NoError(t, err)
	assert.Zero(t, rr.UnitCount)

	txns, err := svc.Transactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txns.Lines)

	ib, err := svc.IncomeBreakdown(ctx, ledger.Date{}, ledger.Date{})
	require.NoError(t, err)
	assert.Empty(t, ib.Lines)

	recent, err := svc.RecentEntries(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestProfitLossComparesPriorPeriod(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()

	post := func(in ChargeInput) {
		in.LeaseID = "L1"
		_, err := svc.RecordCharge(ctx, "", in)
		require.NoError(t, err)
	}
	post(ChargeInput{Amount: amt("1000"), AccountCode: "4000", Date: day("2026-02-10")})
	post(ChargeInput{Amount: amt("1500"), AccountCode: "4000", Date: day("2026-03-05")})
	post(ChargeInput{Amount: amt("50"), AccountCode: "4100", Date: day("2026-03-10")})
	_, err := svc.RecordCredit(ctx, "", CreditInput{LeaseID: "L1", Amount: amt("100"), AccountCode: "4000", Date: day("2026-03-20")})
	require.NoError(t, err)
	_, err = svc.RecordExpense(ctx, "", ExpenseInput{AccountCode: "5000", Amount: amt("200"), Date: day("2026-03-12")})
	require.NoError(t, err)

	pl, err := svc.ProfitLoss(ctx, day("2026-03-01"), day("2026-03-31"))
	require.NoError(t, err)

	require.Len(t, pl.Income.Lines, 2)
	rent := pl.Income.Lines[0]
	assert.Equal(t, "4000", rent.AccountCode)
	assert.Equal(t, "1400", rent.Amount.String())
	assert.Equal(t, "1000", rent.PriorAmount.String())
	require.NotNil(t, rent.PercentChange)
	assert.Equal(t, "40", rent.PercentChange.String())
	assert.Nil(t, pl.Income.Lines[1].PercentChange, "no prior late fees")

	assert.Equal(t, "1450", pl.Income.Total.String())
	assert.Equal(t, "200", pl.Expenses.Total.String())
	assert.Equal(t, "1250", pl.NetIncome.String())

	_, err = svc.ProfitLoss(ctx, day("2026-03-31"), day("2026-03-01"))
	assert.True(t, ledger.IsValidation(err))
}

func TestTenantBalancesAndAgingReport(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	seedLease(t, st, "L2", ledger.LeaseActive)
	seedLease(t, st, "L3", ledger.LeaseActive)
	seedLease(t, st, "L4", ledger.LeaseEnded)
	ctx := context.Background()

	_, err := svc.RecordCharge(ctx, "", ChargeInput{LeaseID: "L1", Amount: amt("1500"), AccountCode: "4000", Date: day("2026-01-01")})
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, "", PaymentInput{LeaseID: "L2", Amount: amt("200"), Date: day("2026-03-01")})
	require.NoError(t, err)
	_, err = svc.RecordCharge(ctx, "", ChargeInput{LeaseID: "L4", Amount: amt("75"), AccountCode: "4400", Date: day("2026-02-01")})
	require.NoError(t, err)

	tb, err := svc.TenantBalances(ctx)
	require.NoError(t, err)
	require.Len(t, tb.Tenants, 4, "ended lease with a balance is still listed")
	assert.Equal(t, 2, tb.Summary.TenantsOwing)
	assert.Equal(t, 1, tb.Summary.TenantsWithCredit)
	assert.Equal(t, 1, tb.Summary.TenantsPaidUp)
	assert.Equal(t, "1575", tb.Summary.TotalOwed.String())
	assert.Equal(t, "200", tb.Summary.TotalCredit.String())
	assert.Equal(t, "1375", tb.Summary.NetReceivable.String())

	report, err := svc.AgingReport(ctx, day("2026-03-15"))
	require.NoError(t, err)
	assert.Len(t, report.Tenants, 3, "only ACTIVE leases are aged")
	assert.Equal(t, "1500", report.Totals.Days61To90.String())
	assert.Equal(t, "200", report.Totals.Credit.String())
}

func TestRentRollOccupancy(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	seedLease(t, st, "L2", ledger.LeaseEnded)
	ctx := context.Background()

	_, err := svc.RecordCharge(ctx, "", ChargeInput{LeaseID: "L1", Amount: amt("1500"), AccountCode: "4000"})
	require.NoError(t, err)

	rr, err := svc.RentRoll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rr.UnitCount)
	assert.Equal(t, 1, rr.OccupiedCount)
	assert.Equal(t, "50", rr.OccupancyRate.String())
	assert.Equal(t, "1500", rr.MonthlyRent.String())
	assert.Equal(t, "18000", rr.AnnualRent.String())

	require.Len(t, rr.Properties, 1)
	units := rr.Properties[0].Units
	require.Len(t, units, 2)
	assert.Equal(t, "L1", units[0].LeaseID)
	assert.Equal(t, "1500", units[0].Balance.String())
	assert.False(t, units[1].Occupied)
}

func TestTransactionsAndDrillDown(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()

	_, err := svc.RecordCharge(ctx, "", ChargeInput{LeaseID: "L1", Amount: amt("1500"), AccountCode: "4000", Date: day("2026-03-01")})
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, "", PaymentInput{LeaseID: "L1", Amount: amt("1200"), Date: day("2026-03-05")})
	require.NoError(t, err)
	_, err = svc.RecordExpense(ctx, "", ExpenseInput{AccountCode: "5100", Amount: amt("80"), Date: day("2026-02-20")})
	require.NoError(t, err)

	all, err := svc.Transactions(ctx, TransactionFilter{StartDate: day("2026-03-01"), EndDate: day("2026-03-31")})
	require.NoError(t, err)
	assert.Len(t, all.Lines, 4)
	assert.True(t, all.Debits.Equal(all.Credits))

	byLease, err := svc.Transactions(ctx, TransactionFilter{LeaseID: "L1"})
	require.NoError(t, err)
	assert.Len(t, byLease.Lines, 4)

	_, err = svc.Transactions(ctx, TransactionFilter{AccountCode: "0000"})
	assert.True(t, ledger.IsValidation(err))

	ar, err := svc.AccountDrillDown(ctx, ledger.CodeAccountsReceivable, ledger.Date{}, ledger.Date{})
	require.NoError(t, err)
	assert.Len(t, ar.Lines, 2)
	assert.Equal(t, "300", ar.Net.String())

	income, err := svc.AccountDrillDown(ctx, ledger.CodeRentalIncome, day("2026-03-01"), day("2026-03-31"))
	require.NoError(t, err)
	assert.Equal(t, "1500", income.Net.String(), "income is credit-normal")

	_, err = svc.AccountDrillDown(ctx, "9999", ledger.Date{}, ledger.Date{})
	assert.True(t, ledger.IsNotFound(err))
}

func TestAccountsFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	all, err := svc.Accounts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(ledger.ChartOfAccounts))

	expenses, err := svc.Accounts(ctx, ledger.AccountExpense)
	require.NoError(t, err)
	for _, a := range expenses {
		assert.Equal(t, ledger.AccountExpense, a.Type)
	}

	_, err = svc.Accounts(ctx, "EQUITY")
	assert.True(t, ledger.IsValidation(err))
}

func TestRecentEntriesLimit(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.RecordPayment(ctx, "", PaymentInput{LeaseID: "L1", Amount: amt("10")})
		require.NoError(t, err)
	}

	entries, err := svc.RecentEntries(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	entries, err = svc.RecentEntries(ctx, 10000)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}
