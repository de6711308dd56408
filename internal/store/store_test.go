package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedLease(t *testing.T, s *Store, id string) *ledger.Lease {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.UpsertProperty(ctx, &ledger.Property{ID: "P1", Name: "Maple Court"}))
	require.NoError(t, s.UpsertUnit(ctx, &ledger.Unit{ID: "U-" + id, PropertyID: "P1", Name: "Unit " + id}))
	l := &ledger.Lease{
		ID:                id,
		UnitID:            "U-" + id,
		TenantName:        "Tenant " + id,
		MonthlyRentAmount: decimal.NewFromInt(1500),
		ChargeDay:         1,
		StartDate:         ledger.MustParseDate("2026-01-01"),
		Status:            ledger.LeaseActive,
	}
	require.NoError(t, s.UpsertLease(ctx, l))
	return l
}

func entry(txnID, code string, side ledger.Side, amount int64) *ledger.Entry {
	return &ledger.Entry{
		TransactionID: txnID,
		AccountCode:   code,
		Amount:        decimal.NewFromInt(amount),
		Side:          side,
		EntryDate:     ledger.MustParseDate("2026-03-01"),
		LeaseID:       "L1",
		PostedBy:      ledger.SystemActor,
	}
}

// postCharge writes a balanced AR/rent pair and returns the header.
func postCharge(t *testing.T, s *Store, amount int64) *ledger.Transaction {
	t.Helper()
	ctx := context.Background()
	txn := &ledger.Transaction{
		Kind:      ledger.KindCharge,
		EntryDate: ledger.MustParseDate("2026-03-01"),
		LeaseID:   "L1",
		PostedBy:  ledger.SystemActor,
	}
	require.NoError(t, s.InTx(ctx, func(tx *Tx) error {
		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, entry(txn.ID, ledger.CodeAccountsReceivable, ledger.Debit, amount)); err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, entry(txn.ID, ledger.CodeRentalIncome, ledger.Credit, amount)); err != nil {
			return err
		}
		return tx.Finalize(ctx, txn.ID)
	}))
	return txn
}

func TestOpenSeedsChartIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		require.NoError(t, err)
		accounts, err := s.ListAccounts(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, accounts, len(ledger.ChartOfAccounts))
		require.NoError(t, s.Close())
	}
}

func TestListAccountsByType(t *testing.T) {
	s := openTestStore(t)
	income, err := s.ListAccounts(context.Background(), ledger.AccountIncome)
	require.NoError(t, err)
	assert.Len(t, income, len(ledger.AccountsOfType(ledger.AccountIncome)))

	_, err = s.GetAccount(context.Background(), "9999")
	assert.True(t, ledger.IsNotFound(err))
}

func TestCommittedTransactionRoundTrips(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	txn := postCharge(t, s, 1500)

	got, err := s.GetTransaction(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.True(t, got.Finalized)
	require.Len(t, got.Entries, 2)
	require.NoError(t, got.Validate())
	assert.Equal(t, "1500", got.Entries[0].Amount.String())

	n, err := s.CountEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestInsertEntryRejectsAmountsOutsideCents(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	ctx := context.Background()

	for _, amount := range []string{"184467440737095517.16", "92233720368547758.08", "10.005"} {
		txn := &ledger.Transaction{
			Kind:      ledger.KindCharge,
			EntryDate: ledger.MustParseDate("2026-03-01"),
			LeaseID:   "L1",
			PostedBy:  ledger.SystemActor,
		}
		err := s.InTx(ctx, func(tx *Tx) error {
			if err := tx.InsertTransaction(ctx, txn); err != nil {
				return err
			}
			e := entry(txn.ID, ledger.CodeAccountsReceivable, ledger.Debit, 0)
			e.Amount = decimal.RequireFromString(amount)
			return tx.InsertEntry(ctx, e)
		})
		require.Error(t, err, amount)
		assert.True(t, ledger.IsValidation(err), "amount %s: %v", amount, err)
	}

	n, err := s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFailedSecondEntryRollsBackEverything(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	ctx := context.Background()

	txn := &ledger.Transaction{
		Kind:      ledger.KindCharge,
		EntryDate: ledger.MustParseDate("2026-03-01"),
		LeaseID:   "L1",
		PostedBy:  ledger.SystemActor,
	}
	err := s.InTx(ctx, func(tx *Tx) error {
		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, entry(txn.ID, ledger.CodeAccountsReceivable, ledger.Debit, 1500)); err != nil {
			return err
		}
		// Unknown account: the foreign key rejects the second leg.
		return tx.InsertEntry(ctx, entry(txn.ID, "9999", ledger.Credit, 1500))
	})
	require.Error(t, err)

	n, err := s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.GetTransaction(ctx, txn.ID)
	assert.True(t, ledger.IsNotFound(err))
}

func TestFinalizeRejectsUnbalancedTransaction(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	ctx := context.Background()

	err := s.InTx(ctx, func(tx *Tx) error {
		txn := &ledger.Transaction{Kind: ledger.KindCharge, EntryDate: ledger.MustParseDate("2026-03-01"), PostedBy: ledger.SystemActor}
		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, entry(txn.ID, ledger.CodeAccountsReceivable, ledger.Debit, 100)); err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, entry(txn.ID, ledger.CodeRentalIncome, ledger.Credit, 90)); err != nil {
			return err
		}
		return tx.Finalize(ctx, txn.ID)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not balance")

	n, err := s.CountEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFinalizeRejectsSingleEntry(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	ctx := context.Background()

	err := s.InTx(ctx, func(tx *Tx) error {
		txn := &ledger.Transaction{Kind: ledger.KindCharge, EntryDate: ledger.MustParseDate("2026-03-01"), PostedBy: ledger.SystemActor}
		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, entry(txn.ID, ledger.CodeAccountsReceivable, ledger.Debit, 100)); err != nil {
			return err
		}
		return tx.Finalize(ctx, txn.ID)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 entries")
}

func TestEntriesAreAppendOnly(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	txn := postCharge(t, s, 1500)
	ctx := context.Background()

	_, err := s.writer.ExecContext(ctx, `UPDATE ledger_entries SET amount = 1 WHERE transaction_id = ?`, txn.ID)
	assert.ErrorContains(t, err, "append-only")

	_, err = s.writer.ExecContext(ctx, `DELETE FROM ledger_entries WHERE transaction_id = ?`, txn.ID)
	assert.ErrorContains(t, err, "append-only")

	_, err = s.writer.ExecContext(ctx, `UPDATE ledger_transactions SET description = 'x' WHERE id = ?`, txn.ID)
	assert.ErrorContains(t, err, "finalized")

	err = s.InTx(ctx, func(tx *Tx) error {
		return tx.InsertEntry(ctx, entry(txn.ID, ledger.CodeCash, ledger.Debit, 5))
	})
	assert.ErrorContains(t, err, "finalized")

	got, err := s.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "1500", got.Entries[0].Amount.String())
}

func TestSchedulePeriodPostsOnce(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	ctx := context.Background()

	sc := &ledger.ScheduledCharge{
		LeaseID:     "L1",
		AccountCode: ledger.CodeRentalIncome,
		Amount:      decimal.NewFromInt(1500),
		DayOfMonth:  1,
		StartDate:   ledger.MustParseDate("2026-01-01"),
	}
	require.NoError(t, s.CreateSchedule(ctx, sc))

	header := func() *ledger.Transaction {
		return &ledger.Transaction{
			Kind:              ledger.KindCharge,
			EntryDate:         ledger.MustParseDate("2026-03-01"),
			LeaseID:           "L1",
			PostedBy:          ledger.SystemActor,
			ScheduledChargeID: sc.ID,
			Period:            "2026-03",
		}
	}
	require.NoError(t, s.InTx(ctx, func(tx *Tx) error { return tx.InsertTransaction(ctx, header()) }))

	err := s.InTx(ctx, func(tx *Tx) error { return tx.InsertTransaction(ctx, header()) })
	assert.True(t, errors.Is(err, ledger.ErrAlreadyPosted))

	posted, err := s.PostedPeriods(ctx)
	require.NoError(t, err)
	assert.True(t, posted[sc.ID]["2026-03"])
	assert.False(t, posted[sc.ID]["2026-04"])
}

func TestCreateScheduleUnknownLease(t *testing.T) {
	s := openTestStore(t)
	err := s.CreateSchedule(context.Background(), &ledger.ScheduledCharge{
		LeaseID:     "nope",
		AccountCode: ledger.CodeRentalIncome,
		Amount:      decimal.NewFromInt(10),
		DayOfMonth:  1,
		StartDate:   ledger.MustParseDate("2026-01-01"),
	})
	assert.True(t, errors.Is(err, ledger.ErrLeaseNotFound))
}

func TestApplyRentIncreaseIsGuarded(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	ctx := context.Background()

	sc := &ledger.ScheduledCharge{
		LeaseID:     "L1",
		AccountCode: ledger.CodeRentalIncome,
		Amount:      decimal.NewFromInt(1500),
		DayOfMonth:  1,
		StartDate:   ledger.MustParseDate("2026-01-01"),
	}
	require.NoError(t, s.CreateSchedule(ctx, sc))

	r := &ledger.RentIncrease{
		LeaseID:        "L1",
		PreviousAmount: decimal.NewFromInt(1500),
		NewAmount:      decimal.NewFromInt(1600),
		EffectiveDate:  ledger.MustParseDate("2026-03-01"),
	}
	require.NoError(t, s.CreateRentIncrease(ctx, r))

	due, err := s.DueRentIncreases(ctx, ledger.MustParseDate("2026-03-15"))
	require.NoError(t, err)
	require.Len(t, due, 1)

	apply := func() error {
		return s.InTx(ctx, func(tx *Tx) error {
			_, err := tx.ApplyRentIncrease(ctx, r, "ops@example.com", time.Now())
			return err
		})
	}
	require.NoError(t, apply())
	assert.ErrorIs(t, apply(), ledger.ErrInvalidTransition)

	lease, err := s.GetLease(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "1600", lease.MonthlyRentAmount.String())

	got, err := s.GetSchedule(ctx, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, "1600", got.Amount.String())

	stored, err := s.GetRentIncrease(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.IncreaseApplied, stored.Status)
	assert.Equal(t, ledger.Actor("ops@example.com"), stored.AppliedBy)

	events, err := s.ListAuditEvents(ctx, "rent_increase", r.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	due, err = s.DueRentIncreases(ctx, ledger.MustParseDate("2026-03-15"))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestLedgerLinesJoinNames(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	postCharge(t, s, 1500)

	lines, err := s.LedgerLines(context.Background(), EntryFilter{AccountCode: ledger.CodeAccountsReceivable})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Tenant L1", lines[0].TenantName)
	assert.Equal(t, "Maple Court", lines[0].PropertyName)
	assert.Equal(t, "Unit L1", lines[0].UnitName)
	assert.Equal(t, "Accounts Receivable", lines[0].AccountName)

	lines, err = s.LedgerLines(context.Background(), EntryFilter{PropertyID: "P2"})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAccountTotalsAndBalances(t *testing.T) {
	s := openTestStore(t)
	seedLease(t, s, "L1")
	postCharge(t, s, 1500)
	postCharge(t, s, 50)
	ctx := context.Background()

	totals, err := s.AccountTotals(ctx, ledger.MustParseDate("2026-03-01"), ledger.MustParseDate("2026-03-31"))
	require.NoError(t, err)
	byCode := map[string]ledger.AccountTotal{}
	for _, tt := range totals {
		byCode[tt.AccountCode] = tt
	}
	assert.Equal(t, "1550", byCode[ledger.CodeRentalIncome].Credits.String())

	totals, err = s.AccountTotals(ctx, ledger.MustParseDate("2026-04-01"), ledger.MustParseDate("2026-04-30"))
	require.NoError(t, err)
	assert.Empty(t, totals)

	balances, err := s.LeaseBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1550", balances["L1"].String())
}
