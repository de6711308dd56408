package accounting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentSchedule(leaseID string, start string, day int) *ledger.ScheduledCharge {
	return &ledger.ScheduledCharge{
		LeaseID:     leaseID,
		AccountCode: ledger.CodeRentalIncome,
		Amount:      amt("1500"),
		Description: "Monthly rent",
		DayOfMonth:  day,
		StartDate:   ledger.MustParseDate(start),
	}
}

func TestPostDueIsIdempotent(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()

	sc := rentSchedule("L1", "2026-03-01", 1)
	require.NoError(t, svc.CreateSchedule(ctx, sc))

	first, err := svc.PostDue(ctx, day("2026-03-15"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Summary.Posted)
	assert.Zero(t, first.Summary.Skipped)
	assert.Empty(t, first.Summary.Errors)
	require.Len(t, first.Items, 1)
	assert.Equal(t, ledger.ChargePosted, first.Items[0].State)
	assert.NotEmpty(t, first.Items[0].TransactionID)

	second, err := svc.PostDue(ctx, day("2026-03-15"), "")
	require.NoError(t, err)
	assert.Zero(t, second.Summary.Posted)
	assert.Equal(t, 1, second.Summary.Skipped)
	assert.Equal(t, "already posted for period", second.Items[0].Reason)

	assert.Equal(t, 2, countEntries(t, st))

	txn, err := svc.GetTransaction(ctx, first.Items[0].TransactionID)
	require.NoError(t, err)
	assert.Equal(t, "Monthly rent (2026-03)", txn.Description)
	assert.Equal(t, "2026-03-01", txn.EntryDate.String())
	assert.Equal(t, sc.ID, txn.ScheduledChargeID)
	assert.Equal(t, ledger.Period("2026-03"), txn.Period)
}

func TestConcurrentPostDueRunsPostOnce(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()
	require.NoError(t, svc.CreateSchedule(ctx, rentSchedule("L1", "2026-03-01", 1)))

	var wg sync.WaitGroup
	results := make([]*ledger.PostDueResult, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.PostDue(ctx, day("2026-03-15"), "")
			if assert.NoError(t, err) {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	posted := 0
	for _, r := range results {
		require.NotNil(t, r)
		posted += r.Summary.Posted
		assert.Empty(t, r.Summary.Errors)
	}
	assert.Equal(t, 1, posted)
	assert.Equal(t, 2, countEntries(t, st))
}

func TestPostDueIsolatesFailures(t *testing.T) {
	svc, st := newTestService(t)
	for _, id := range []string{"L1", "L2", "L3"} {
		seedLease(t, st, id, ledger.LeaseActive)
	}
	ctx := context.Background()

	require.NoError(t, svc.CreateSchedule(ctx, rentSchedule("L1", "2026-03-01", 1)))

	// Written straight to the store: an expense account can never be
	// charged, so this schedule fails when posted.
	broken := rentSchedule("L2", "2026-03-01", 1)
	broken.AccountCode = "5000"
	require.NoError(t, st.CreateSchedule(ctx, broken))

	require.NoError(t, svc.CreateSchedule(ctx, rentSchedule("L3", "2026-03-01", 1)))

	res, err := svc.PostDue(ctx, day("2026-03-15"), "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.Posted)
	require.Len(t, res.Summary.Errors, 1)
	assert.Equal(t, broken.ID, res.Summary.Errors[0].ID)
	assert.Equal(t, "L2", res.Summary.Errors[0].LeaseID)
	assert.Equal(t, "2026-03", res.Summary.Errors[0].Period)

	for _, id := range []string{"L1", "L3"} {
		bal, err := svc.BalanceOf(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "1500", bal.String(), id)
	}
	bal, err := svc.BalanceOf(ctx, "L2")
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestPostDueSkipsInactiveLeases(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()
	require.NoError(t, svc.CreateSchedule(ctx, rentSchedule("L1", "2026-03-01", 1)))
	require.NoError(t, st.SetLeaseStatus(ctx, "L1", ledger.LeaseEnded))

	res, err := svc.PostDue(ctx, day("2026-03-15"), "")
	require.NoError(t, err)
	assert.Zero(t, res.Summary.Posted)
	assert.Equal(t, 1, res.Summary.Skipped)
	assert.Empty(t, res.Summary.Errors, "a deactivated lease is a skip, not an error")
	assert.Equal(t, ledger.ChargeSkipped, res.Items[0].State)
	assert.Contains(t, res.Items[0].Reason, "ENDED")
	assert.Zero(t, countEntries(t, st))
}

func TestPostDueCatchUpIsCapped(t *testing.T) {
	svc, st := newTestService(t, WithMaxCatchUpPeriods(3))
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()
	require.NoError(t, svc.CreateSchedule(ctx, rentSchedule("L1", "2025-06-01", 1)))

	res, err := svc.PostDue(ctx, day("2026-03-15"), "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Summary.Posted)
	assert.Equal(t, 7, res.Summary.Skipped)
	assert.Empty(t, res.Summary.Errors)
	require.Len(t, res.Items, 10, "every due period is itemized")

	for i, it := range res.Items[:7] {
		assert.Equal(t, ledger.ChargeSkipped, it.State, "item %d", i)
		assert.Equal(t, ReasonBeyondCatchUp, it.Reason)
	}
	assert.Equal(t, ledger.Period("2025-06"), res.Items[0].Period)
	assert.Equal(t, ledger.Period("2025-12"), res.Items[6].Period)
	for _, it := range res.Items[7:] {
		assert.Equal(t, ledger.ChargePosted, it.State)
	}
	assert.Equal(t, ledger.Period("2026-01"), res.Items[7].Period)
	assert.Equal(t, ledger.Period("2026-03"), res.Items[9].Period)

	bal, err := svc.BalanceOf(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, "4500", bal.String())

	pending, err := svc.FindPending(ctx, day("2026-03-15"))
	require.NoError(t, err)
	require.Len(t, pending, 7, "periods past the window stay pending")
	assert.Equal(t, ledger.Period("2025-06"), pending[0].Period)
	assert.Equal(t, ledger.Period("2025-12"), pending[6].Period)
	for _, pc := range pending {
		assert.True(t, pc.BeyondCatchUp, "period %s", pc.Period)
	}

	// The window counts unposted periods only, so raising the cap picks up
	// the backlog on the next run.
	wide := New(st, WithClock(func() time.Time { return testNow }), WithMaxCatchUpPeriods(12))
	res, err = wide.PostDue(ctx, day("2026-03-15"), "")
	require.NoError(t, err)
	assert.Equal(t, 7, res.Summary.Posted)
	assert.Equal(t, 3, res.Summary.Skipped)

	pending, err = wide.FindPending(ctx, day("2026-03-15"))
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCatchUpWindowCountsOnlyUnpostedPeriods(t *testing.T) {
	svc, st := newTestService(t, WithMaxCatchUpPeriods(2))
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()
	require.NoError(t, svc.CreateSchedule(ctx, rentSchedule("L1", "2026-01-01", 1)))

	res, err := svc.PostDue(ctx, day("2026-02-15"), "")
	require.NoError(t, err)
	require.Equal(t, 2, res.Summary.Posted)

	// Jan and Feb are posted; Mar and Apr are the two postable periods.
	res, err = svc.PostDue(ctx, day("2026-04-15"), "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.Posted)
	assert.Equal(t, 2, res.Summary.Skipped)
	for _, it := range res.Items {
		if it.State == ledger.ChargeSkipped {
			assert.Equal(t, "already posted for period", it.Reason)
		}
	}
}

func TestFindPending(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()

	sc := rentSchedule("L1", "2026-01-01", 31)
	require.NoError(t, svc.CreateSchedule(ctx, sc))

	pending, err := svc.FindPending(ctx, day("2026-02-28"))
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "2026-01-31", pending[0].DueDate.String())
	assert.Equal(t, "2026-02-28", pending[1].DueDate.String(), "due date clamps to the short month")

	_, err = svc.PostDue(ctx, day("2026-02-28"), "")
	require.NoError(t, err)

	pending, err = svc.FindPending(ctx, day("2026-02-28"))
	require.NoError(t, err)
	assert.Empty(t, pending)

	pending, err = svc.FindPending(ctx, ledger.Date{})
	require.NoError(t, err)
	assert.Empty(t, pending, "March 31 is after the clock's today")
}

func TestEndScheduleStopsFuturePeriods(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()

	sc := rentSchedule("L1", "2026-01-01", 1)
	require.NoError(t, svc.CreateSchedule(ctx, sc))

	ended, err := svc.EndSchedule(ctx, sc.ID, day("2026-01-31"))
	require.NoError(t, err)
	assert.Equal(t, "2026-01-31", ended.EndDate.String())

	res, err := svc.PostDue(ctx, day("2026-03-15"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Summary.Posted)

	_, err = svc.EndSchedule(ctx, sc.ID, day("2025-12-01"))
	assert.True(t, ledger.IsValidation(err))

	_, err = svc.EndSchedule(ctx, "missing", day("2026-02-01"))
	assert.True(t, ledger.IsNotFound(err))

	schedules, err := svc.ListSchedules(ctx, "L1")
	require.NoError(t, err)
	assert.Len(t, schedules, 1, "ended schedules are kept")
}

func TestCreateScheduleValidates(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	ctx := context.Background()

	bad := rentSchedule("L1", "2026-01-01", 1)
	bad.AccountCode = "5000"
	assert.True(t, ledger.IsValidation(svc.CreateSchedule(ctx, bad)))

	orphan := rentSchedule("ghost", "2026-01-01", 1)
	assert.True(t, ledger.IsNotFound(svc.CreateSchedule(ctx, orphan)))

	all, err := st.ListSchedules(ctx, store.ScheduleFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPostDueStopsOnCancelledContext(t *testing.T) {
	svc, st := newTestService(t)
	seedLease(t, st, "L1", ledger.LeaseActive)
	require.NoError(t, svc.CreateSchedule(context.Background(), rentSchedule("L1", "2026-03-01", 1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.PostDue(ctx, day("2026-03-15"), "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, countEntries(t, st))
}
