package accounting

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/events"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.TransactionPosted
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.TransactionPosted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.TransactionPosted {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.TransactionPosted(nil), p.events...)
}

func newTestService(t *testing.T, opts ...Option) (*Service, *store.Store) {
	t.Helper()
	logger.Discard()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return New(st, opts...), st
}

// seedLease adds a property, a unit and a lease with the given status.
func seedLease(t *testing.T, st *store.Store, id string, status ledger.LeaseStatus) *ledger.Lease {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.UpsertProperty(ctx, &ledger.Property{ID: "P1", Name: "Maple Court"}))
	require.NoError(t, st.UpsertUnit(ctx, &ledger.Unit{
		ID:         "U-" + id,
		PropertyID: "P1",
		Name:       "Unit " + id,
		MarketRent: decimal.NewFromInt(1550),
	}))
	l := &ledger.Lease{
		ID:                id,
		UnitID:            "U-" + id,
		TenantName:        "Tenant " + id,
		MonthlyRentAmount: decimal.NewFromInt(1500),
		ChargeDay:         1,
		StartDate:         ledger.MustParseDate("2025-06-01"),
		Status:            status,
	}
	require.NoError(t, st.UpsertLease(ctx, l))
	return l
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) ledger.Date { return ledger.MustParseDate(s) }

func countEntries(t *testing.T, st *store.Store) int {
	t.Helper()
	n, err := st.CountEntries(context.Background())
	require.NoError(t, err)
	return n
}

var errBrokerDown = errors.New("broker down")
