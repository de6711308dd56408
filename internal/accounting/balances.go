package accounting

import (
	"context"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/shopspring/decimal"
)

// BalanceOf returns sum(DR) - sum(CR) on Accounts Receivable for a lease.
// Positive means the tenant owes; negative means the tenant holds a credit.
func (s *Service) BalanceOf(ctx context.Context, leaseID string) (decimal.Decimal, error) {
	if leaseID == "" {
		return decimal.Zero, ledger.NewValidationError("leaseId", "Lease ID is required")
	}
	if _, err := s.store.GetLease(ctx, leaseID); err != nil {
		return decimal.Zero, err
	}
	entries, err := s.store.LeaseEntries(ctx, leaseID, ledger.CodeAccountsReceivable)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.ReceivableBalance(entries), nil
}

// AgingOf buckets a lease's unpaid charges as of asOf, applying credits to
// the oldest charges first. A zero asOf means today.
func (s *Service) AgingOf(ctx context.Context, leaseID string, asOf ledger.Date) (*ledger.TenantAging, error) {
	if leaseID == "" {
		return nil, ledger.NewValidationError("leaseId", "Lease ID is required")
	}
	if asOf.IsZero() {
		asOf = s.today()
	}
	lease, err := s.store.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.LeaseEntries(ctx, leaseID, ledger.CodeAccountsReceivable)
	if err != nil {
		return nil, err
	}

	aging, open := ledger.AgeReceivables(entries, asOf)
	return &ledger.TenantAging{
		LeaseSummary: ledger.LeaseSummary{
			LeaseID:    lease.ID,
			TenantName: lease.TenantName,
			UnitID:     lease.UnitID,
			Status:     lease.Status,
		},
		Aging:       aging,
		Balance:     aging.Total.Sub(aging.Credit),
		OpenCharges: open,
	}, nil
}
