package accounting

import (
	"context"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
	"github.com/shopspring/decimal"
)

const (
	DefaultLedgerLimit = 50
	MaxLedgerLimit     = 500
)

// dateRange fills an open range: end defaults to today, start to the first
// of end's month.
func (s *Service) dateRange(start, end ledger.Date) (ledger.Date, ledger.Date, error) {
	if end.IsZero() {
		end = s.today()
	}
	if start.IsZero() {
		start = ledger.NewDate(end.Year(), end.Month(), 1)
	}
	if end.Before(start) {
		return start, end, ledger.NewValidationError("endDate", "End date is before start date")
	}
	return start, end, nil
}

func (s *Service) Accounts(ctx context.Context, accountType ledger.AccountType) ([]ledger.Account, error) {
	if accountType != "" && !ledger.ValidAccountType(accountType) {
		return nil, ledger.NewValidationError("type", "Unknown account type "+string(accountType))
	}
	return s.store.ListAccounts(ctx, accountType)
}

func (s *Service) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

// ProfitLoss nets income and expense accounts over [start, end] and compares
// each line with the preceding period of the same length.
func (s *Service) ProfitLoss(ctx context.Context, start, end ledger.Date) (*ledger.ProfitLoss, error) {
	start, end, err := s.dateRange(start, end)
	if err != nil {
		return nil, err
	}
	current, err := s.store.AccountTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	priorStart, priorEnd := ledger.PriorPeriod(start, end)
	prior, err := s.store.AccountTotals(ctx, priorStart, priorEnd)
	if err != nil {
		return nil, err
	}
	return ledger.BuildProfitLoss(start, end, current, prior), nil
}

func (s *Service) IncomeBreakdown(ctx context.Context, start, end ledger.Date) (*ledger.IncomeBreakdown, error) {
	start, end, err := s.dateRange(start, end)
	if err != nil {
		return nil, err
	}
	totals, err := s.store.AccountTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return ledger.BuildIncomeBreakdown(start, end, totals), nil
}

// AgingReport ages every ACTIVE lease as of asOf and totals the buckets.
func (s *Service) AgingReport(ctx context.Context, asOf ledger.Date) (*ledger.AgingReport, error) {
	if asOf.IsZero() {
		asOf = s.today()
	}
	leases, err := s.store.LeaseSummaries(ctx, store.LeaseFilter{Status: ledger.LeaseActive})
	if err != nil {
		return nil, err
	}
	receivables, err := s.store.ReceivableEntries(ctx)
	if err != nil {
		return nil, err
	}

	report := &ledger.AgingReport{
		AsOf:        asOf,
		Totals:      ledger.NewAging(),
		Tenants:     []ledger.TenantAging{},
		GeneratedAt: time.Now().UTC(),
	}
	for _, ls := range leases {
		aging, open := ledger.AgeReceivables(receivables[ls.LeaseID], asOf)
		report.Totals.Merge(aging)
		report.Tenants = append(report.Tenants, ledger.TenantAging{
			LeaseSummary: ls,
			Aging:        aging,
			Balance:      aging.Total.Sub(aging.Credit),
			OpenCharges:  open,
		})
	}
	return report, nil
}

// TenantBalances lists every ACTIVE lease plus any other lease still carrying
// a non-zero AR balance.
func (s *Service) TenantBalances(ctx context.Context) (*ledger.TenantBalances, error) {
	leases, err := s.store.LeaseSummaries(ctx, store.LeaseFilter{})
	if err != nil {
		return nil, err
	}
	balances, err := s.store.LeaseBalances(ctx)
	if err != nil {
		return nil, err
	}

	report := ledger.NewTenantBalances()
	for _, ls := range leases {
		bal, ok := balances[ls.LeaseID]
		if !ok {
			bal = decimal.Zero
		}
		if ls.Status != ledger.LeaseActive && bal.IsZero() {
			continue
		}
		report.Add(ledger.TenantBalance{LeaseSummary: ls, Balance: bal})
	}
	return report, nil
}

func (s *Service) RentRoll(ctx context.Context) (*ledger.RentRoll, error) {
	rows, err := s.store.RentRollRows(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.BuildRentRoll(rows), nil
}

// TransactionFilter narrows the all-transactions report.
type TransactionFilter struct {
	StartDate   ledger.Date
	EndDate     ledger.Date
	AccountCode string
	PropertyID  string
	LeaseID     string
}

// Transactions returns joined ledger lines in the filter's range with DR/CR
// totals. Without dates it covers the whole ledger.
func (s *Service) Transactions(ctx context.Context, f TransactionFilter) (*ledger.TransactionsReport, error) {
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return nil, ledger.NewValidationError("endDate", "End date is before start date")
	}
	if f.AccountCode != "" {
		if _, err := ledger.RequireAccount(f.AccountCode); err != nil {
			return nil, err
		}
	}
	lines, err := s.store.LedgerLines(ctx, store.EntryFilter{
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		AccountCode: f.AccountCode,
		PropertyID:  f.PropertyID,
		LeaseID:     f.LeaseID,
	})
	if err != nil {
		return nil, err
	}
	debits, credits := ledger.SumLines(lines)
	return &ledger.TransactionsReport{
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Lines:     lines,
		Debits:    debits,
		Credits:   credits,
	}, nil
}

// AccountDrillDown lists one account's entries in range with its net
// movement in the account's normal direction. Zero dates leave the range open.
func (s *Service) AccountDrillDown(ctx context.Context, code string, start, end ledger.Date) (*ledger.AccountDrillDown, error) {
	acct, err := ledger.Lookup(code)
	if err != nil {
		return nil, ledger.NewNotFoundError("account", code, ledger.ErrAccountNotFound)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, ledger.NewValidationError("endDate", "End date is before start date")
	}
	lines, err := s.store.LedgerLines(ctx, store.EntryFilter{
		StartDate:   start,
		EndDate:     end,
		AccountCode: code,
	})
	if err != nil {
		return nil, err
	}
	debits, credits := ledger.SumLines(lines)
	total := ledger.AccountTotal{AccountCode: code, Debits: debits, Credits: credits}
	return &ledger.AccountDrillDown{
		Account:   acct,
		StartDate: start,
		EndDate:   end,
		Lines:     lines,
		Debits:    debits,
		Credits:   credits,
		Net:       total.Net(acct.Type),
	}, nil
}

// RecentEntries returns the newest limit entries. limit <= 0 means the
// default; larger values are capped.
func (s *Service) RecentEntries(ctx context.Context, limit int) ([]ledger.Entry, error) {
	if limit <= 0 {
		limit = DefaultLedgerLimit
	}
	if limit > MaxLedgerLimit {
		limit = MaxLedgerLimit
	}
	return s.store.RecentEntries(ctx, limit)
}
