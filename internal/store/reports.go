package store

import (
	"context"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/shopspring/decimal"
)

// AccountTotals sums finalized debits and credits per account for entries
// dated within [start, end]. Zero dates leave that side of the range open.
func (s *Store) AccountTotals(ctx context.Context, start, end ledger.Date) ([]ledger.AccountTotal, error) {
	query := `SELECT e.account_code,
			COALESCE(SUM(CASE e.side WHEN 'DR' THEN e.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE e.side WHEN 'CR' THEN e.amount ELSE 0 END), 0)
		FROM ledger_entries e
		JOIN ledger_transactions t ON t.id = e.transaction_id
		WHERE t.finalized = 1`
	args := []any{}
	if !start.IsZero() {
		query += ` AND e.entry_date >= ?`
		args = append(args, start.String())
	}
	if !end.IsZero() {
		query += ` AND e.entry_date <= ?`
		args = append(args, end.String())
	}
	query += ` GROUP BY e.account_code ORDER BY e.account_code`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("account totals: %w", err)
	}
	defer rows.Close()

	out := []ledger.AccountTotal{}
	for rows.Next() {
		var t ledger.AccountTotal
		var debits, credits int64
		if err := rows.Scan(&t.AccountCode, &debits, &credits); err != nil {
			return nil, fmt.Errorf("scan account total: %w", err)
		}
		t.Debits = fromCents(debits)
		t.Credits = fromCents(credits)
		out = append(out, t)
	}
	return out, rows.Err()
}

// LeaseBalances returns the AR balance of every lease with AR activity.
func (s *Store) LeaseBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT e.lease_id, SUM(CASE e.side WHEN 'DR' THEN e.amount ELSE -e.amount END)
		FROM ledger_entries e
		JOIN ledger_transactions t ON t.id = e.transaction_id
		WHERE t.finalized = 1 AND e.account_code = ? AND e.lease_id IS NOT NULL
		GROUP BY e.lease_id`, ledger.CodeAccountsReceivable)
	if err != nil {
		return nil, fmt.Errorf("lease balances: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var leaseID string
		var cents int64
		if err := rows.Scan(&leaseID, &cents); err != nil {
			return nil, fmt.Errorf("scan lease balance: %w", err)
		}
		out[leaseID] = fromCents(cents)
	}
	return out, rows.Err()
}

// LedgerLines returns finalized entries joined with account, tenant, unit,
// property and vendor names, oldest first.
func (s *Store) LedgerLines(ctx context.Context, filter EntryFilter) ([]ledger.LedgerLine, error) {
	query := `SELECT ` + entryColumns + `,
			a.name, a.type,
			COALESCE(l.tenant_name, ''), COALESCE(p.name, ''), COALESCE(u.name, ''), COALESCE(v.name, '')
		FROM ledger_entries e
		JOIN ledger_transactions t ON t.id = e.transaction_id
		JOIN accounts a ON a.code = e.account_code
		LEFT JOIN leases l ON l.id = e.lease_id
		LEFT JOIN units u ON u.id = COALESCE(e.unit_id, l.unit_id)
		LEFT JOIN properties p ON p.id = COALESCE(e.property_id, u.property_id)
		LEFT JOIN vendors v ON v.id = e.vendor_id
		WHERE t.finalized = 1`
	args := []any{}
	if !filter.StartDate.IsZero() {
		query += ` AND e.entry_date >= ?`
		args = append(args, filter.StartDate.String())
	}
	if !filter.EndDate.IsZero() {
		query += ` AND e.entry_date <= ?`
		args = append(args, filter.EndDate.String())
	}
	if filter.AccountCode != "" {
		query += ` AND e.account_code = ?`
		args = append(args, filter.AccountCode)
	}
	if filter.LeaseID != "" {
		query += ` AND e.lease_id = ?`
		args = append(args, filter.LeaseID)
	}
	if filter.PropertyID != "" {
		query += ` AND COALESCE(e.property_id, u.property_id) = ?`
		args = append(args, filter.PropertyID)
	}
	query += ` ORDER BY e.entry_date, e.created_at, e.id` + limitClause(filter.Limit, filter.Offset)

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger lines: %w", err)
	}
	defer rows.Close()

	lines := []ledger.LedgerLine{}
	for rows.Next() {
		var l ledger.LedgerLine
		e, err := scanEntry(rows, &l.AccountName, &l.AccountType,
			&l.TenantName, &l.PropertyName, &l.UnitName, &l.VendorName)
		if err != nil {
			return nil, err
		}
		l.Entry = e
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
