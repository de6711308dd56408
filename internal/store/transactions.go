package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/google/uuid"
)

// InsertTransaction writes an unfinalized transaction header. A second
// header for the same (schedule, period) fails with ledger.ErrAlreadyPosted.
func (t *Tx) InsertTransaction(ctx context.Context, txn *ledger.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.Must(uuid.NewV7()).String()
	}
	if txn.PostedAt.IsZero() {
		txn.PostedAt = time.Now().UTC()
	}

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO ledger_transactions
			(id, kind, description, entry_date, lease_id, posted_by, scheduled_charge_id, period, posted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, string(txn.Kind), txn.Description, txn.EntryDate.String(), nullString(txn.LeaseID),
		string(txn.PostedBy), nullString(txn.ScheduledChargeID), nullString(string(txn.Period)),
		formatTime(txn.PostedAt),
	)
	if err != nil {
		if txn.ScheduledChargeID != "" && isUniqueViolation(err) {
			return fmt.Errorf("%w: schedule %s period %s", ledger.ErrAlreadyPosted, txn.ScheduledChargeID, txn.Period)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// InsertEntry appends one ledger row to an open transaction.
func (t *Tx) InsertEntry(ctx context.Context, e *ledger.Entry) error {
	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	cents, err := toCents(e.Amount)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO ledger_entries
			(id, transaction_id, account_code, amount, side, description, entry_date, lease_id, posted_by,
			 scheduled_charge_id, period, property_id, unit_id, vendor_id, work_order_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TransactionID, e.AccountCode, cents, string(e.Side), e.Description,
		e.EntryDate.String(), nullString(e.LeaseID), string(e.PostedBy),
		nullString(e.ScheduledChargeID), nullString(string(e.Period)),
		nullString(e.PropertyID), nullString(e.UnitID), nullString(e.VendorID), nullString(e.WorkOrderID),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert entry %s %s: %w", e.Side, e.AccountCode, err)
	}
	return nil
}

// Finalize marks the transaction complete. The balance trigger aborts if its
// entries do not net to zero.
func (t *Tx) Finalize(ctx context.Context, txnID string) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE ledger_transactions SET finalized = 1 WHERE id = ? AND finalized = 0`, txnID)
	if err != nil {
		return fmt.Errorf("finalize transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.NewNotFoundError("transaction", txnID, ledger.ErrTransactionNotFound)
	}
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	var (
		txn                         ledger.Transaction
		entryDate, postedAt         string
		leaseID, scheduleID, period sql.NullString
		finalized                   int
	)
	err := s.reader.QueryRowContext(ctx,
		`SELECT id, kind, description, entry_date, lease_id, posted_by, scheduled_charge_id, period, finalized, posted_at
		FROM ledger_transactions WHERE id = ?`, id,
	).Scan(&txn.ID, &txn.Kind, &txn.Description, &entryDate, &leaseID, &txn.PostedBy,
		&scheduleID, &period, &finalized, &postedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NewNotFoundError("transaction", id, ledger.ErrTransactionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	txn.EntryDate, _ = ledger.ParseDate(entryDate)
	txn.LeaseID = leaseID.String
	txn.ScheduledChargeID = scheduleID.String
	txn.Period = ledger.Period(period.String)
	txn.Finalized = finalized == 1
	txn.PostedAt = parseTime(postedAt)

	rows, err := s.reader.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries e WHERE e.transaction_id = ? ORDER BY e.created_at, e.id`, id)
	if err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}
	defer rows.Close()

	txn.Entries, err = scanEntries(rows)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// RecentEntries returns the newest finalized entries first.
func (s *Store) RecentEntries(ctx context.Context, limit int) ([]ledger.Entry, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT `+entryColumns+`
		FROM ledger_entries e
		JOIN ledger_transactions t ON t.id = e.transaction_id
		WHERE t.finalized = 1
		ORDER BY e.created_at DESC, e.id DESC`+limitClause(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// LeaseEntries returns a lease's finalized entries on one account, oldest
// first. An empty accountCode returns every account.
func (s *Store) LeaseEntries(ctx context.Context, leaseID, accountCode string) ([]ledger.Entry, error) {
	query := `SELECT ` + entryColumns + `
		FROM ledger_entries e
		JOIN ledger_transactions t ON t.id = e.transaction_id
		WHERE t.finalized = 1 AND e.lease_id = ?`
	args := []any{leaseID}
	if accountCode != "" {
		query += ` AND e.account_code = ?`
		args = append(args, accountCode)
	}
	query += ` ORDER BY e.entry_date, e.created_at, e.id`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lease entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ReceivableEntries returns every lease-tagged AR entry grouped by lease.
func (s *Store) ReceivableEntries(ctx context.Context) (map[string][]ledger.Entry, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT `+entryColumns+`
		FROM ledger_entries e
		JOIN ledger_transactions t ON t.id = e.transaction_id
		WHERE t.finalized = 1 AND e.account_code = ? AND e.lease_id IS NOT NULL
		ORDER BY e.entry_date, e.created_at, e.id`, ledger.CodeAccountsReceivable)
	if err != nil {
		return nil, fmt.Errorf("receivable entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	byLease := make(map[string][]ledger.Entry)
	for _, e := range entries {
		byLease[e.LeaseID] = append(byLease[e.LeaseID], e)
	}
	return byLease, nil
}

// CountEntries counts every ledger row, finalized or not.
func (s *Store) CountEntries(ctx context.Context) (int, error) {
	var n int
	if err := s.reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM ledger_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

const entryColumns = `e.id, e.transaction_id, e.account_code, e.amount, e.side, e.description, e.entry_date,
	e.lease_id, e.posted_by, e.scheduled_charge_id, e.period,
	e.property_id, e.unit_id, e.vendor_id, e.work_order_id, e.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry reads entryColumns followed by any extra destinations.
func scanEntry(row rowScanner, extra ...any) (ledger.Entry, error) {
	var (
		e                                         ledger.Entry
		cents                                     int64
		entryDate, createdAt                      string
		leaseID, scheduleID, period               sql.NullString
		propertyID, unitID, vendorID, workOrderID sql.NullString
	)
	dest := []any{&e.ID, &e.TransactionID, &e.AccountCode, &cents, &e.Side, &e.Description, &entryDate,
		&leaseID, &e.PostedBy, &scheduleID, &period,
		&propertyID, &unitID, &vendorID, &workOrderID, &createdAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return e, fmt.Errorf("scan entry: %w", err)
	}
	e.Amount = fromCents(cents)
	e.EntryDate, _ = ledger.ParseDate(entryDate)
	e.CreatedAt = parseTime(createdAt)
	e.LeaseID = leaseID.String
	e.ScheduledChargeID = scheduleID.String
	e.Period = ledger.Period(period.String)
	e.PropertyID = propertyID.String
	e.UnitID = unitID.String
	e.VendorID = vendorID.String
	e.WorkOrderID = workOrderID.String
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]ledger.Entry, error) {
	entries := []ledger.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
