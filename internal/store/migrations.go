package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	// The chart is code-defined; new codes are picked up on every open.
	if err := seedChart(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			code        TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			type        TEXT NOT NULL CHECK (type IN ('ASSET','LIABILITY','INCOME','EXPENSE')),
			description TEXT NOT NULL DEFAULT ''
		)`,

		// Owned by the CRUD layer; the ledger reads them for joins.
		`CREATE TABLE IF NOT EXISTS properties (
			id      TEXT PRIMARY KEY,
			name    TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS units (
			id          TEXT PRIMARY KEY,
			property_id TEXT NOT NULL REFERENCES properties(id),
			name        TEXT NOT NULL,
			bedrooms    INTEGER NOT NULL DEFAULT 0,
			market_rent INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_units_property ON units(property_id)`,
		`CREATE TABLE IF NOT EXISTS leases (
			id           TEXT PRIMARY KEY,
			unit_id      TEXT NOT NULL REFERENCES units(id),
			tenant_name  TEXT NOT NULL,
			tenant_email TEXT NOT NULL DEFAULT '',
			monthly_rent INTEGER NOT NULL DEFAULT 0 CHECK (monthly_rent >= 0),
			charge_day   INTEGER NOT NULL DEFAULT 1 CHECK (charge_day BETWEEN 1 AND 31),
			start_date   TEXT NOT NULL,
			end_date     TEXT,
			status       TEXT NOT NULL CHECK (status IN ('PENDING','ACTIVE','ENDED'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leases_unit ON leases(unit_id)`,
		`CREATE TABLE IF NOT EXISTS vendors (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS scheduled_charges (
			id           TEXT PRIMARY KEY,
			lease_id     TEXT NOT NULL REFERENCES leases(id),
			account_code TEXT NOT NULL REFERENCES accounts(code),
			amount       INTEGER NOT NULL CHECK (amount > 0),
			description  TEXT NOT NULL DEFAULT '',
			day_of_month INTEGER NOT NULL CHECK (day_of_month BETWEEN 1 AND 31),
			start_date   TEXT NOT NULL,
			end_date     TEXT,
			created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scheduled_charges_lease ON scheduled_charges(lease_id)`,

		`CREATE TABLE IF NOT EXISTS ledger_transactions (
			id                  TEXT PRIMARY KEY,
			kind                TEXT NOT NULL,
			description         TEXT NOT NULL DEFAULT '',
			entry_date          TEXT NOT NULL,
			lease_id            TEXT REFERENCES leases(id),
			posted_by           TEXT NOT NULL,
			scheduled_charge_id TEXT REFERENCES scheduled_charges(id),
			period              TEXT,
			finalized           INTEGER NOT NULL DEFAULT 0,
			posted_at           TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_transactions_posted ON ledger_transactions(posted_at)`,
		// At most one posting per (schedule, period), enforced here and
		// nowhere else.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_transactions_schedule_period
			ON ledger_transactions(scheduled_charge_id, period)
			WHERE scheduled_charge_id IS NOT NULL`,

		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id                  TEXT PRIMARY KEY,
			transaction_id      TEXT NOT NULL REFERENCES ledger_transactions(id),
			account_code        TEXT NOT NULL REFERENCES accounts(code),
			amount              INTEGER NOT NULL CHECK (amount > 0),
			side                TEXT NOT NULL CHECK (side IN ('DR','CR')),
			description         TEXT NOT NULL DEFAULT '',
			entry_date          TEXT NOT NULL,
			lease_id            TEXT REFERENCES leases(id),
			posted_by           TEXT NOT NULL,
			scheduled_charge_id TEXT,
			period              TEXT,
			property_id         TEXT,
			unit_id             TEXT,
			vendor_id           TEXT,
			work_order_id       TEXT,
			created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_txn ON ledger_entries(transaction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_account ON ledger_entries(account_code, entry_date)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_lease ON ledger_entries(lease_id, account_code)`,

		`CREATE TABLE IF NOT EXISTS rent_increases (
			id              TEXT PRIMARY KEY,
			lease_id        TEXT NOT NULL REFERENCES leases(id),
			previous_amount INTEGER NOT NULL DEFAULT 0,
			new_amount      INTEGER NOT NULL CHECK (new_amount > 0),
			effective_date  TEXT NOT NULL,
			notice_date     TEXT,
			status          TEXT NOT NULL DEFAULT 'SCHEDULED' CHECK (status IN ('SCHEDULED','APPLIED','CANCELLED')),
			notes           TEXT NOT NULL DEFAULT '',
			applied_at      TEXT,
			applied_by      TEXT,
			created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rent_increases_due ON rent_increases(status, effective_date)`,

		`CREATE TABLE IF NOT EXISTS audit_events (
			id         TEXT PRIMARY KEY,
			entity     TEXT NOT NULL,
			entity_id  TEXT NOT NULL,
			action     TEXT NOT NULL,
			actor      TEXT NOT NULL,
			detail     TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_events_entity ON audit_events(entity, entity_id)`,

		// Trigger: refuse to finalize an unbalanced or single-sided transaction
		`CREATE TRIGGER IF NOT EXISTS trg_ledger_check_balance
		BEFORE UPDATE OF finalized ON ledger_transactions
		WHEN NEW.finalized = 1
		BEGIN
			SELECT CASE
				WHEN (SELECT COUNT(*) FROM ledger_entries WHERE transaction_id = NEW.id) < 2
				THEN RAISE(ABORT, 'transaction must have at least 2 entries')
				WHEN (SELECT COALESCE(SUM(CASE side WHEN 'DR' THEN amount ELSE -amount END), 0)
					FROM ledger_entries WHERE transaction_id = NEW.id) != 0
				THEN RAISE(ABORT, 'transaction entries do not balance: debits != credits')
			END;
		END`,

		// Trigger: no entries may join a finalized transaction
		`CREATE TRIGGER IF NOT EXISTS trg_ledger_entries_insert_finalized
		BEFORE INSERT ON ledger_entries
		WHEN (SELECT finalized FROM ledger_transactions WHERE id = NEW.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot add entries to a finalized transaction');
		END`,

		// Triggers: entries are append-only
		`CREATE TRIGGER IF NOT EXISTS trg_ledger_entries_no_update
		BEFORE UPDATE ON ledger_entries
		BEGIN
			SELECT RAISE(ABORT, 'ledger entries are append-only');
		END`,
		`CREATE TRIGGER IF NOT EXISTS trg_ledger_entries_no_delete
		BEFORE DELETE ON ledger_entries
		BEGIN
			SELECT RAISE(ABORT, 'ledger entries are append-only');
		END`,

		// Triggers: finalized transaction headers are frozen
		`CREATE TRIGGER IF NOT EXISTS trg_ledger_transactions_frozen
		BEFORE UPDATE ON ledger_transactions
		WHEN OLD.finalized = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot modify a finalized transaction');
		END`,
		`CREATE TRIGGER IF NOT EXISTS trg_ledger_transactions_no_delete
		BEFORE DELETE ON ledger_transactions
		WHEN OLD.finalized = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot remove a finalized transaction');
		END`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			head := stmt
			if len(head) > 60 {
				head = head[:60]
			}
			return fmt.Errorf("exec %q: %w", head, err)
		}
	}
	return nil
}

func seedChart(ctx context.Context, tx *sql.Tx) error {
	for _, a := range ledger.ChartOfAccounts {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO accounts (code, name, type, description) VALUES (?, ?, ?, ?)`,
			a.Code, a.Name, string(a.Type), a.Description,
		)
		if err != nil {
			return fmt.Errorf("seed account %s: %w", a.Code, err)
		}
	}
	return nil
}
