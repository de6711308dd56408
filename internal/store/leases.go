package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
)

// Properties, units, leases and vendors belong to the CRUD layer. The upserts
// here exist for fixture import; the ledger itself only reads these tables.

func (s *Store) UpsertProperty(ctx context.Context, p *ledger.Property) error {
	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO properties (id, name, address) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, address = excluded.address`,
		p.ID, p.Name, p.Address,
	)
	if err != nil {
		return fmt.Errorf("upsert property %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) UpsertUnit(ctx context.Context, u *ledger.Unit) error {
	rent, err := toCents(u.MarketRent)
	if err != nil {
		return err
	}
	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO units (id, property_id, name, bedrooms, market_rent) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET property_id = excluded.property_id, name = excluded.name,
			bedrooms = excluded.bedrooms, market_rent = excluded.market_rent`,
		u.ID, u.PropertyID, u.Name, u.Bedrooms, rent,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ledger.NewNotFoundError("property", u.PropertyID, ledger.ErrPropertyNotFound)
		}
		return fmt.Errorf("upsert unit %s: %w", u.ID, err)
	}
	return nil
}

func (s *Store) UpsertLease(ctx context.Context, l *ledger.Lease) error {
	if err := l.Validate(); err != nil {
		return err
	}
	rent, err := toCents(l.MonthlyRentAmount)
	if err != nil {
		return err
	}
	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO leases (id, unit_id, tenant_name, tenant_email, monthly_rent, charge_day, start_date, end_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET unit_id = excluded.unit_id, tenant_name = excluded.tenant_name,
			tenant_email = excluded.tenant_email, monthly_rent = excluded.monthly_rent,
			charge_day = excluded.charge_day, start_date = excluded.start_date,
			end_date = excluded.end_date, status = excluded.status`,
		l.ID, l.UnitID, l.TenantName, l.TenantEmail, rent, l.ChargeDay,
		l.StartDate.String(), nullDate(l.EndDate), string(l.Status),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ledger.NewNotFoundError("unit", l.UnitID, ledger.ErrUnitNotFound)
		}
		return fmt.Errorf("upsert lease %s: %w", l.ID, err)
	}
	return nil
}

// SetLeaseStatus is used by fixtures and tests to end or reactivate a lease.
func (s *Store) SetLeaseStatus(ctx context.Context, id string, status ledger.LeaseStatus) error {
	res, err := s.writer.ExecContext(ctx, `UPDATE leases SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("set lease status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.NewNotFoundError("lease", id, ledger.ErrLeaseNotFound)
	}
	return nil
}

func (s *Store) UpsertVendor(ctx context.Context, v *ledger.Vendor) error {
	_, err := s.writer.ExecContext(ctx,
		`INSERT INTO vendors (id, name) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		v.ID, v.Name,
	)
	if err != nil {
		return fmt.Errorf("upsert vendor %s: %w", v.ID, err)
	}
	return nil
}

const leaseColumns = `l.id, l.unit_id, l.tenant_name, l.tenant_email, l.monthly_rent, l.charge_day,
	l.start_date, l.end_date, l.status`

func scanLease(row rowScanner) (*ledger.Lease, error) {
	var (
		l         ledger.Lease
		rent      int64
		startDate string
		endDate   sql.NullString
	)
	err := row.Scan(&l.ID, &l.UnitID, &l.TenantName, &l.TenantEmail, &rent, &l.ChargeDay,
		&startDate, &endDate, &l.Status)
	if err != nil {
		return nil, err
	}
	l.MonthlyRentAmount = fromCents(rent)
	l.StartDate, _ = ledger.ParseDate(startDate)
	l.EndDate = scanDate(endDate)
	return &l, nil
}

func getLease(ctx context.Context, q queryer, id string) (*ledger.Lease, error) {
	l, err := scanLease(q.QueryRowContext(ctx, `SELECT `+leaseColumns+` FROM leases l WHERE l.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NewNotFoundError("lease", id, ledger.ErrLeaseNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lease: %w", err)
	}
	return l, nil
}

func (s *Store) GetLease(ctx context.Context, id string) (*ledger.Lease, error) {
	return getLease(ctx, s.reader, id)
}

func (t *Tx) GetLease(ctx context.Context, id string) (*ledger.Lease, error) {
	return getLease(ctx, t.tx, id)
}

func (s *Store) ListLeases(ctx context.Context, filter LeaseFilter) ([]ledger.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases l`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE l.status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY l.id`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()

	leases := []ledger.Lease{}
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lease: %w", err)
		}
		leases = append(leases, *l)
	}
	return leases, rows.Err()
}

// LeaseSummaries joins leases with unit and property names, ordered by
// property then unit then tenant.
func (s *Store) LeaseSummaries(ctx context.Context, filter LeaseFilter) ([]ledger.LeaseSummary, error) {
	query := `SELECT l.id, l.tenant_name, p.id, p.name, u.id, u.name, l.status
		FROM leases l
		JOIN units u ON u.id = l.unit_id
		JOIN properties p ON p.id = u.property_id`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE l.status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY p.name, u.name, l.tenant_name, l.id`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lease summaries: %w", err)
	}
	defer rows.Close()

	out := []ledger.LeaseSummary{}
	for rows.Next() {
		var ls ledger.LeaseSummary
		if err := rows.Scan(&ls.LeaseID, &ls.TenantName, &ls.PropertyID, &ls.PropertyName,
			&ls.UnitID, &ls.UnitName, &ls.Status); err != nil {
			return nil, fmt.Errorf("scan lease summary: %w", err)
		}
		out = append(out, ls)
	}
	return out, rows.Err()
}

// RentRollRows lists every unit with its current ACTIVE lease, if any, and
// that lease's AR balance.
func (s *Store) RentRollRows(ctx context.Context) ([]ledger.RentRollRow, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT p.id, p.name, u.id, u.name, u.bedrooms, u.market_rent,
			l.id, l.tenant_name, l.monthly_rent, l.start_date, l.end_date,
			COALESCE((
				SELECT SUM(CASE e.side WHEN 'DR' THEN e.amount ELSE -e.amount END)
				FROM ledger_entries e
				JOIN ledger_transactions t ON t.id = e.transaction_id
				WHERE t.finalized = 1 AND e.lease_id = l.id AND e.account_code = ?
			), 0)
		FROM units u
		JOIN properties p ON p.id = u.property_id
		LEFT JOIN leases l ON l.id = (
			SELECT l2.id FROM leases l2
			WHERE l2.unit_id = u.id AND l2.status = 'ACTIVE'
			ORDER BY l2.start_date DESC LIMIT 1
		)
		ORDER BY p.name, p.id, u.name`, ledger.CodeAccountsReceivable)
	if err != nil {
		return nil, fmt.Errorf("rent roll: %w", err)
	}
	defer rows.Close()

	out := []ledger.RentRollRow{}
	for rows.Next() {
		var (
			r                      ledger.RentRollRow
			marketRent, balance    int64
			leaseID, tenant, start sql.NullString
			end                    sql.NullString
			rent                   sql.NullInt64
		)
		if err := rows.Scan(&r.PropertyID, &r.PropertyName, &r.Unit.UnitID, &r.Unit.UnitName,
			&r.Unit.Bedrooms, &marketRent, &leaseID, &tenant, &rent, &start, &end, &balance); err != nil {
			return nil, fmt.Errorf("scan rent roll: %w", err)
		}
		r.Unit.MarketRent = fromCents(marketRent)
		r.Unit.MonthlyRent = fromCents(rent.Int64)
		r.Unit.Balance = fromCents(balance)
		if leaseID.Valid {
			r.Unit.Occupied = true
			r.Unit.LeaseID = leaseID.String
			r.Unit.TenantName = tenant.String
			r.Unit.LeaseStart = scanDate(start)
			r.Unit.LeaseEnd = scanDate(end)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
