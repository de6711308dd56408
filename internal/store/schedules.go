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

// CreateSchedule stores a schedule as given; type checks on the account are
// the caller's job, the store only enforces referential integrity.
func (s *Store) CreateSchedule(ctx context.Context, c *ledger.ScheduledCharge) error {
	if c.ID == "" {
		c.ID = uuid.Must(uuid.NewV7()).String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	cents, err := toCents(c.Amount)
	if err != nil {
		return err
	}
	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO scheduled_charges
			(id, lease_id, account_code, amount, description, day_of_month, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.LeaseID, c.AccountCode, cents, c.Description, c.DayOfMonth,
		c.StartDate.String(), nullDate(c.EndDate), formatTime(c.CreatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ledger.NewNotFoundError("lease", c.LeaseID, ledger.ErrLeaseNotFound)
		}
		return fmt.Errorf("insert scheduled charge: %w", err)
	}
	return nil
}

const scheduleColumns = `c.id, c.lease_id, c.account_code, c.amount, c.description, c.day_of_month,
	c.start_date, c.end_date, c.created_at`

func scanSchedule(row rowScanner) (*ledger.ScheduledCharge, error) {
	var (
		c                    ledger.ScheduledCharge
		cents                int64
		startDate, createdAt string
		endDate              sql.NullString
	)
	if err := row.Scan(&c.ID, &c.LeaseID, &c.AccountCode, &cents, &c.Description, &c.DayOfMonth,
		&startDate, &endDate, &createdAt); err != nil {
		return nil, err
	}
	c.Amount = fromCents(cents)
	c.StartDate, _ = ledger.ParseDate(startDate)
	c.EndDate = scanDate(endDate)
	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}

func (s *Store) GetSchedule(ctx context.Context, id string) (*ledger.ScheduledCharge, error) {
	c, err := scanSchedule(s.reader.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM scheduled_charges c WHERE c.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NewNotFoundError("scheduled charge", id, ledger.ErrScheduleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get scheduled charge: %w", err)
	}
	return c, nil
}

// ListSchedules returns schedules in creation order.
func (s *Store) ListSchedules(ctx context.Context, filter ScheduleFilter) ([]ledger.ScheduledCharge, error) {
	query := `SELECT ` + scheduleColumns + ` FROM scheduled_charges c WHERE 1=1`
	args := []any{}
	if filter.LeaseID != "" {
		query += ` AND c.lease_id = ?`
		args = append(args, filter.LeaseID)
	}
	if !filter.OpenOn.IsZero() {
		query += ` AND (c.end_date IS NULL OR c.end_date >= ?)`
		args = append(args, filter.OpenOn.String())
	}
	query += ` ORDER BY c.created_at, c.id`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scheduled charges: %w", err)
	}
	defer rows.Close()

	out := []ledger.ScheduledCharge{}
	for rows.Next() {
		c, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled charge: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// EndSchedule soft-ends a schedule. Schedules are never deleted.
func (s *Store) EndSchedule(ctx context.Context, id string, endDate ledger.Date) error {
	res, err := s.writer.ExecContext(ctx,
		`UPDATE scheduled_charges SET end_date = ? WHERE id = ?`, endDate.String(), id)
	if err != nil {
		return fmt.Errorf("end scheduled charge: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.NewNotFoundError("scheduled charge", id, ledger.ErrScheduleNotFound)
	}
	return nil
}

// PostedPeriods returns every period already posted for each schedule.
func (s *Store) PostedPeriods(ctx context.Context) (map[string]map[ledger.Period]bool, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT scheduled_charge_id, period FROM ledger_transactions
		WHERE scheduled_charge_id IS NOT NULL AND finalized = 1`)
	if err != nil {
		return nil, fmt.Errorf("posted periods: %w", err)
	}
	defer rows.Close()

	posted := make(map[string]map[ledger.Period]bool)
	for rows.Next() {
		var id string
		var period ledger.Period
		if err := rows.Scan(&id, &period); err != nil {
			return nil, fmt.Errorf("scan posted period: %w", err)
		}
		if posted[id] == nil {
			posted[id] = make(map[ledger.Period]bool)
		}
		posted[id][period] = true
	}
	return posted, rows.Err()
}

// updateOpenRentSchedules moves a lease's open rent schedules to a new amount.
func (t *Tx) updateOpenRentSchedules(ctx context.Context, leaseID string, amount int64, from ledger.Date) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE scheduled_charges SET amount = ?
		WHERE lease_id = ? AND account_code = ? AND (end_date IS NULL OR end_date >= ?)`,
		amount, leaseID, ledger.CodeRentalIncome, from.String())
	if err != nil {
		return 0, fmt.Errorf("update rent schedules: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
