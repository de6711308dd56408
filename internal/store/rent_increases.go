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

func (s *Store) CreateRentIncrease(ctx context.Context, r *ledger.RentIncrease) error {
	if r.ID == "" {
		r.ID = uuid.Must(uuid.NewV7()).String()
	}
	if r.Status == "" {
		r.Status = ledger.IncreaseScheduled
	}
	prevCents, err := toCents(r.PreviousAmount)
	if err != nil {
		return err
	}
	newCents, err := toCents(r.NewAmount)
	if err != nil {
		return err
	}
	_, err = s.writer.ExecContext(ctx,
		`INSERT INTO rent_increases
			(id, lease_id, previous_amount, new_amount, effective_date, notice_date, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.LeaseID, prevCents, newCents,
		r.EffectiveDate.String(), nullDate(r.NoticeDate), string(r.Status), r.Notes,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ledger.NewNotFoundError("lease", r.LeaseID, ledger.ErrLeaseNotFound)
		}
		return fmt.Errorf("insert rent increase: %w", err)
	}
	return nil
}

const increaseColumns = `r.id, r.lease_id, r.previous_amount, r.new_amount, r.effective_date,
	r.notice_date, r.status, r.notes, r.applied_at, r.applied_by`

func scanRentIncrease(row rowScanner) (*ledger.RentIncrease, error) {
	var (
		r                     ledger.RentIncrease
		previous, next        int64
		effective             string
		notice, appliedAt, by sql.NullString
	)
	if err := row.Scan(&r.ID, &r.LeaseID, &previous, &next, &effective,
		&notice, &r.Status, &r.Notes, &appliedAt, &by); err != nil {
		return nil, err
	}
	r.PreviousAmount = fromCents(previous)
	r.NewAmount = fromCents(next)
	r.EffectiveDate, _ = ledger.ParseDate(effective)
	r.NoticeDate = scanDate(notice)
	if appliedAt.Valid {
		t := parseTime(appliedAt.String)
		r.AppliedAt = &t
	}
	r.AppliedBy = ledger.Actor(by.String)
	return &r, nil
}

func (s *Store) GetRentIncrease(ctx context.Context, id string) (*ledger.RentIncrease, error) {
	r, err := scanRentIncrease(s.reader.QueryRowContext(ctx,
		`SELECT `+increaseColumns+` FROM rent_increases r WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NewNotFoundError("rent increase", id, ledger.ErrRentIncreaseNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rent increase: %w", err)
	}
	return r, nil
}

// DueRentIncreases lists SCHEDULED increases effective on or before today,
// oldest effective date first.
func (s *Store) DueRentIncreases(ctx context.Context, today ledger.Date) ([]ledger.RentIncrease, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT `+increaseColumns+` FROM rent_increases r
		WHERE r.status = ? AND r.effective_date <= ?
		ORDER BY r.effective_date, r.created_at, r.id`,
		string(ledger.IncreaseScheduled), today.String())
	if err != nil {
		return nil, fmt.Errorf("due rent increases: %w", err)
	}
	defer rows.Close()

	out := []ledger.RentIncrease{}
	for rows.Next() {
		r, err := scanRentIncrease(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rent increase: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// ApplyRentIncrease performs one increase inside t: the status flip is
// guarded on SCHEDULED so a concurrent or repeated apply changes nothing.
// It returns the lease rent that was replaced.
func (t *Tx) ApplyRentIncrease(ctx context.Context, r *ledger.RentIncrease, actor ledger.Actor, at time.Time) (*ledger.Lease, error) {
	lease, err := t.GetLease(ctx, r.LeaseID)
	if err != nil {
		return nil, err
	}

	res, err := t.tx.ExecContext(ctx,
		`UPDATE rent_increases SET status = ?, applied_at = ?, applied_by = ?
		WHERE id = ? AND status = ?`,
		string(ledger.IncreaseApplied), formatTime(at), string(actor),
		r.ID, string(ledger.IncreaseScheduled))
	if err != nil {
		return nil, fmt.Errorf("mark rent increase applied: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: rent increase %s is no longer SCHEDULED", ledger.ErrInvalidTransition, r.ID)
	}

	newCents, err := toCents(r.NewAmount)
	if err != nil {
		return nil, err
	}
	if _, err := t.tx.ExecContext(ctx,
		`UPDATE leases SET monthly_rent = ? WHERE id = ?`, newCents, r.LeaseID); err != nil {
		return nil, fmt.Errorf("update lease rent: %w", err)
	}

	schedules, err := t.updateOpenRentSchedules(ctx, r.LeaseID, newCents, r.EffectiveDate)
	if err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("monthly rent %s -> %s effective %s (%d rent schedule(s) updated)",
		lease.MonthlyRentAmount.StringFixed(2), r.NewAmount.StringFixed(2), r.EffectiveDate, schedules)
	if err := t.InsertAuditEvent(ctx, &AuditEvent{
		Entity:   "rent_increase",
		EntityID: r.ID,
		Action:   "APPLIED",
		Actor:    actor,
		Detail:   detail,
	}); err != nil {
		return nil, err
	}
	return lease, nil
}

// CancelRentIncrease moves a SCHEDULED increase to CANCELLED.
func (s *Store) CancelRentIncrease(ctx context.Context, id string, actor ledger.Actor) error {
	return s.InTx(ctx, func(t *Tx) error {
		res, err := t.tx.ExecContext(ctx,
			`UPDATE rent_increases SET status = ? WHERE id = ? AND status = ?`,
			string(ledger.IncreaseCancelled), id, string(ledger.IncreaseScheduled))
		if err != nil {
			return fmt.Errorf("cancel rent increase: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: rent increase %s is not SCHEDULED", ledger.ErrInvalidTransition, id)
		}
		return t.InsertAuditEvent(ctx, &AuditEvent{
			Entity:   "rent_increase",
			EntityID: id,
			Action:   "CANCELLED",
			Actor:    actor,
		})
	})
}
