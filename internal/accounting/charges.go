package accounting

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
)

// CreateSchedule validates and stores a recurring charge for a lease.
func (s *Service) CreateSchedule(ctx context.Context, c *ledger.ScheduledCharge) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := s.store.GetLease(ctx, c.LeaseID); err != nil {
		return err
	}
	if err := s.store.CreateSchedule(ctx, c); err != nil {
		return err
	}
	s.log.Info().Str("schedule_id", c.ID).Str("lease_id", c.LeaseID).
		Str("amount", c.Amount.StringFixed(2)).Msg("scheduled charge created")
	return nil
}

// EndSchedule soft-ends a schedule on endDate (today when zero). Periods due
// after endDate are never posted.
func (s *Service) EndSchedule(ctx context.Context, id string, endDate ledger.Date) (*ledger.ScheduledCharge, error) {
	c, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	if endDate.IsZero() {
		endDate = s.today()
	}
	if endDate.Before(c.StartDate) {
		return nil, ledger.NewValidationError("endDate", "End date is before start date")
	}
	if err := s.store.EndSchedule(ctx, id, endDate); err != nil {
		return nil, err
	}
	c.EndDate = endDate
	return c, nil
}

func (s *Service) ListSchedules(ctx context.Context, leaseID string) ([]ledger.ScheduledCharge, error) {
	return s.store.ListSchedules(ctx, store.ScheduleFilter{LeaseID: leaseID})
}

// dueCharge is one (schedule, period) whose due date has arrived.
type dueCharge struct {
	ledger.PendingCharge
	posted bool
}

// ReasonBeyondCatchUp is reported for unposted periods older than the
// catch-up window.
const ReasonBeyondCatchUp = "beyond catch-up window"

// dueCharges enumerates every due (schedule, period) as of asOf, marking the
// ones the ledger already holds. Per schedule, only the most recent maxCatchUp
// unposted periods are postable; older unposted ones are flagged, not dropped.
func (s *Service) dueCharges(ctx context.Context, asOf ledger.Date) ([]dueCharge, error) {
	schedules, err := s.store.ListSchedules(ctx, store.ScheduleFilter{})
	if err != nil {
		return nil, err
	}
	posted, err := s.store.PostedPeriods(ctx)
	if err != nil {
		return nil, err
	}

	var due []dueCharge
	for _, c := range schedules {
		var unposted []int
		for _, p := range c.DuePeriods(asOf) {
			dc := dueCharge{
				PendingCharge: ledger.PendingCharge{
					ScheduledCharge: c,
					Period:          p,
					DueDate:         p.DueDate(c.DayOfMonth),
					Amount:          c.Amount,
				},
				posted: posted[c.ID][p],
			}
			if !dc.posted {
				unposted = append(unposted, len(due))
			}
			due = append(due, dc)
		}
		if s.maxCatchUp > 0 && len(unposted) > s.maxCatchUp {
			for _, i := range unposted[:len(unposted)-s.maxCatchUp] {
				due[i].BeyondCatchUp = true
			}
		}
	}
	return due, nil
}

// FindPending lists every (schedule, period) due on or before asOf that has
// not been posted, oldest due date first within each schedule. Periods past
// the catch-up window are included with BeyondCatchUp set.
func (s *Service) FindPending(ctx context.Context, asOf ledger.Date) ([]ledger.PendingCharge, error) {
	if asOf.IsZero() {
		asOf = s.today()
	}
	due, err := s.dueCharges(ctx, asOf)
	if err != nil {
		return nil, err
	}
	pending := []ledger.PendingCharge{}
	for _, dc := range due {
		if !dc.posted {
			pending = append(pending, dc.PendingCharge)
		}
	}
	return pending, nil
}

// PostDue posts every due charge as of asOf and itemizes each due period as
// POSTED, SKIPPED or ERROR. Skipped covers periods already in the ledger,
// periods beyond the catch-up window, and charges whose lease is no longer
// ACTIVE or has ended: a deactivated lease is a skip, not an error, and
// appears in Summary.Skipped rather than Summary.Errors. Each charge commits
// on its own; one failure is recorded and the run moves on. A cancelled
// context stops the run between charges and returns what was done so far.
func (s *Service) PostDue(ctx context.Context, asOf ledger.Date, actor ledger.Actor) (*ledger.PostDueResult, error) {
	if asOf.IsZero() {
		asOf = s.today()
	}
	if actor == "" {
		actor = ledger.SystemActor
	}
	result := &ledger.PostDueResult{
		AsOf:  asOf,
		Items: []ledger.ChargeOutcome{},
		Summary: ledger.PostDueSummary{
			Errors: []ledger.BatchItemError{},
		},
	}

	due, err := s.dueCharges(ctx, asOf)
	if err != nil {
		return nil, err
	}
	leases, err := s.leaseIndex(ctx)
	if err != nil {
		return nil, err
	}

	for i, dc := range due {
		if err := ctx.Err(); err != nil {
			s.log.Warn().Err(err).Int("remaining", len(due)-i).Msg("post-due run interrupted")
			return result, err
		}

		var outcome ledger.ChargeOutcome
		switch {
		case dc.posted:
			outcome = skipped(dc.PendingCharge, "already posted for period")
		case dc.BeyondCatchUp:
			outcome = skipped(dc.PendingCharge, ReasonBeyondCatchUp)
		default:
			outcome = s.postOne(ctx, dc.PendingCharge, leases[dc.ScheduledCharge.LeaseID], actor)
		}
		result.Record(outcome)

		ev := s.log.Debug()
		if outcome.State == ledger.ChargeError {
			ev = s.log.Warn()
		}
		ev.Str("schedule_id", outcome.ScheduledChargeID).
			Str("lease_id", outcome.LeaseID).
			Str("period", string(outcome.Period)).
			Str("state", string(outcome.State)).
			Str("reason", outcome.Reason).
			Msg("scheduled charge")
	}

	s.log.Info().
		Str("as_of", asOf.String()).
		Int("posted", result.Summary.Posted).
		Int("skipped", result.Summary.Skipped).
		Int("errors", len(result.Summary.Errors)).
		Msg("post-due run complete")
	return result, nil
}

func skipped(pc ledger.PendingCharge, reason string) ledger.ChargeOutcome {
	return ledger.ChargeOutcome{
		ScheduledChargeID: pc.ScheduledCharge.ID,
		LeaseID:           pc.ScheduledCharge.LeaseID,
		Period:            pc.Period,
		DueDate:           pc.DueDate,
		Amount:            pc.Amount,
		State:             ledger.ChargeSkipped,
		Reason:            reason,
	}
}

func (s *Service) postOne(ctx context.Context, pc ledger.PendingCharge, lease *ledger.Lease, actor ledger.Actor) ledger.ChargeOutcome {
	c := pc.ScheduledCharge
	out := ledger.ChargeOutcome{
		ScheduledChargeID: c.ID,
		LeaseID:           c.LeaseID,
		Period:            pc.Period,
		DueDate:           pc.DueDate,
		Amount:            pc.Amount,
	}

	switch {
	case lease == nil:
		out.State = ledger.ChargeError
		out.Reason = fmt.Sprintf("lease %s not found", c.LeaseID)
		return out
	case lease.Status != ledger.LeaseActive:
		out.State = ledger.ChargeSkipped
		out.Reason = fmt.Sprintf("lease %s is %s", lease.ID, lease.Status)
		return out
	case !lease.EndDate.IsZero() && pc.DueDate.After(lease.EndDate):
		out.State = ledger.ChargeSkipped
		out.Reason = fmt.Sprintf("lease %s ended %s", lease.ID, lease.EndDate)
		return out
	case c.Ended(pc.DueDate):
		out.State = ledger.ChargeSkipped
		out.Reason = fmt.Sprintf("schedule ended %s", c.EndDate)
		return out
	}

	desc := c.Description
	if desc == "" {
		desc = "Scheduled charge"
	}
	txn, err := s.record(ctx, posting{
		kind:        ledger.KindCharge,
		actor:       actor,
		leaseID:     c.LeaseID,
		accountCode: c.AccountCode,
		amount:      c.Amount,
		date:        pc.DueDate,
		description: fmt.Sprintf("%s (%s)", desc, pc.Period),
		scheduleID:  c.ID,
		period:      pc.Period,
	})
	switch {
	case errors.Is(err, ledger.ErrAlreadyPosted):
		out.State = ledger.ChargeSkipped
		out.Reason = "already posted for period"
	case err != nil:
		out.State = ledger.ChargeError
		out.Reason = err.Error()
	default:
		out.State = ledger.ChargePosted
		out.TransactionID = txn.ID
	}
	return out
}

func (s *Service) leaseIndex(ctx context.Context) (map[string]*ledger.Lease, error) {
	leases, err := s.store.ListLeases(ctx, store.LeaseFilter{})
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*ledger.Lease, len(leases))
	for i := range leases {
		idx[leases[i].ID] = &leases[i]
	}
	return idx, nil
}
