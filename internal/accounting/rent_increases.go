package accounting

import (
	"context"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
)

// CreateRentIncrease schedules a rent change. PreviousAmount defaults to the
// lease's current rent.
func (s *Service) CreateRentIncrease(ctx context.Context, r *ledger.RentIncrease) error {
	if r.LeaseID == "" {
		return ledger.NewValidationError("leaseId", "Lease ID is required")
	}
	lease, err := s.store.GetLease(ctx, r.LeaseID)
	if err != nil {
		return err
	}
	if r.PreviousAmount.IsZero() {
		r.PreviousAmount = lease.MonthlyRentAmount
	}
	r.Status = ledger.IncreaseScheduled
	if err := r.Validate(); err != nil {
		return err
	}
	return s.store.CreateRentIncrease(ctx, r)
}

// CancelRentIncrease moves a SCHEDULED increase to CANCELLED.
func (s *Service) CancelRentIncrease(ctx context.Context, id string, actor ledger.Actor) (*ledger.RentIncrease, error) {
	r, err := s.store.GetRentIncrease(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.CanTransition(ledger.IncreaseCancelled); err != nil {
		return nil, err
	}
	if err := s.store.CancelRentIncrease(ctx, id, actor); err != nil {
		return nil, err
	}
	r.Status = ledger.IncreaseCancelled
	return r, nil
}

func (s *Service) GetRentIncrease(ctx context.Context, id string) (*ledger.RentIncrease, error) {
	return s.store.GetRentIncrease(ctx, id)
}

// ApplyPending applies every SCHEDULED increase effective on or before today.
// Each increase commits on its own: the lease rent, its open rent schedules,
// the status flip and an audit row. No ledger entry is posted. Failures are
// collected and the run continues.
func (s *Service) ApplyPending(ctx context.Context, today ledger.Date, actor ledger.Actor) (*ledger.ApplyResult, error) {
	if today.IsZero() {
		today = s.today()
	}
	if actor == "" {
		actor = ledger.SystemActor
	}
	result := &ledger.ApplyResult{
		Today:   today,
		Applied: []ledger.AppliedIncrease{},
		Errors:  []ledger.BatchItemError{},
	}

	due, err := s.store.DueRentIncreases(ctx, today)
	if err != nil {
		return nil, err
	}

	for i := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		r := &due[i]
		applied, err := s.applyOne(ctx, r, actor)
		if err != nil {
			s.log.Warn().Err(err).Str("rent_increase_id", r.ID).Str("lease_id", r.LeaseID).Msg("rent increase failed")
			result.Errors = append(result.Errors, ledger.BatchItemError{
				ID:      r.ID,
				LeaseID: r.LeaseID,
				Reason:  err.Error(),
			})
			continue
		}
		s.log.Debug().Str("rent_increase_id", r.ID).Str("lease_id", r.LeaseID).
			Str("new_amount", r.NewAmount.StringFixed(2)).Msg("rent increase applied")
		result.Applied = append(result.Applied, *applied)
	}

	s.log.Info().Str("today", today.String()).Int("applied", len(result.Applied)).
		Int("errors", len(result.Errors)).Msg("rent increases applied")
	return result, nil
}

func (s *Service) applyOne(ctx context.Context, r *ledger.RentIncrease, actor ledger.Actor) (*ledger.AppliedIncrease, error) {
	var before *ledger.Lease
	err := s.store.InTx(ctx, func(tx *store.Tx) error {
		lease, err := tx.GetLease(ctx, r.LeaseID)
		if err != nil {
			return err
		}
		if lease.Status == ledger.LeaseEnded {
			return fmt.Errorf("lease %s is %s", lease.ID, lease.Status)
		}
		before, err = tx.ApplyRentIncrease(ctx, r, actor, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ledger.AppliedIncrease{
		ID:             r.ID,
		LeaseID:        r.LeaseID,
		PreviousAmount: before.MonthlyRentAmount,
		NewAmount:      r.NewAmount,
		EffectiveDate:  r.EffectiveDate,
	}, nil
}
