package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type RentIncreaseStatus string

const (
	IncreaseScheduled RentIncreaseStatus = "SCHEDULED"
	IncreaseApplied   RentIncreaseStatus = "APPLIED"
	IncreaseCancelled RentIncreaseStatus = "CANCELLED"
)

// RentIncrease moves SCHEDULED -> APPLIED or SCHEDULED -> CANCELLED, both terminal.
type RentIncrease struct {
	ID             string             `json:"id" yaml:"id"`
	LeaseID        string             `json:"leaseId" yaml:"leaseId"`
	PreviousAmount decimal.Decimal    `json:"previousAmount" yaml:"previousAmount"`
	NewAmount      decimal.Decimal    `json:"newAmount" yaml:"newAmount"`
	EffectiveDate  Date               `json:"effectiveDate" yaml:"effectiveDate"`
	NoticeDate     Date               `json:"noticeDate" yaml:"noticeDate"`
	Status         RentIncreaseStatus `json:"status" yaml:"status"`
	Notes          string             `json:"notes,omitempty" yaml:"notes"`
	AppliedAt      *time.Time         `json:"appliedAt,omitempty" yaml:"-"`
	AppliedBy      Actor              `json:"appliedBy,omitempty" yaml:"-"`
}

func (r *RentIncrease) Validate() error {
	if r.LeaseID == "" {
		return NewValidationError("leaseId", "Lease ID is required")
	}
	if err := ValidateAmount(r.NewAmount); err != nil {
		return NewValidationError("newAmount", "New amount must be greater than zero")
	}
	if r.EffectiveDate.IsZero() {
		return NewValidationError("effectiveDate", "Effective date is required")
	}
	if !r.NoticeDate.IsZero() && r.NoticeDate.After(r.EffectiveDate) {
		return NewValidationError("noticeDate", "Notice date is after effective date")
	}
	return nil
}

// DueOn reports whether the increase should be applied on today.
func (r *RentIncrease) DueOn(today Date) bool {
	return r.Status == IncreaseScheduled && !r.EffectiveDate.After(today)
}

// CanTransition checks the one-way status machine.
func (r *RentIncrease) CanTransition(to RentIncreaseStatus) error {
	if r.Status == IncreaseScheduled && (to == IncreaseApplied || to == IncreaseCancelled) {
		return nil
	}
	return fmt.Errorf("%w: rent increase %s is %s, cannot become %s", ErrInvalidTransition, r.ID, r.Status, to)
}

type AppliedIncrease struct {
	ID             string          `json:"id"`
	LeaseID        string          `json:"leaseId"`
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	NewAmount      decimal.Decimal `json:"newAmount"`
	EffectiveDate  Date            `json:"effectiveDate"`
}

type ApplyResult struct {
	Today   Date              `json:"today"`
	Applied []AppliedIncrease `json:"applied"`
	Errors  []BatchItemError  `json:"errors"`
}
