package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period is a calendar month in YYYY-MM form; one scheduled charge posts at
// most once per period.
type Period string

func PeriodOf(d Date) Period {
	return Period(d.Format("2006-01"))
}

func ParsePeriod(s string) (Period, error) {
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("invalid period %q (want YYYY-MM): %w", s, err)
	}
	return Period(s), nil
}

func (p Period) firstDay() Date {
	t, _ := time.Parse("2006-01", string(p))
	return DateOf(t)
}

// Next returns the following month.
func (p Period) Next() Period {
	return PeriodOf(Date{p.firstDay().AddDate(0, 1, 0)})
}

func (p Period) Prev() Period {
	return PeriodOf(Date{p.firstDay().AddDate(0, -1, 0)})
}

// DueDate returns the date in this period a charge with the given
// day-of-month falls due, clamped to the last day of short months.
func (p Period) DueDate(dayOfMonth int) Date {
	first := p.firstDay()
	last := Date{first.AddDate(0, 1, -1)}.Day()
	if dayOfMonth > last {
		dayOfMonth = last
	}
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	return NewDate(first.Year(), first.Month(), dayOfMonth)
}

// ScheduledCharge is a recurring charge template. It is never hard-deleted
// while its lease is active; setting EndDate retires it.
type ScheduledCharge struct {
	ID          string          `json:"id" yaml:"id"`
	LeaseID     string          `json:"leaseId" yaml:"leaseId"`
	AccountCode string          `json:"accountCode" yaml:"accountCode"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Description string          `json:"description" yaml:"description"`
	DayOfMonth  int             `json:"dayOfMonth" yaml:"dayOfMonth"`
	StartDate   Date            `json:"startDate" yaml:"startDate"`
	EndDate     Date            `json:"endDate" yaml:"endDate"`
	CreatedAt   time.Time       `json:"createdAt" yaml:"-"`
}

func (c *ScheduledCharge) Validate() error {
	if c.LeaseID == "" {
		return NewValidationError("leaseId", "Lease ID is required")
	}
	if _, err := RequireAccount(c.AccountCode, AccountIncome); err != nil {
		return err
	}
	if err := ValidateAmount(c.Amount); err != nil {
		return err
	}
	if c.DayOfMonth < 1 || c.DayOfMonth > 31 {
		return NewValidationError("dayOfMonth", "Day of month must be between 1 and 31")
	}
	if c.StartDate.IsZero() {
		return NewValidationError("startDate", "Start date is required")
	}
	if !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return NewValidationError("endDate", "End date is before start date")
	}
	return nil
}

// Ended reports whether the schedule has stopped by the given date.
func (c *ScheduledCharge) Ended(on Date) bool {
	return !c.EndDate.IsZero() && c.EndDate.Before(on)
}

// DuePeriods lists every period whose due date falls inside the schedule's
// window and on or before asOf, oldest first.
func (c *ScheduledCharge) DuePeriods(asOf Date) []Period {
	if c.StartDate.After(asOf) {
		return nil
	}
	var periods []Period
	for p := PeriodOf(c.StartDate); ; p = p.Next() {
		due := p.DueDate(c.DayOfMonth)
		if due.After(asOf) {
			break
		}
		if due.Before(c.StartDate) {
			continue
		}
		if !c.EndDate.IsZero() && due.After(c.EndDate) {
			break
		}
		periods = append(periods, p)
	}
	return periods
}

// ChargeState is the per (schedule, period) outcome of a posting run.
type ChargeState string

const (
	ChargePosted  ChargeState = "POSTED"
	ChargeSkipped ChargeState = "SKIPPED"
	ChargeError   ChargeState = "ERROR"
)

// PendingCharge is one due, not-yet-posted (schedule, period) pair.
// BeyondCatchUp marks periods older than the catch-up window; a post-due
// run reports them as skipped instead of posting them.
type PendingCharge struct {
	ScheduledCharge ScheduledCharge `json:"scheduledCharge"`
	Period          Period          `json:"period"`
	DueDate         Date            `json:"dueDate"`
	Amount          decimal.Decimal `json:"amount"`
	BeyondCatchUp   bool            `json:"beyondCatchUp,omitempty"`
}

// ChargeOutcome records what happened to one pending charge.
type ChargeOutcome struct {
	ScheduledChargeID string          `json:"scheduledChargeId"`
	LeaseID           string          `json:"leaseId"`
	Period            Period          `json:"period"`
	DueDate           Date            `json:"dueDate"`
	Amount            decimal.Decimal `json:"amount"`
	State             ChargeState     `json:"state"`
	TransactionID     string          `json:"transactionId,omitempty"`
	Reason            string          `json:"reason,omitempty"`
}

type PostDueSummary struct {
	Posted  int              `json:"posted"`
	Skipped int              `json:"skipped"`
	Errors  []BatchItemError `json:"errors"`
}

type PostDueResult struct {
	AsOf    Date            `json:"asOf"`
	Summary PostDueSummary  `json:"summary"`
	Items   []ChargeOutcome `json:"items"`
}

// Record appends an outcome and updates the summary counters.
func (r *PostDueResult) Record(o ChargeOutcome) {
	r.Items = append(r.Items, o)
	switch o.State {
	case ChargePosted:
		r.Summary.Posted++
	case ChargeSkipped:
		r.Summary.Skipped++
	case ChargeError:
		r.Summary.Errors = append(r.Summary.Errors, BatchItemError{
			ID:      o.ScheduledChargeID,
			LeaseID: o.LeaseID,
			Period:  string(o.Period),
			Reason:  o.Reason,
		})
	}
}
