package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the debit/credit side of a ledger entry.
type Side string

const (
	Debit  Side = "DR"
	Credit Side = "CR"
)

func (s Side) Valid() bool {
	return s == Debit || s == Credit
}

// Actor identifies who posted an entry. It is supplied by the auth layer and
// is opaque to the ledger.
type Actor string

const SystemActor Actor = "system"

// Linkage ties an entry to the records it came from for report drill-down.
type Linkage struct {
	PropertyID  string `json:"propertyId,omitempty"`
	UnitID      string `json:"unitId,omitempty"`
	VendorID    string `json:"vendorId,omitempty"`
	WorkOrderID string `json:"workOrderId,omitempty"`
}

// Entry is one immutable ledger row. Entries are never updated or deleted;
// corrections are posted as offsetting entries.
type Entry struct {
	ID                string          `json:"id"`
	TransactionID     string          `json:"transactionId"`
	AccountCode       string          `json:"accountCode"`
	Amount            decimal.Decimal `json:"amount"`
	Side              Side            `json:"debitCredit"`
	Description       string          `json:"description"`
	EntryDate         Date            `json:"entryDate"`
	LeaseID           string          `json:"leaseId,omitempty"`
	PostedBy          Actor           `json:"postedBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	ScheduledChargeID string          `json:"scheduledChargeId,omitempty"`
	Period            Period          `json:"period,omitempty"`
	Linkage
}

// Signed returns the amount as a debit-positive number.
func (e Entry) Signed() decimal.Decimal {
	if e.Side == Credit {
		return e.Amount.Neg()
	}
	return e.Amount
}

var hundred = decimal.NewFromInt(100)

// MaxAmount is the largest single amount accepted. Amounts are stored as
// int64 cents, and the bound leaves room to sum millions of them.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// ValidateAmount enforces 0 < amount <= MaxAmount with at most two decimal
// places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewValidationError("amount", "Amount must be greater than zero")
	}
	if amount.GreaterThan(MaxAmount) {
		return NewValidationError("amount", "Amount is too large")
	}
	if !amount.Mul(hundred).Equal(amount.Mul(hundred).Floor()) {
		return NewValidationError("amount", fmt.Sprintf("Amount %s has more than 2 decimal places", amount))
	}
	return nil
}

// Validate checks one entry in isolation.
func (e *Entry) Validate() error {
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if !e.Side.Valid() {
		return NewValidationError("debitCredit", fmt.Sprintf("debitCredit must be DR or CR, got %q", e.Side))
	}
	if _, err := RequireAccount(e.AccountCode); err != nil {
		return err
	}
	if e.EntryDate.IsZero() {
		return NewValidationError("entryDate", "Entry date is required")
	}
	if e.PostedBy == "" {
		return NewValidationError("postedBy", "Posted-by actor is required")
	}
	return nil
}

type TransactionKind string

const (
	KindPayment TransactionKind = "PAYMENT"
	KindCharge  TransactionKind = "CHARGE"
	KindExpense TransactionKind = "EXPENSE"
	KindDeposit TransactionKind = "DEPOSIT"
	KindCredit  TransactionKind = "CREDIT"
)

// Transaction groups the balanced entries of one business event.
type Transaction struct {
	ID                string          `json:"id"`
	Kind              TransactionKind `json:"kind"`
	Description       string          `json:"description"`
	EntryDate         Date            `json:"entryDate"`
	LeaseID           string          `json:"leaseId,omitempty"`
	PostedBy          Actor           `json:"postedBy"`
	ScheduledChargeID string          `json:"scheduledChargeId,omitempty"`
	Period            Period          `json:"period,omitempty"`
	Entries           []Entry         `json:"entries,omitempty"`
	Finalized         bool            `json:"finalized"`
	PostedAt          time.Time       `json:"postedAt"`
}

// Validate checks a transaction: at least 2 entries, every entry
// valid, and debits equal credits.
func (t *Transaction) Validate() error {
	if len(t.Entries) < 2 {
		return ErrTooFewEntries
	}
	debits, credits := decimal.Zero, decimal.Zero
	for i := range t.Entries {
		if err := t.Entries[i].Validate(); err != nil {
			return err
		}
		if t.Entries[i].Side == Debit {
			debits = debits.Add(t.Entries[i].Amount)
		} else {
			credits = credits.Add(t.Entries[i].Amount)
		}
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits %s != credits %s", ErrUnbalancedTransaction,
			debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}

// Totals returns the summed debit and credit amounts of a set of entries.
func Totals(entries []Entry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.Side == Debit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}
	return debits, credits
}
