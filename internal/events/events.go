package events

import (
	"context"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/shopspring/decimal"
)

// TransactionPosted is emitted after a business transaction commits.
type TransactionPosted struct {
	TransactionID     string                 `json:"transaction_id"`
	Kind              ledger.TransactionKind `json:"kind"`
	LeaseID           string                 `json:"lease_id,omitempty"`
	ScheduledChargeID string                 `json:"scheduled_charge_id,omitempty"`
	Period            ledger.Period          `json:"period,omitempty"`
	EntryDate         ledger.Date            `json:"entry_date"`
	Amount            decimal.Decimal        `json:"amount"`
	DebitAccount      string                 `json:"debit_account"`
	CreditAccount     string                 `json:"credit_account"`
	PostedBy          ledger.Actor           `json:"posted_by"`
	OccurredAt        time.Time              `json:"occurred_at"`
}

// NewTransactionPosted summarizes a two-legged transaction.
func NewTransactionPosted(txn *ledger.Transaction) TransactionPosted {
	ev := TransactionPosted{
		TransactionID:     txn.ID,
		Kind:              txn.Kind,
		LeaseID:           txn.LeaseID,
		ScheduledChargeID: txn.ScheduledChargeID,
		Period:            txn.Period,
		EntryDate:         txn.EntryDate,
		PostedBy:          txn.PostedBy,
		OccurredAt:        txn.PostedAt,
	}
	ev.Amount, _ = ledger.Totals(txn.Entries)
	for _, e := range txn.Entries {
		if e.Side == ledger.Debit && ev.DebitAccount == "" {
			ev.DebitAccount = e.AccountCode
		}
		if e.Side == ledger.Credit && ev.CreditAccount == "" {
			ev.CreditAccount = e.AccountCode
		}
	}
	return ev
}

type Publisher interface {
	Publish(ctx context.Context, event TransactionPosted) error
	Close() error
}

// Nop discards every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, TransactionPosted) error { return nil }
func (Nop) Close() error                                      { return nil }
