package accounting

import (
	"context"
	"errors"
	"strings"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/events"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/store"
	"github.com/shopspring/decimal"
)

// PaymentInput records money received from a tenant.
type PaymentInput struct {
	LeaseID     string
	Amount      decimal.Decimal
	Date        ledger.Date
	Description string
}

// ChargeInput bills a tenant against an income account.
type ChargeInput struct {
	LeaseID     string
	Amount      decimal.Decimal
	AccountCode string
	Date        ledger.Date
	Description string
}

// ExpenseInput records a business expense paid from cash.
type ExpenseInput struct {
	AccountCode string
	Amount      decimal.Decimal
	Date        ledger.Date
	Description string
	ledger.Linkage
}

// DepositInput records a security deposit received for a lease.
type DepositInput struct {
	LeaseID     string
	Amount      decimal.Decimal
	Date        ledger.Date
	Description string
}

// CreditInput reverses part of a tenant's charges against an income account.
type CreditInput struct {
	LeaseID     string
	Amount      decimal.Decimal
	AccountCode string
	Date        ledger.Date
	Description string
}

// RecordPayment posts DR Cash / CR Accounts Receivable.
func (s *Service) RecordPayment(ctx context.Context, actor ledger.Actor, in PaymentInput) (*ledger.Transaction, error) {
	return s.record(ctx, posting{
		kind:        ledger.KindPayment,
		actor:       actor,
		leaseID:     in.LeaseID,
		amount:      in.Amount,
		date:        in.Date,
		description: defaultString(in.Description, "Payment received"),
	})
}

// RecordCharge posts DR Accounts Receivable / CR the given income account.
func (s *Service) RecordCharge(ctx context.Context, actor ledger.Actor, in ChargeInput) (*ledger.Transaction, error) {
	return s.record(ctx, posting{
		kind:        ledger.KindCharge,
		actor:       actor,
		leaseID:     in.LeaseID,
		accountCode: in.AccountCode,
		amount:      in.Amount,
		date:        in.Date,
		description: defaultString(in.Description, "Tenant charge"),
	})
}

// RecordExpense posts DR the given expense account / CR Cash.
func (s *Service) RecordExpense(ctx context.Context, actor ledger.Actor, in ExpenseInput) (*ledger.Transaction, error) {
	return s.record(ctx, posting{
		kind:        ledger.KindExpense,
		actor:       actor,
		accountCode: in.AccountCode,
		amount:      in.Amount,
		date:        in.Date,
		description: defaultString(in.Description, "Expense"),
		linkage:     in.Linkage,
	})
}

// RecordDeposit posts DR Cash / CR Security Deposits Held.
func (s *Service) RecordDeposit(ctx context.Context, actor ledger.Actor, in DepositInput) (*ledger.Transaction, error) {
	return s.record(ctx, posting{
		kind:        ledger.KindDeposit,
		actor:       actor,
		leaseID:     in.LeaseID,
		amount:      in.Amount,
		date:        in.Date,
		description: defaultString(in.Description, "Security deposit received"),
	})
}

// RecordCredit posts DR the given income account / CR Accounts Receivable.
func (s *Service) RecordCredit(ctx context.Context, actor ledger.Actor, in CreditInput) (*ledger.Transaction, error) {
	return s.record(ctx, posting{
		kind:        ledger.KindCredit,
		actor:       actor,
		leaseID:     in.LeaseID,
		accountCode: in.AccountCode,
		amount:      in.Amount,
		date:        in.Date,
		description: defaultString(in.Description, "Tenant credit"),
	})
}

// posting is one templated business transaction before it is written.
type posting struct {
	kind        ledger.TransactionKind
	actor       ledger.Actor
	leaseID     string
	accountCode string
	amount      decimal.Decimal
	date        ledger.Date
	description string
	linkage     ledger.Linkage
	scheduleID  string
	period      ledger.Period
}

// record validates p, then writes its header and both legs in one store
// transaction. Nothing is written unless every step succeeds.
func (s *Service) record(ctx context.Context, p posting) (*ledger.Transaction, error) {
	tmpl, err := ledger.LookupTemplate(p.kind)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateAmount(p.amount); err != nil {
		return nil, err
	}
	if tmpl.RequiresLease && strings.TrimSpace(p.leaseID) == "" {
		return nil, ledger.NewValidationError("leaseId", "Lease ID is required")
	}
	codes, err := tmpl.ResolveLegs(p.accountCode)
	if err != nil {
		return nil, err
	}
	if p.actor == "" {
		p.actor = ledger.SystemActor
	}
	if p.date.IsZero() {
		p.date = s.today()
	}
	if p.leaseID != "" {
		if _, err := s.store.GetLease(ctx, p.leaseID); err != nil {
			return nil, err
		}
	}

	txn := &ledger.Transaction{
		Kind:              p.kind,
		Description:       p.description,
		EntryDate:         p.date,
		LeaseID:           p.leaseID,
		PostedBy:          p.actor,
		ScheduledChargeID: p.scheduleID,
		Period:            p.period,
	}

	err = s.store.InTx(ctx, func(tx *store.Tx) error {
		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		for i, leg := range tmpl.Legs {
			e, err := s.postEntry(ctx, tx, ledger.Entry{
				TransactionID:     txn.ID,
				AccountCode:       codes[i],
				Amount:            p.amount,
				Side:              leg.Side,
				Description:       p.description,
				EntryDate:         p.date,
				LeaseID:           p.leaseID,
				PostedBy:          p.actor,
				ScheduledChargeID: p.scheduleID,
				Period:            p.period,
				Linkage:           p.linkage,
			})
			if err != nil {
				return err
			}
			txn.Entries = append(txn.Entries, *e)
		}
		// The finalize trigger checks the same balance in SQL.
		if err := txn.Validate(); err != nil {
			return err
		}
		return tx.Finalize(ctx, txn.ID)
	})
	if err != nil {
		return nil, s.postingFailure(p, err)
	}
	txn.Finalized = true

	s.log.Info().
		Str("transaction_id", txn.ID).
		Str("kind", string(txn.Kind)).
		Str("lease_id", txn.LeaseID).
		Str("amount", p.amount.StringFixed(2)).
		Str("posted_by", string(txn.PostedBy)).
		Msg("transaction posted")

	s.publish(ctx, txn)
	return txn, nil
}

// publish sends the posted event. The ledger write has already committed, so
// a slow or failing broker is logged and never returned. The caller's
// cancellation is ignored; publishTimeout bounds the wait instead.
func (s *Service) publish(ctx context.Context, txn *ledger.Transaction) {
	if s.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
		defer cancel()
	}
	if err := s.publisher.Publish(ctx, events.NewTransactionPosted(txn)); err != nil {
		s.log.Warn().Err(err).Str("transaction_id", txn.ID).Msg("publish transaction event failed")
	}
}

// postEntry validates one entry and appends it inside an open transaction.
func (s *Service) postEntry(ctx context.Context, tx *store.Tx, e ledger.Entry) (*ledger.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := tx.InsertEntry(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// postingFailure passes caller-facing errors through unchanged and wraps
// store failures in a PostingError after logging the cause.
func (s *Service) postingFailure(p posting, err error) error {
	if ledger.IsValidation(err) || ledger.IsNotFound(err) || errors.Is(err, ledger.ErrAlreadyPosted) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.log.Error().Err(err).
		Str("kind", string(p.kind)).
		Str("lease_id", p.leaseID).
		Str("account_code", p.accountCode).
		Msg("posting failed, transaction rolled back")
	return &ledger.PostingError{Op: strings.ToLower(string(p.kind)), Err: err}
}

func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
