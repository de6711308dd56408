package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAccountCode    = errors.New("invalid account code")
	ErrAccountNotFound       = errors.New("account not found")
	ErrLeaseNotFound         = errors.New("lease not found")
	ErrPropertyNotFound      = errors.New("property not found")
	ErrUnitNotFound          = errors.New("unit not found")
	ErrScheduleNotFound      = errors.New("scheduled charge not found")
	ErrRentIncreaseNotFound  = errors.New("rent increase not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrUnbalancedTransaction = errors.New("transaction entries do not balance")
	ErrTooFewEntries         = errors.New("transaction must have at least 2 entries")
	ErrAlreadyPosted         = errors.New("scheduled charge already posted for period")
	ErrInvalidTransition     = errors.New("invalid status transition")
)

// ValidationError is bad caller input. It is surfaced as-is and never retried.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a referenced lease, schedule, account or increase that
// does not exist. It wraps the matching sentinel so errors.Is keeps working.
type NotFoundError struct {
	Entity string
	ID     string
	Err    error
}

func NewNotFoundError(entity, id string, sentinel error) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id, Err: sentinel}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// PostingError is a store-level failure while writing a business transaction.
// The whole transaction has been rolled back when one is returned.
type PostingError struct {
	Op  string
	Err error
}

func (e *PostingError) Error() string {
	return fmt.Sprintf("failed to record %s: %v", e.Op, e.Err)
}

func (e *PostingError) Unwrap() error {
	return e.Err
}

// BatchItemError is one failed item inside a batch run. It is collected into
// the batch result rather than returned.
type BatchItemError struct {
	ID      string `json:"id"`
	LeaseID string `json:"leaseId,omitempty"`
	Period  string `json:"period,omitempty"`
	Reason  string `json:"reason"`
}

func (e BatchItemError) Error() string {
	if e.Period != "" {
		return fmt.Sprintf("%s (%s): %s", e.ID, e.Period, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.ID, e.Reason)
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
