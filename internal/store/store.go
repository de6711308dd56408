package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// EntryFilter narrows joined ledger lines for the transaction reports.
type EntryFilter struct {
	StartDate   ledger.Date
	EndDate     ledger.Date
	AccountCode string
	PropertyID  string
	LeaseID     string
	Limit       int
	Offset      int
}

type LeaseFilter struct {
	Status ledger.LeaseStatus
}

type ScheduleFilter struct {
	LeaseID string
	// OpenOn keeps schedules that have not ended before this date.
	OpenOn ledger.Date
}

// Store is the single writer of record. Writes go through a one-connection
// pool so SQLite never sees competing writers; reads use a wider pool.
type Store struct {
	writer *sql.DB
	reader *sql.DB
	log    zerolog.Logger
}

func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	s := &Store{writer: writer, reader: reader, log: logger.WithComponent("store")}

	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Debug().Str("path", dbPath).Msg("store opened")
	return s, nil
}

func (s *Store) Close() error {
	err1 := s.writer.Close()
	err2 := s.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Tx is an open write transaction. Every row of one business transaction is
// written through the same Tx so it commits or rolls back as a unit.
type Tx struct {
	tx *sql.Tx
}

// InTx runs fn inside a write transaction, committing only if fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Fixed-width so timestamps sort lexically; column defaults use the
// millisecond RFC3339 form, which parseTime also accepts.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

var (
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// Amounts are stored as integer cents. Fractional cents and values outside
// int64 are rejected rather than rounded or wrapped.
func toCents(d decimal.Decimal) (int64, error) {
	c := d.Shift(2)
	if !c.IsInteger() {
		return 0, ledger.NewValidationError("amount", fmt.Sprintf("Amount %s has more than 2 decimal places", d))
	}
	if c.LessThan(minCents) || c.GreaterThan(maxCents) {
		return 0, ledger.NewValidationError("amount", "Amount is too large")
	}
	return c.IntPart(), nil
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// nullDate stores the zero Date as NULL.
func nullDate(d ledger.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func scanDate(ns sql.NullString) ledger.Date {
	if !ns.Valid || ns.String == "" {
		return ledger.Date{}
	}
	d, _ := ledger.ParseDate(ns.String)
	return d
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func limitClause(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	q := fmt.Sprintf(` LIMIT %d`, limit)
	if offset > 0 {
		q += fmt.Sprintf(` OFFSET %d`, offset)
	}
	return q
}
