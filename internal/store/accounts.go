package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
)

// ListAccounts returns the seeded chart, optionally narrowed to one type.
func (s *Store) ListAccounts(ctx context.Context, accountType ledger.AccountType) ([]ledger.Account, error) {
	query := `SELECT code, name, type, description FROM accounts`
	args := []any{}
	if accountType != "" {
		query += ` WHERE type = ?`
		args = append(args, string(accountType))
	}
	query += ` ORDER BY code`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []ledger.Account{}
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.Code, &a.Name, &a.Type, &a.Description); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *Store) GetAccount(ctx context.Context, code string) (*ledger.Account, error) {
	var a ledger.Account
	err := s.reader.QueryRowContext(ctx,
		`SELECT code, name, type, description FROM accounts WHERE code = ?`, code,
	).Scan(&a.Code, &a.Name, &a.Type, &a.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.NewNotFoundError("account", code, ledger.ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}
