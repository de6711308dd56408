package cmd

import (
	"fmt"
	"strings"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/shopspring/decimal"
)

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	pad := (w - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// formatSigned renders an amount with two decimals, negatives in parentheses.
func formatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return "(" + d.Neg().StringFixed(2) + ")"
	}
	return d.StringFixed(2)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-2] + ".."
}

func formatPercent(p *decimal.Decimal) string {
	if p == nil {
		return "n/a"
	}
	return p.StringFixed(1) + "%"
}

func parseDateFlag(name, v string) (ledger.Date, error) {
	if v == "" {
		return ledger.Date{}, nil
	}
	d, err := ledger.ParseDate(v)
	if err != nil {
		return ledger.Date{}, fmt.Errorf("--%s must be YYYY-MM-DD, got %q", name, v)
	}
	return d, nil
}

func parseAmountFlag(name, v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, fmt.Errorf("--%s is required", name)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s must be a number, got %q", name, v)
	}
	return d, nil
}
