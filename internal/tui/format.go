package tui

import (
	"strings"

	"github.com/shopspring/decimal"
)

// money renders an amount with two decimals and thousands separators.
// Negative amounts are shown in parentheses.
func money(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		return "(" + out + ")"
	}
	return out
}

// balanceStyled colors a receivable balance by sign.
func balanceStyled(d decimal.Decimal, width int) string {
	s := padLeft(money(d), width)
	switch {
	case d.IsPositive():
		return owedStyle.Render(s)
	case d.IsNegative():
		return creditBalanceStyle.Render(s)
	default:
		return dimStyle.Render(s)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 2 {
		return s[:n]
	}
	return s[:n-2] + ".."
}

func padLeft(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return strings.Repeat(" ", w-len(s)) + s
}

func centerStr(s string, w int) string {
	if len(s) >= w {
		return s
	}
	pad := (w - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// visibleRows returns the first row index to draw so cursor stays on screen.
func visibleRows(cursor, height int) (start, rows int) {
	rows = height - 4
	if rows < 1 {
		rows = 10
	}
	if cursor >= rows {
		start = cursor - rows + 1
	}
	return start, rows
}
