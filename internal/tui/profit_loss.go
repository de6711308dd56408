package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/shopspring/decimal"
)

type profitLossLoadedMsg struct {
	pl  *ledger.ProfitLoss
	err error
}

// profitLossModel shows one calendar month at a time; [ and ] step months.
type profitLossModel struct {
	pl      *ledger.ProfitLoss
	month   ledger.Period
	loading bool
	err     error
	width   int
	height  int
}

func (m *profitLossModel) init(c *client.Client) tea.Cmd {
	if m.month == "" {
		m.month = ledger.PeriodOf(ledger.Today())
	}
	m.loading = true
	month := m.month
	return func() tea.Msg {
		start := month.DueDate(1)
		end := month.Next().DueDate(1).AddDays(-1)
		pl, err := c.ProfitLoss(context.Background(), start, end)
		return profitLossLoadedMsg{pl: pl, err: err}
	}
}

func (m profitLossModel) update(msg tea.Msg, c *client.Client) (profitLossModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profitLossLoadedMsg:
		m.loading = false
		m.pl = msg.pl
		m.err = msg.err

	case tea.KeyMsg:
		if key.Matches(msg, keys.Period) {
			if msg.String() == "]" {
				m.month = m.month.Next()
			} else {
				m.month = m.month.Prev()
			}
			return m, m.init(c)
		}
	}
	return m, nil
}

func (m *profitLossModel) view() string {
	if m.loading {
		return "Loading profit & loss..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.pl == nil {
		return dimStyle.Render("No data available.")
	}

	w := m.width
	if w < 60 {
		w = 80
	}
	pl := m.pl

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerStr("PROFIT & LOSS", w)))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(centerStr(fmt.Sprintf("%s to %s  (prior %s to %s)",
		pl.StartDate, pl.EndDate, pl.PriorStartDate, pl.PriorEndDate), w)))
	b.WriteString("\n\n")

	row := "    %-6s %-28s %12s %12s %8s\n"
	renderSection := func(title string, s ledger.ProfitLossSection) {
		b.WriteString(fmt.Sprintf("  %s\n", headerStyle.Render(title)))
		if len(s.Lines) == 0 {
			b.WriteString(dimStyle.Render("    (no activity)") + "\n")
		}
		for _, l := range s.Lines {
			b.WriteString(fmt.Sprintf(row, l.AccountCode, truncate(l.AccountName, 28),
				money(l.Amount), money(l.PriorAmount), percent(l.PercentChange)))
		}
		b.WriteString(fmt.Sprintf("    %s\n", strings.Repeat("─", 70)))
		b.WriteString(fmt.Sprintf(row, "", "Total "+title, money(s.Total), money(s.PriorTotal), percent(s.PercentChange)))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf(row, "", "", "CURRENT", "PRIOR", "CHANGE")))
	renderSection("Income", pl.Income)
	renderSection("Expenses", pl.Expenses)

	b.WriteString(fmt.Sprintf("    %s\n", strings.Repeat("═", 70)))
	net := fmt.Sprintf(row, "", "Net Income", money(pl.NetIncome), money(pl.PriorNetIncome), percent(pl.PercentChange))
	if pl.NetIncome.IsNegative() {
		b.WriteString(errorStyle.Render(net))
	} else {
		b.WriteString(successStyle.Render(net))
	}
	b.WriteString("\n" + dimStyle.Render("  Generated "+pl.GeneratedAt.Local().Format(time.Kitchen)))
	return b.String()
}

func percent(p *decimal.Decimal) string {
	if p == nil {
		return "n/a"
	}
	return p.StringFixed(1) + "%"
}
