package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
)

type agingLoadedMsg struct {
	report *ledger.AgingReport
	err    error
}

type agingModel struct {
	report  *ledger.AgingReport
	loading bool
	err     error
	width   int
	height  int
}

func (m *agingModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		report, err := c.AgingReport(context.Background(), ledger.Date{})
		return agingLoadedMsg{report: report, err: err}
	}
}

func (m agingModel) update(msg tea.Msg) (agingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case agingLoadedMsg:
		m.loading = false
		m.report = msg.report
		m.err = msg.err
	}
	return m, nil
}

const agingColumns = "%-24s %11s %11s %11s %11s %12s"

func renderAgingRow(indent, label string, a ledger.Aging) string {
	return indent + fmt.Sprintf(agingColumns, truncate(label, 24),
		money(a.Current), money(a.Days31To60), money(a.Days61To90), money(a.Over90), money(a.Total))
}

func (m *agingModel) view() string {
	if m.loading {
		return "Loading aging report..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.report == nil {
		return dimStyle.Render("No data available.")
	}

	w := m.width
	if w < 60 {
		w = 96
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerStr("RECEIVABLES AGING", w)))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(centerStr("As of "+m.report.AsOf.String(), w)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("  " + fmt.Sprintf(agingColumns, "TENANT", "0-30", "31-60", "61-90", "90+", "TOTAL")))
	b.WriteString("\n")

	if len(m.report.Tenants) == 0 {
		b.WriteString(dimStyle.Render("  (no active leases)") + "\n")
	}
	for _, t := range m.report.Tenants {
		row := renderAgingRow("  ", t.TenantName, t.Aging)
		if t.Aging.Over90.IsPositive() {
			b.WriteString(owedStyle.Render(row))
		} else {
			b.WriteString(row)
		}
		if t.Aging.Credit.IsPositive() {
			b.WriteString(creditBalanceStyle.Render(" credit " + money(t.Aging.Credit)))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("═", 84)))
	b.WriteString(renderAgingRow("  ", "Total", m.report.Totals))
	b.WriteString("\n")
	return b.String()
}
