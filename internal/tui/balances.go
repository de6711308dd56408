package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
)

type balancesLoadedMsg struct {
	report *ledger.TenantBalances
	err    error
}

type balancesModel struct {
	report  *ledger.TenantBalances
	cursor  int
	loading bool
	err     error
	width   int
	height  int
}

func (m *balancesModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		report, err := c.TenantBalances(context.Background())
		return balancesLoadedMsg{report: report, err: err}
	}
}

func (m balancesModel) update(msg tea.Msg) (balancesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case balancesLoadedMsg:
		m.loading = false
		m.report = msg.report
		m.err = msg.err
		if m.report != nil && m.cursor >= len(m.report.Tenants) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.report != nil && m.cursor < len(m.report.Tenants)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *balancesModel) selectedID() string {
	if m.report == nil || m.cursor < 0 || m.cursor >= len(m.report.Tenants) {
		return ""
	}
	return m.report.Tenants[m.cursor].LeaseID
}

func (m *balancesModel) view() string {
	if m.loading {
		return "Loading tenant balances..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.report == nil || len(m.report.Tenants) == 0 {
		return dimStyle.Render("No active leases.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tenant Balances"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-24s %-18s %-10s %-7s %14s", "TENANT", "PROPERTY", "UNIT", "STATUS", "BALANCE")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	start, rows := visibleRows(m.cursor, m.height)
	for i := start; i < len(m.report.Tenants) && i < start+rows; i++ {
		t := m.report.Tenants[i]
		line := fmt.Sprintf("  %-24s %-18s %-10s %-7s ",
			truncate(t.TenantName, 24), truncate(t.PropertyName, 18), truncate(t.UnitName, 10), t.Status)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:] + padLeft(money(t.Balance), 14)))
		} else {
			b.WriteString(line + balanceStyled(t.Balance, 14))
		}
		b.WriteString("\n")
	}

	s := m.report.Summary
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n",
		labelStyle.Render("Owed:"), money(s.TotalOwed),
		"Credit:", money(s.TotalCredit),
		"Net:", money(s.NetReceivable)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d owing, %d in credit, %d paid up",
		s.TenantsOwing, s.TenantsWithCredit, s.TenantsPaidUp)))
	return b.String()
}
