package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
)

type leaseDetailLoadedMsg struct {
	aging     *ledger.TenantAging
	schedules []ledger.ScheduledCharge
	err       error
}

type leaseDetailModel struct {
	aging     *ledger.TenantAging
	schedules []ledger.ScheduledCharge
	loading   bool
	err       error
	width     int
}

func (m *leaseDetailModel) init(c *client.Client, leaseID string) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		aging, err := c.LeaseAging(context.Background(), leaseID, ledger.Date{})
		if err != nil {
			return leaseDetailLoadedMsg{err: err}
		}
		schedules, err := c.LeaseSchedules(context.Background(), leaseID)
		return leaseDetailLoadedMsg{aging: aging, schedules: schedules, err: err}
	}
}

func (m leaseDetailModel) update(msg tea.Msg) (leaseDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case leaseDetailLoadedMsg:
		m.loading = false
		m.aging = msg.aging
		m.schedules = msg.schedules
		m.err = msg.err
	}
	return m, nil
}

func (m *leaseDetailModel) view() string {
	if m.loading {
		return "Loading lease..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.aging == nil {
		return ""
	}
	a := m.aging

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Lease: %s", a.LeaseID)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Tenant:"), a.TenantName))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Unit:"), a.UnitID))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Status:"), a.Status))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Balance:"), balanceStyled(a.Balance, 0)))
	b.WriteString("\n")

	b.WriteString(renderAgingRow("  ", "Aging", a.Aging))
	b.WriteString("\n\n")

	if len(a.OpenCharges) == 0 {
		b.WriteString(dimStyle.Render("  No open charges."))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-10s %-30s %12s %12s %5s %-6s", "DATE", "DESCRIPTION", "ORIGINAL", "OPEN", "DAYS", "BUCKET")
		b.WriteString(headerStyle.Render(header))
		b.WriteString("\n")
		for _, oc := range a.OpenCharges {
			b.WriteString(fmt.Sprintf("  %-10s %-30s %12s %12s %5d %-6s\n",
				oc.EntryDate, truncate(oc.Description, 30), money(oc.Original), money(oc.Outstanding),
				oc.Days, oc.Bucket))
		}
	}

	if len(m.schedules) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("  %-6s %-24s %12s %4s %-10s %-10s", "ACCT", "SCHEDULE", "AMOUNT", "DAY", "START", "END")))
		b.WriteString("\n")
		for _, sc := range m.schedules {
			end := "-"
			if !sc.EndDate.IsZero() {
				end = sc.EndDate.String()
			}
			b.WriteString(fmt.Sprintf("  %-6s %-24s %12s %4d %-10s %-10s\n",
				sc.AccountCode, truncate(sc.Description, 24), money(sc.Amount), sc.DayOfMonth, sc.StartDate, end))
		}
	}

	b.WriteString("\n" + dimStyle.Render("  Press ESC to go back"))
	return b.String()
}
