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

const entryPageSize = 200

type entriesLoadedMsg struct {
	entries []ledger.Entry
	err     error
}

type entryListModel struct {
	entries []ledger.Entry
	cursor  int
	loading bool
	err     error
	width   int
	height  int
}

func (m *entryListModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		entries, err := c.RecentEntries(context.Background(), entryPageSize)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m entryListModel) update(msg tea.Msg) (entryListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		m.entries = msg.entries
		m.err = msg.err
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

// selectedID returns the transaction of the highlighted entry.
func (m *entryListModel) selectedID() string {
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		return m.entries[m.cursor].TransactionID
	}
	return ""
}

func (m *entryListModel) view() string {
	if m.loading {
		return "Loading ledger..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.entries) == 0 {
		return dimStyle.Render("No ledger entries yet.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Ledger"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-10s %-6s %-3s %12s %-14s %s", "DATE", "ACCT", "", "AMOUNT", "LEASE", "DESCRIPTION")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	start, rows := visibleRows(m.cursor, m.height)
	for i := start; i < len(m.entries) && i < start+rows; i++ {
		e := m.entries[i]
		line := fmt.Sprintf("  %-10s %-6s %-3s %12s %-14s %s",
			e.EntryDate, e.AccountCode, e.Side, money(e.Amount), truncate(e.LeaseID, 14), truncate(e.Description, 36))
		switch {
		case i == m.cursor:
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		case e.Side == ledger.Debit:
			b.WriteString(debitStyle.Render(line))
		default:
			b.WriteString(creditStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d most recent entries", len(m.entries)))
	return b.String()
}
