package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
)

type txnDetailLoadedMsg struct {
	txn *ledger.Transaction
	err error
}

type txnDetailModel struct {
	txn     *ledger.Transaction
	loading bool
	err     error
	width   int
}

func (m *txnDetailModel) init(c *client.Client, id string) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		txn, err := c.GetTransaction(context.Background(), id)
		return txnDetailLoadedMsg{txn: txn, err: err}
	}
}

func (m txnDetailModel) update(msg tea.Msg) (txnDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txnDetailLoadedMsg:
		m.loading = false
		m.txn = msg.txn
		m.err = msg.err
	}
	return m, nil
}

func (m *txnDetailModel) view() string {
	if m.loading {
		return "Loading transaction..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.txn == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Transaction: %s", m.txn.ID)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Kind:"), m.txn.Kind))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Description:"), m.txn.Description))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Entry date:"), m.txn.EntryDate))
	if m.txn.LeaseID != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Lease:"), m.txn.LeaseID))
	}
	if m.txn.Period != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Period:"), m.txn.Period))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Posted by:"), m.txn.PostedBy))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Posted:"), m.txn.PostedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-6s %-28s %12s %12s", "ACCT", "NAME", "DEBIT", "CREDIT")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, e := range m.txn.Entries {
		name := e.AccountCode
		if acct, err := ledger.Lookup(e.AccountCode); err == nil {
			name = acct.Name
		}
		debit, credit := "", ""
		if e.Side == ledger.Debit {
			debit = money(e.Amount)
		} else {
			credit = money(e.Amount)
		}
		line := fmt.Sprintf("  %-6s %-28s %12s %12s", e.AccountCode, truncate(name, 28), debit, credit)
		if e.Side == ledger.Debit {
			b.WriteString(debitStyle.Render(line))
		} else {
			b.WriteString(creditStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + dimStyle.Render("  Press ESC to go back"))
	return b.String()
}
