package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
)

type mode int

const (
	modeBalances mode = iota
	modeLeaseDetail
	modeAging
	modeLedger
	modeTransactionDetail
	modeProfitLoss
)

var tabModes = []mode{modeBalances, modeAging, modeLedger, modeProfitLoss}

func tabLabel(m mode) string {
	switch m {
	case modeBalances:
		return "Balances"
	case modeAging:
		return "Aging"
	case modeLedger:
		return "Ledger"
	case modeProfitLoss:
		return "P&L"
	default:
		return ""
	}
}

type postDueDoneMsg struct {
	result *ledger.PostDueResult
	err    error
}

type App struct {
	client        *client.Client
	mode          mode
	tabIndex      int
	width, height int
	err           error
	statusMsg     string

	balances    balancesModel
	leaseDetail leaseDetailModel
	aging       agingModel
	entries     entryListModel
	txnDetail   txnDetailModel
	profitLoss  profitLossModel
}

func NewApp(c *client.Client) *App {
	return &App{
		client:   c,
		mode:     modeBalances,
		tabIndex: 0,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.balances.init(a.client),
		a.aging.init(a.client),
		a.entries.init(a.client),
		a.profitLoss.init(a.client),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.balances.width = msg.Width
		a.balances.height = msg.Height - 6
		a.aging.width = msg.Width
		a.aging.height = msg.Height - 6
		a.entries.width = msg.Width
		a.entries.height = msg.Height - 6
		a.profitLoss.width = msg.Width
		a.profitLoss.height = msg.Height - 6
		a.leaseDetail.width = msg.Width
		a.txnDetail.width = msg.Width
		return a, nil
	}

	// Loads fire concurrently from Init, so route them by type rather than
	// by the active mode.
	switch typedMsg := msg.(type) {
	case balancesLoadedMsg:
		var cmd tea.Cmd
		a.balances, cmd = a.balances.update(msg)
		return a, cmd
	case agingLoadedMsg:
		var cmd tea.Cmd
		a.aging, cmd = a.aging.update(msg)
		return a, cmd
	case entriesLoadedMsg:
		var cmd tea.Cmd
		a.entries, cmd = a.entries.update(msg)
		return a, cmd
	case profitLossLoadedMsg:
		var cmd tea.Cmd
		a.profitLoss, cmd = a.profitLoss.update(msg, a.client)
		return a, cmd
	case leaseDetailLoadedMsg:
		var cmd tea.Cmd
		a.leaseDetail, cmd = a.leaseDetail.update(msg)
		return a, cmd
	case txnDetailLoadedMsg:
		var cmd tea.Cmd
		a.txnDetail, cmd = a.txnDetail.update(msg)
		return a, cmd
	case postDueDoneMsg:
		if typedMsg.err != nil {
			a.err = typedMsg.err
			return a, nil
		}
		a.err = nil
		s := typedMsg.result.Summary
		a.statusMsg = fmt.Sprintf("Posted %d, skipped %d, %d errors", s.Posted, s.Skipped, len(s.Errors))
		return a, a.refreshAll()
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Tab):
			a.tabIndex = (a.tabIndex + 1) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, a.refreshTab()

		case key.Matches(msg, keys.ShiftTab):
			a.tabIndex = (a.tabIndex - 1 + len(tabModes)) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, a.refreshTab()

		case key.Matches(msg, keys.Escape):
			switch a.mode {
			case modeLeaseDetail:
				a.mode = modeBalances
			case modeTransactionDetail:
				a.mode = modeLedger
			}
			return a, nil

		case key.Matches(msg, keys.Refresh):
			a.err = nil
			return a, a.refreshTab()

		case key.Matches(msg, keys.PostDue):
			a.statusMsg = "Posting due charges..."
			return a, func() tea.Msg {
				res, err := a.client.PostDue(context.Background(), ledger.Date{})
				return postDueDoneMsg{result: res, err: err}
			}

		case key.Matches(msg, keys.Enter):
			switch a.mode {
			case modeBalances:
				if leaseID := a.balances.selectedID(); leaseID != "" {
					a.mode = modeLeaseDetail
					return a, a.leaseDetail.init(a.client, leaseID)
				}
				return a, nil
			case modeLedger:
				if txnID := a.entries.selectedID(); txnID != "" {
					a.mode = modeTransactionDetail
					return a, a.txnDetail.init(a.client, txnID)
				}
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	switch a.mode {
	case modeBalances:
		a.balances, cmd = a.balances.update(msg)
	case modeLeaseDetail:
		a.leaseDetail, cmd = a.leaseDetail.update(msg)
	case modeAging:
		a.aging, cmd = a.aging.update(msg)
	case modeLedger:
		a.entries, cmd = a.entries.update(msg)
	case modeTransactionDetail:
		a.txnDetail, cmd = a.txnDetail.update(msg)
	case modeProfitLoss:
		a.profitLoss, cmd = a.profitLoss.update(msg, a.client)
	}
	return a, cmd
}

func (a *App) refreshTab() tea.Cmd {
	switch a.mode {
	case modeBalances:
		return a.balances.init(a.client)
	case modeAging:
		return a.aging.init(a.client)
	case modeLedger:
		return a.entries.init(a.client)
	case modeProfitLoss:
		return a.profitLoss.init(a.client)
	}
	return nil
}

func (a *App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.balances.init(a.client),
		a.aging.init(a.client),
		a.entries.init(a.client),
		a.profitLoss.init(a.client),
	)
}

func (a *App) View() string {
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}

	var content string
	switch a.mode {
	case modeBalances:
		content = a.balances.view()
	case modeLeaseDetail:
		content = a.leaseDetail.view()
	case modeAging:
		content = a.aging.view()
	case modeLedger:
		content = a.entries.view()
	case modeTransactionDetail:
		content = a.txnDetail.view()
	case modeProfitLoss:
		content = a.profitLoss.view()
	}

	status := ""
	if a.statusMsg != "" {
		status = successStyle.Render(a.statusMsg)
	}
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	helpText := dimStyle.Render("tab:switch  enter:open  esc:back  r:refresh  p:post due  [/]:month  q:quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		boxStyle.Render(content),
		"",
		status,
		helpText,
	)
}
