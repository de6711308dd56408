package tui

import "github.com/charmbracelet/lipgloss"

// Palette (ANSI 256).
const (
	accent    = lipgloss.Color("99")
	bright    = lipgloss.Color("252")
	muted     = lipgloss.Color("241")
	faint     = lipgloss.Color("240")
	tabBg     = lipgloss.Color("236")
	tabFg     = lipgloss.Color("245")
	alert     = lipgloss.Color("196")
	good      = lipgloss.Color("82")
	overdue   = lipgloss.Color("203")
	creditLeg = lipgloss.Color("110")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	titleStyle    = fg(accent).Bold(true).MarginBottom(1)
	subtitleStyle = fg(muted)
	dimStyle      = fg(faint)
	selectedStyle = fg(accent).Bold(true)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(16)

	activeTabStyle   = fg(accent).Background(tabBg).Bold(true).Padding(0, 2)
	inactiveTabStyle = fg(tabFg).Padding(0, 2)

	errorStyle   = fg(alert)
	successStyle = fg(good)

	// AR balances: owed renders red, tenant credit green.
	owedStyle          = fg(overdue)
	creditBalanceStyle = fg(good)

	// Ledger legs.
	debitStyle  = fg(bright)
	creditStyle = fg(creditLeg)

	headerStyle = fg(bright).Bold(true).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(faint)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).BorderForeground(faint).Padding(0, 2)
)
