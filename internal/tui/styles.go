package tui

import "github.com/charmbracelet/lipgloss"

var (
	brandStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	navItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	navActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1).Underline(true)
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)
