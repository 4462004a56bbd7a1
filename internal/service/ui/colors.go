// Package ui holds the terminal styles used by the CLI.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// ANSI colors keep the help readable on light and dark terminals.
	TitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)
