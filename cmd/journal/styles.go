package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	// LabelStyle for the left column of key/value blocks.
	LabelStyle = lipgloss.NewStyle().Faint(true).Width(22)

	// HelpStyle for hints.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	// ProfitStyle for positive amounts.
	ProfitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// LossStyle for negative amounts.
	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	// SectionStyle separates report sections.
	SectionStyle = lipgloss.NewStyle().MarginTop(1)
)

// FormatPnl formats a currency amount with a sign, colored by direction.
func FormatPnl(value float64) string {
	text := fmt.Sprintf("%+.2f", value)

	switch {
	case value > 0:
		return ProfitStyle.Render(text)
	case value < 0:
		return LossStyle.Render(text)
	default:
		return text
	}
}

// FormatPercent formats a percentage with two decimals.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
