package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-signal/internal/service"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// BuyStyle for buy decisions.
	BuyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	// WarnStyle for suppressed decisions.
	WarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// FormatDecision renders the one-line verdict of a decision.
func FormatDecision(d service.Decision) string {
	label := fmt.Sprintf("%s %s", d.Symbol, d.Name)

	switch {
	case d.Err != nil:
		return ErrorStyle.Render(fmt.Sprintf("%s: %v", label, d.Err))
	case d.Buy:
		return BuyStyle.Render(fmt.Sprintf("%s: %s", label, d.Reason))
	case d.Suppressed:
		return WarnStyle.Render(fmt.Sprintf("%s: %s", label, d.Reason))
	default:
		return fmt.Sprintf("%s: %s", label, d.Reason)
	}
}
