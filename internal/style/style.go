// Package style centralizes the terminal styling used by cmd/nexus/app
// output: section banners, warnings, errors, and unreachable-node
// markers.
package style

import "github.com/charmbracelet/lipgloss"

var (
	// Banner styles a section heading (e.g. "Fleet overview").
	Banner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	// Warning styles a soft warning line, e.g. an unreachable node or an
	// elided dashboard pane list.
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// ErrorText styles a fatal diagnostic written to stderr.
	ErrorText = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	// Unreachable styles the "[UNREACHABLE]" tag for a node that did not
	// respond during fan-out.
	Unreachable = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)
