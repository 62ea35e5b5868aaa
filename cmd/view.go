package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/fileprobe/pkg/status"
)

var styleOK = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B785")).Bold(true)
var styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#e08dff")).Bold(true)
var styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("#e1244c")).Bold(true)
var styleUnknown = lipgloss.NewStyle().Foreground(lipgloss.Color("#5D689C")).Bold(true)

var styleResultBox = lipgloss.NewStyle().
	Padding(0, 1).
	BorderStyle(lipgloss.RoundedBorder()).
	Width(80)

func statusStyle(s status.Status) lipgloss.Style {
	switch s {
	case status.OK:
		return styleOK
	case status.Warning:
		return styleWarning
	case status.Critical:
		return styleCritical
	default:
		return styleUnknown
	}
}

func renderResult(r status.Result) string {
	style := statusStyle(r.Status)

	return styleResultBox.Copy().BorderForeground(style.GetForeground()).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			style.Render(r.Status.String()),
			r.Message,
		),
	)
}
