// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status line with shortcuts
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusSubmitting
	StatusError
	StatusOffline
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusSubmitting:
		return "Sending..."
	case StatusError:
		return "Error"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// indicator returns the accessibility indicator for the status.
func (s Status) indicator() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusSubmitting:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusOffline:
		return styles.StatusIndicators.Warning
	default:
		return styles.StatusIndicators.Info
	}
}

// Shortcut is a key hint shown in the status bar.
type Shortcut struct {
	Key   string
	Label string
}

// StatusBar is the bottom status line.
type StatusBar struct {
	Width     int
	Status    Status
	Note      string
	Shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a status bar with the default shortcut set.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:  80,
		Status: StatusReady,
		Shortcuts: []Shortcut{
			{Key: "enter", Label: "send"},
			{Key: "ctrl+n", Label: "new chat"},
			{Key: "ctrl+h", Label: "history"},
			{Key: "esc", Label: "back"},
			{Key: "ctrl+c", Label: "quit"},
		},
		theme: theme,
	}
}

// SetWidth sets the available width.
func (sb *StatusBar) SetWidth(width int) {
	sb.Width = width
}

// SetStatus sets the current status.
func (sb *StatusBar) SetStatus(status Status) {
	sb.Status = status
}

// SetNote sets a transient note shown after the status.
func (sb *StatusBar) SetNote(note string) {
	sb.Note = note
}

// View renders the status bar.
func (sb *StatusBar) View() string {
	statusColor := styles.TextSecondary
	switch sb.Status {
	case StatusError:
		statusColor = styles.Rose
	case StatusOffline:
		statusColor = styles.Amber
	case StatusReady:
		statusColor = styles.Forest
	}

	statusText := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(sb.Status.indicator() + " " + sb.Status.String())

	left := statusText
	if sb.Note != "" {
		left += "  " + lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(sb.Note)
	}

	var hints []string
	for _, s := range sb.Shortcuts {
		hints = append(hints,
			lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(s.Key)+
				" "+
				lipgloss.NewStyle().Foreground(styles.TextMuted).Render(s.Label))
	}
	right := strings.Join(hints, "  ")

	gap := sb.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 2 {
		// Drop shortcuts when there is no room.
		right = ""
		gap = sb.Width - lipgloss.Width(left) - 2
		if gap < 0 {
			gap = 0
		}
	}

	line := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Width(sb.Width).
		Padding(0, 1).
		Render(line)
}
