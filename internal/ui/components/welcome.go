// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN COMPONENT
// =============================================================================

// Welcome is the empty-chat welcome screen.
type Welcome struct {
	version  string
	modelTag string
	width    int
	height   int
	theme    *styles.Theme
}

// NewWelcome creates a welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetModelTag sets the active model tag.
func (w *Welcome) SetModelTag(tag string) {
	w.modelTag = tag
}

// SetSize sets the available dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// View renders the welcome screen.
func (w *Welcome) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Sky).
		Bold(true)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary)
	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	lines := []string{
		titleStyle.Render("birdwatch " + w.version),
		"",
		subtitleStyle.Render("Identify birds by description or by sound."),
		"",
		hintStyle.Render("Type a description and press enter to start a chat."),
		hintStyle.Render("/attach <path>   stage an audio recording or photo"),
		hintStyle.Render("/model <tag>     switch model"),
		hintStyle.Render("ctrl+h           browse chat history"),
	}
	if w.modelTag != "" {
		lines = append(lines, "",
			hintStyle.Render("active model: ")+
				lipgloss.NewStyle().Foreground(styles.Forest).Render(w.modelTag))
	}

	box := w.theme.WelcomeBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	if w.width > 0 && w.height > 0 {
		return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
