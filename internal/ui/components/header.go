// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title bar with model badge and chat title
// =============================================================================

// Header is the top title bar: app name, active model tag, chat title.
type Header struct {
	Title     string
	ModelTag  string
	ChatTitle string
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "birdwatch",
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the available width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetModelTag sets the active model badge.
func (h *Header) SetModelTag(tag string) {
	h.ModelTag = tag
}

// SetChatTitle sets the title of the active chat.
func (h *Header) SetChatTitle(title string) {
	h.ChatTitle = title
}

// View renders the header line.
func (h *Header) View() string {
	title := h.theme.Header.Render(h.Title)

	badge := ""
	if h.ModelTag != "" {
		badge = h.theme.HeaderTag.Render(strings.ToUpper(h.ModelTag))
	}

	left := title
	if badge != "" {
		left = lipgloss.JoinHorizontal(lipgloss.Center, title, badge)
	}

	right := ""
	if h.ChatTitle != "" {
		maxTitle := h.Width - lipgloss.Width(left) - 4
		if maxTitle > 8 {
			right = lipgloss.NewStyle().
				Foreground(styles.TextSecondary).
				Render(util.TruncateWidth(h.ChatTitle, maxTitle))
		}
	}

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Width(h.Width).
		Render(line)
}
