// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BANNER COMPONENT
// =============================================================================

// ErrorBanner renders a failure with a friendly title and recovery hint.
type ErrorBanner struct {
	Err   error
	Width int
	theme *styles.Theme
}

// NewErrorBanner creates a banner for the given error.
func NewErrorBanner(err error, theme *styles.Theme) *ErrorBanner {
	return &ErrorBanner{
		Err:   err,
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the available width.
func (e *ErrorBanner) SetWidth(width int) {
	e.Width = width
}

// describe maps an error to a title and a recovery suggestion.
func (e *ErrorBanner) describe() (title, detail, hint string) {
	err := e.Err
	switch {
	case api.IsUnreachable(err):
		return "Cannot reach the birdwatch server",
			err.Error(),
			"Check that the server is running and BIRDWATCH_API_URL points at it."
	case api.IsTimeout(err):
		return "Request timed out",
			err.Error(),
			"The server may be busy classifying audio. Try again, or raise the timeout in the config."
	case api.IsChatNotFound(err):
		return "Chat not found",
			err.Error(),
			"It may have been deleted on the server. Press ctrl+n to start a new chat."
	default:
		return "Something went wrong",
			err.Error(),
			"Press enter to retry, or esc to dismiss."
	}
}

// View renders the banner.
func (e *ErrorBanner) View() string {
	if e.Err == nil {
		return ""
	}

	title, detail, hint := e.describe()

	maxContentWidth := e.Width - 8
	if maxContentWidth < 30 {
		maxContentWidth = 30
	}

	titleLine := styles.RenderError(title)
	detailLine := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(wordWrap(detail, maxContentWidth))
	hintLine := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render(wordWrap(hint, maxContentWidth))

	body := lipgloss.JoinVertical(lipgloss.Left, titleLine, detailLine, "", hintLine)

	return e.theme.ErrorBox.Render(body)
}
