// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/birdwatch-tui/internal/ui/components"
	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// nowFunc is swapped in tests for deterministic relative times.
var nowFunc = time.Now

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the full chat screen.
func (m *Model) View() string {
	if !m.ready {
		return "Starting birdwatch..."
	}

	if m.mode == modeHistory {
		return m.viewHistory()
	}
	return m.viewChat()
}

func (m *Model) viewChat() string {
	var sections []string

	sections = append(sections, m.header.View())

	switch {
	case m.controller.State() == StateError && m.controller.Err() != nil:
		banner := components.NewErrorBanner(m.controller.Err(), m.theme)
		banner.SetWidth(m.width)
		body := banner.View()
		if len(m.controller.Messages()) > 0 {
			body = lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), body)
		}
		sections = append(sections, body)

	case m.controller.Chat() == nil && m.controller.Pending() == nil:
		sections = append(sections, m.welcome.View())

	default:
		sections = append(sections, m.viewport.View())
	}

	if m.spinner.Active() {
		sections = append(sections, " "+m.spinner.View())
	}

	sections = append(sections, m.input.View())
	sections = append(sections, m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// ==========================================================================
// HISTORY VIEW
// ==========================================================================

func (m *Model) viewHistory() string {
	var sections []string

	sections = append(sections, m.header.View())

	title := m.theme.ListTitle.Render("Recent chats") +
		m.theme.ListMeta.Render("  ("+m.controller.ModelTag()+")")
	sections = append(sections, " "+title, "")

	switch {
	case m.historyErr != nil:
		banner := components.NewErrorBanner(m.historyErr, m.theme)
		banner.SetWidth(m.width)
		sections = append(sections, banner.View())

	case len(m.history) == 0:
		sections = append(sections, m.theme.EmptyState.Render("No chats yet for this model."))

	default:
		maxRows := m.height - 7
		if maxRows < 1 {
			maxRows = 1
		}
		start := 0
		if m.historyCursor >= maxRows {
			start = m.historyCursor - maxRows + 1
		}
		for i := start; i < len(m.history) && i < start+maxRows; i++ {
			sections = append(sections, m.historyRow(i))
		}
	}

	sections = append(sections, "")
	hint := m.theme.Shortcut.Render("enter open  esc back  ctrl+c quit")
	sections = append(sections, " "+hint)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) historyRow(i int) string {
	chat := m.history[i]

	title := chat.DisplayTitle()
	meta := util.FormatRelativeTime(chat.UpdatedAt(), nowFunc())

	maxTitle := m.width - util.StringWidth(meta) - 8
	if maxTitle < 10 {
		maxTitle = 10
	}
	title = util.TruncateWidth(title, maxTitle)

	line := title + strings.Repeat(" ", 2) + m.theme.ListMeta.Render(meta)
	if i == m.historyCursor {
		return m.theme.ListSelected.Render("> " + line)
	}
	return m.theme.ListItem.Render("  " + line)
}
