// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package library

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/ui/components"
	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the library browser.
func (m *Model) View() string {
	if !m.ready {
		return "Loading library..."
	}
	if m.inDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m *Model) viewList() string {
	var sections []string

	sections = append(sections, m.renderTabs(), "")

	switch {
	case m.spinner.Active():
		sections = append(sections, " "+m.spinner.View())

	case m.errs[m.section] != nil:
		sections = append(sections,
			m.theme.EmptyState.Render("Could not load "+m.section.String()+"."))
		banner := components.NewErrorBanner(m.errs[m.section], m.theme)
		banner.SetWidth(m.width)
		sections = append(sections, banner.View())

	case m.sectionLen() == 0:
		sections = append(sections,
			m.theme.EmptyState.Render("Nothing here yet."))

	default:
		maxRows := m.height - 6
		if maxRows < 1 {
			maxRows = 1
		}
		start := 0
		if m.cursor >= maxRows {
			start = m.cursor - maxRows + 1
		}
		for i := start; i < m.sectionLen() && i < start+maxRows; i++ {
			sections = append(sections, m.renderRow(i))
		}
	}

	sections = append(sections, "",
		" "+m.theme.Shortcut.Render("enter open  tab section  esc quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTabs() string {
	var tabs []string
	for s := SectionSounds; s <= SectionNewsletters; s++ {
		label := " " + s.String() + " "
		if s == m.section {
			tabs = append(tabs, m.theme.ListSelected.Render(label))
		} else {
			tabs = append(tabs, m.theme.ListItem.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}

func (m *Model) renderRow(i int) string {
	var title, meta string

	switch m.section {
	case SectionSounds:
		s := m.sounds[i]
		title = s.Title
		meta = s.Duration
		if s.Date != "" {
			meta = s.Date + "  " + meta
		}
	case SectionMaps:
		b := m.maps[i]
		title = b.Title
		meta = b.Category
		if b.ReadTime != "" {
			meta += "  " + b.ReadTime
		}
	default:
		n := m.newsletters[i]
		title = n.Title
		meta = n.Date
	}

	maxTitle := m.width - util.StringWidth(meta) - 8
	if maxTitle < 10 {
		maxTitle = 10
	}
	line := util.TruncateWidth(title, maxTitle) + "  " + m.theme.ListMeta.Render(meta)

	if i == m.cursor {
		return m.theme.ListSelected.Render("> " + line)
	}
	return m.theme.ListItem.Render("  " + line)
}

// ==========================================================================
// DETAIL VIEW
// ==========================================================================

func (m *Model) viewDetail() string {
	title := m.theme.ListTitle.Render(m.detailTitle())
	hint := m.theme.Shortcut.Render("up/down scroll  esc back")

	return lipgloss.JoinVertical(lipgloss.Left,
		" "+title,
		"",
		m.detail.View(),
		" "+hint,
	)
}

func (m *Model) detailTitle() string {
	switch m.section {
	case SectionSounds:
		return m.sounds[m.cursor].Title
	case SectionMaps:
		return m.maps[m.cursor].Title
	default:
		return m.newsletters[m.cursor].Title
	}
}

// detailContent builds the markdown body for the selected entry, rendered
// through the shared Glamour renderer.
func (m *Model) detailContent() string {
	width := m.width - 4

	var md strings.Builder
	switch m.section {
	case SectionSounds:
		s := m.sounds[m.cursor]
		writeField(&md, "Date", s.Date)
		writeField(&md, "Duration", s.Duration)
		if s.Caption != "" {
			md.WriteString("\n" + s.Caption + "\n")
		}
		writeField(&md, "Listen", api.BirdSoundAudioURL(m.client.BaseURL(), s.AudioName()))

	case SectionMaps:
		b := m.maps[m.cursor]
		writeField(&md, "Category", b.Category)
		writeField(&md, "Date", b.Date)
		writeField(&md, "Read time", b.ReadTime)
		if b.Excerpt != "" {
			md.WriteString("\n*" + b.Excerpt + "*\n")
		}
		if b.Detail != "" {
			md.WriteString("\n" + b.Detail + "\n")
		}

	default:
		n := m.newsletters[m.cursor]
		writeField(&md, "Category", n.Category)
		writeField(&md, "Date", n.Date)
		if n.Excerpt != "" {
			md.WriteString("\n*" + n.Excerpt + "*\n")
		}
		if n.Detail != "" {
			md.WriteString("\n" + n.Detail + "\n")
		}
	}

	rendered, err := components.RenderMarkdown(md.String(), width)
	if err != nil {
		return md.String()
	}
	return rendered
}

func writeField(md *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	md.WriteString("**" + label + ":** " + value + "\n\n")
}
