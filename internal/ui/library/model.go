// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package library provides the browsing views for the curated content:
// bird sounds, bird maps, and newsletters.
package library

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/ui/components"
	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
)

// =============================================================================
// SECTIONS
// =============================================================================

// Section identifies which collection is being browsed.
type Section int

const (
	SectionSounds Section = iota
	SectionMaps
	SectionNewsletters
)

// String returns the section's display title.
func (s Section) String() string {
	switch s {
	case SectionSounds:
		return "Bird Sounds"
	case SectionMaps:
		return "Bird Maps"
	case SectionNewsletters:
		return "Newsletters"
	default:
		return "Library"
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// SoundsLoadedMsg delivers the bird sound catalog.
type SoundsLoadedMsg struct {
	Sounds []api.BirdSound
	Err    error
}

// MapsLoadedMsg delivers the bird map articles.
type MapsLoadedMsg struct {
	Maps []api.BirdMap
	Err  error
}

// NewslettersLoadedMsg delivers the newsletter issues.
type NewslettersLoadedMsg struct {
	Newsletters []api.Newsletter
	Err         error
}

// =============================================================================
// COMMANDS
// =============================================================================

const fetchTimeout = 15 * time.Second

// LoadSoundsCmd fetches the bird sound catalog.
func LoadSoundsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		sounds, err := client.ListBirdSounds(ctx, 0)
		return SoundsLoadedMsg{Sounds: sounds, Err: err}
	}
}

// LoadMapsCmd fetches the bird map articles.
func LoadMapsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		maps, err := client.ListBirdMaps(ctx, 0)
		return MapsLoadedMsg{Maps: maps, Err: err}
	}
}

// LoadNewslettersCmd fetches the newsletter issues.
func LoadNewslettersCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		newsletters, err := client.ListNewsletters(ctx, 0)
		return NewslettersLoadedMsg{Newsletters: newsletters, Err: err}
	}
}

// =============================================================================
// LIBRARY MODEL
// =============================================================================

// KeyMap defines the library view key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	NextTab key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default library bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "previous")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("down", "next")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// Model is the Bubble Tea model for the library browser. Each section keeps
// its own fetched entries; a fetch failure shows an empty state with the
// error rather than aborting the program.
type Model struct {
	client *api.Client
	theme  *styles.Theme
	keyMap KeyMap

	section Section
	width   int
	height  int

	sounds      []api.BirdSound
	maps        []api.BirdMap
	newsletters []api.Newsletter
	loaded      [3]bool
	errs        [3]error

	cursor   int
	inDetail bool
	detail   viewport.Model
	ready    bool

	spinner components.Spinner
}

// New creates a library browser starting at the given section.
func New(client *api.Client, section Section) *Model {
	return &Model{
		client:  client,
		theme:   styles.NewTheme(80, 24),
		keyMap:  DefaultKeyMap(),
		section: section,
		spinner: components.NewSpinner(),
	}
}

// Init fetches the starting section.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Start(), m.fetchSection(m.section))
}

func (m *Model) fetchSection(s Section) tea.Cmd {
	switch s {
	case SectionSounds:
		return LoadSoundsCmd(m.client)
	case SectionMaps:
		return LoadMapsCmd(m.client)
	default:
		return LoadNewslettersCmd(m.client)
	}
}

// sectionLen returns the entry count for the active section.
func (m *Model) sectionLen() int {
	switch m.section {
	case SectionSounds:
		return len(m.sounds)
	case SectionMaps:
		return len(m.maps)
	default:
		return len(m.newsletters)
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		if !m.ready {
			m.detail = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.detail.Width = msg.Width
			m.detail.Height = msg.Height - 4
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SoundsLoadedMsg:
		m.spinner.Stop()
		m.sounds, m.errs[SectionSounds] = msg.Sounds, msg.Err
		m.loaded[SectionSounds] = true
		return m, nil

	case MapsLoadedMsg:
		m.spinner.Stop()
		m.maps, m.errs[SectionMaps] = msg.Maps, msg.Err
		m.loaded[SectionMaps] = true
		return m, nil

	case NewslettersLoadedMsg:
		m.spinner.Stop()
		m.newsletters, m.errs[SectionNewsletters] = msg.Newsletters, msg.Err
		m.loaded[SectionNewsletters] = true
		return m, nil

	default:
		return m, m.spinner.Update(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Back):
		if m.inDetail {
			m.inDetail = false
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.NextTab):
		if m.inDetail {
			return m, nil
		}
		m.section = (m.section + 1) % 3
		m.cursor = 0
		if !m.loaded[m.section] {
			return m, tea.Batch(m.spinner.Start(), m.fetchSection(m.section))
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.inDetail {
			m.detail.LineUp(1)
		} else if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.inDetail {
			m.detail.LineDown(1)
		} else if m.cursor < m.sectionLen()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Open):
		if !m.inDetail && m.cursor < m.sectionLen() {
			m.openDetail()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) openDetail() {
	if !m.ready {
		return
	}
	m.detail.SetContent(m.detailContent())
	m.detail.GotoTop()
	m.inDetail = true
}
