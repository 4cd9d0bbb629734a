// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// LAYOUT MODES
// =============================================================================

// LayoutMode determines how much chrome the UI renders at a given width.
type LayoutMode int

const (
	// LayoutCompact - narrow terminals, minimal chrome
	LayoutCompact LayoutMode = iota
	// LayoutNormal - standard layout
	LayoutNormal
	// LayoutWide - wide terminals, full chrome and padded bubbles
	LayoutWide
)

const (
	compactBreakpoint = 60
	wideBreakpoint    = 100
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds all pre-built styles for the UI. Styles are computed once at
// construction and recomputed on resize, never in render loops.
type Theme struct {
	width  int
	height int
	mode   LayoutMode

	// Color profile detected from the terminal
	Profile termenv.Profile

	// App chrome
	App       lipgloss.Style
	Header    lipgloss.Style
	HeaderTag lipgloss.Style
	StatusBar lipgloss.Style
	Shortcut  lipgloss.Style

	// Message bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ResultBubble    lipgloss.Style
	BubbleLabel     lipgloss.Style
	Timestamp       lipgloss.Style

	// Input area
	Input       lipgloss.Style
	InputActive lipgloss.Style
	Placeholder lipgloss.Style

	// Feedback
	Spinner  lipgloss.Style
	Thinking lipgloss.Style
	ErrorBox lipgloss.Style

	// Lists (chat history, library browsing)
	ListTitle    lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListMeta     lipgloss.Style

	// Welcome / empty states
	WelcomeBox lipgloss.Style
	EmptyState lipgloss.Style
}

// NewTheme creates a theme sized for the given terminal dimensions.
func NewTheme(width, height int) *Theme {
	t := &Theme{
		width:   width,
		height:  height,
		Profile: termenv.ColorProfile(),
	}
	t.mode = layoutModeFor(width)
	t.initStyles()
	return t
}

// SetSize updates the theme for a new terminal size and rebuilds the styles
// that depend on it.
func (t *Theme) SetSize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.width = width
	t.height = height
	t.mode = layoutModeFor(width)
	t.initStyles()
}

// Width returns the terminal width the theme was built for.
func (t *Theme) Width() int { return t.width }

// Height returns the terminal height the theme was built for.
func (t *Theme) Height() int { return t.height }

// Mode returns the active layout mode.
func (t *Theme) Mode() LayoutMode { return t.mode }

func layoutModeFor(width int) LayoutMode {
	switch {
	case width > 0 && width < compactBreakpoint:
		return LayoutCompact
	case width >= wideBreakpoint:
		return LayoutWide
	default:
		return LayoutNormal
	}
}

// bubbleWidth computes the max width for a message bubble at the current size.
func (t *Theme) bubbleWidth() int {
	if t.width <= 0 {
		return 76
	}
	w := t.width - 4
	if t.mode == LayoutWide {
		// Cap bubbles so long replies stay readable on ultrawide terminals.
		w = t.width * 3 / 4
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (t *Theme) initStyles() {
	bw := t.bubbleWidth()

	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Header = lipgloss.NewStyle().
		Foreground(Sky).
		Bold(true).
		Padding(0, 1)

	t.HeaderTag = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Forest).
		Padding(0, 1).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Shortcut = lipgloss.NewStyle().
		Foreground(TextMuted)

	pad := 1
	if t.mode == LayoutCompact {
		pad = 0
	}

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, pad).
		MaxWidth(bw)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, pad).
		MaxWidth(bw)

	t.ResultBubble = lipgloss.NewStyle().
		Foreground(ResultBubbleFg).
		Background(ResultBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ResultBubbleBorder).
		Padding(0, pad).
		MaxWidth(bw)

	t.BubbleLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputActive = t.Input.Copy().
		BorderForeground(Sky)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Forest)

	t.Thinking = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ErrorBox = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1).
		MaxWidth(bw)

	t.ListTitle = lipgloss.NewStyle().
		Foreground(Sky).
		Bold(true)

	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ListSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Forest).
		Bold(true).
		Padding(0, 1)

	t.ListMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.WelcomeBox = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2).
		MaxWidth(bw)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)
}
