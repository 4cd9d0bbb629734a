// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING - Glamour-backed, cached per width
// =============================================================================

var (
	mdMu       sync.Mutex
	mdRenderer *glamour.TermRenderer
	mdWidth    int
)

// RenderMarkdown renders markdown text for terminal display at the given
// word-wrap width. The underlying renderer is rebuilt only when the width
// changes, since construction is expensive.
func RenderMarkdown(text string, width int) (string, error) {
	if width < 20 {
		width = 20
	}

	mdMu.Lock()
	defer mdMu.Unlock()

	if mdRenderer == nil || mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
			glamour.WithEmoji(),
		)
		if err != nil {
			return "", err
		}
		mdRenderer = r
		mdWidth = width
	}

	out, err := mdRenderer.Render(text)
	if err != nil {
		return "", err
	}

	// Glamour pads output with blank lines that waste bubble space.
	return strings.Trim(out, "\n"), nil
}
