// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the birdwatch TUI.

This package defines the complete color palette and prebuilt style set used
throughout the application. All colors use Lip Gloss AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Forest - Primary accent for assistant messages and selections
  - Sky - Brand color for headers and user highlights
  - Plume - Secondary accent for classifier results
  - Amber - Warnings and degraded states
  - Rose - Errors and critical alerts

## Message Bubble Colors

Message bubbles use semantic color tokens per speaker:

	UserBubbleBg / UserBubbleFg           - User messages (sky tones)
	AssistantBubbleBg / AssistantBubbleFg - Assistant replies (green tones)
	ResultBubbleBg / ResultBubbleFg       - Classifier results (violet tones)

## Text Colors

Hierarchical text color system:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text (timestamps, hints)
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct precomputes every style the views need, sized for the
current terminal:

	theme := styles.NewTheme(width, height)
	theme.SetSize(newWidth, newHeight)
	switch theme.Mode() {
	case styles.LayoutCompact:
		// narrow terminal, minimal chrome
	}

Styles are rebuilt only on resize, never inside a render loop.

# Usage Example

	import "github.com/jeranaias/birdwatch-tui/internal/ui/styles"

	theme := styles.NewTheme(80, 24)
	fmt.Println(theme.UserBubble.Render("hello"))
	fmt.Println(styles.RenderError("upload failed"))
*/
package styles
