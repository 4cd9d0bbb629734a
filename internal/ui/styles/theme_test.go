// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestLayoutModeFor(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{0, LayoutNormal},
		{40, LayoutCompact},
		{59, LayoutCompact},
		{60, LayoutNormal},
		{80, LayoutNormal},
		{99, LayoutNormal},
		{100, LayoutWide},
		{200, LayoutWide},
	}
	for _, tt := range tests {
		if got := layoutModeFor(tt.width); got != tt.want {
			t.Errorf("layoutModeFor(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme(80, 24)
	if theme.Mode() != LayoutNormal {
		t.Errorf("expected LayoutNormal, got %v", theme.Mode())
	}

	theme.SetSize(50, 24)
	if theme.Mode() != LayoutCompact {
		t.Errorf("expected LayoutCompact after resize, got %v", theme.Mode())
	}
	if theme.Width() != 50 {
		t.Errorf("expected width 50, got %d", theme.Width())
	}

	theme.SetSize(120, 40)
	if theme.Mode() != LayoutWide {
		t.Errorf("expected LayoutWide after resize, got %v", theme.Mode())
	}
}

func TestBubbleWidth(t *testing.T) {
	// Zero width falls back to a sane default.
	theme := NewTheme(0, 0)
	if w := theme.bubbleWidth(); w != 76 {
		t.Errorf("expected default bubble width 76, got %d", w)
	}

	// Tiny terminals still get a usable minimum.
	theme.SetSize(10, 10)
	if w := theme.bubbleWidth(); w < 20 {
		t.Errorf("bubble width %d below minimum", w)
	}

	// Wide layout caps bubbles below full width.
	theme.SetSize(200, 50)
	if w := theme.bubbleWidth(); w != 150 {
		t.Errorf("expected capped width 150, got %d", w)
	}
}

func TestRenderHelpersIncludeIndicators(t *testing.T) {
	if !strings.Contains(RenderSuccess("done"), StatusIndicators.Success) {
		t.Error("RenderSuccess missing success indicator")
	}
	if !strings.Contains(RenderError("boom"), StatusIndicators.Error) {
		t.Error("RenderError missing error indicator")
	}
	if !strings.Contains(RenderWarning("careful"), StatusIndicators.Warning) {
		t.Error("RenderWarning missing warning indicator")
	}
	if !strings.Contains(RenderInfo("note"), StatusIndicators.Info) {
		t.Error("RenderInfo missing info indicator")
	}
}
