// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the birdwatch-tui application.
package util

import (
	"fmt"
	"time"
)

// FormatSize renders a byte count in human-readable form.
func FormatSize(bytes int) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatAccuracy renders a classifier confidence as a percentage.
func FormatAccuracy(accuracy float64) string {
	return fmt.Sprintf("%.1f%%", accuracy)
}

// FormatRelativeTime renders a timestamp relative to now, matching what
// history listings show ("just now", "5m ago", "3h ago", "2d ago"). Older
// timestamps fall back to a date.
func FormatRelativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
