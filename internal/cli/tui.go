// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen TUI launchers.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/birdwatch-tui/internal/ui/chat"
	"github.com/jeranaias/birdwatch-tui/internal/ui/library"
)

// RunTUI starts the chat TUI. This is the default command.
func RunTUI(args Args) {
	rt, err := NewRuntime(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := chat.New(rt.Client, rt.Cache, rt.Config, Version)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running birdwatch: %v\n", err)
		os.Exit(1)
	}
}

// runLibraryTUI starts the library browser on the given section.
func runLibraryTUI(rt *Runtime, section library.Section) error {
	m := library.New(rt.Client, section)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
