// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// library_cmd.go - Library listing commands for the birdwatch CLI.
//
// Handles "birdwatch sounds", "birdwatch maps", and "birdwatch news".
// On an interactive terminal these open the full-screen library
// browser; when piped or asked for --json they print a plain listing
// instead so the commands compose with scripts.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/birdwatch-tui/internal/ui/library"
)

// fetchTimeout bounds library listing requests.
const fetchTimeout = 15 * time.Second

// HandleSounds handles the "sounds" command.
func HandleSounds(args Args) error {
	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}

	if IsStdoutTTY() && !args.JSON {
		return runLibraryTUI(rt, library.SectionSounds)
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	sounds, err := rt.Client.ListBirdSounds(ctx, args.Limit)
	if err != nil {
		return describeAPIError(err)
	}

	if args.JSON {
		return printJSON(sounds)
	}

	for _, s := range sounds {
		fmt.Printf("%s\t%s\t%s\n", s.Title, s.Duration, s.Date)
	}
	return nil
}

// HandleMaps handles the "maps" command.
func HandleMaps(args Args) error {
	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}

	if IsStdoutTTY() && !args.JSON {
		return runLibraryTUI(rt, library.SectionMaps)
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	maps, err := rt.Client.ListBirdMaps(ctx, args.Limit)
	if err != nil {
		return describeAPIError(err)
	}

	if args.JSON {
		return printJSON(maps)
	}

	for _, m := range maps {
		fmt.Printf("%s\t%s\t%s\n", m.Title, m.Category, m.Date)
	}
	return nil
}

// HandleNews handles the "news" command.
func HandleNews(args Args) error {
	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}

	if IsStdoutTTY() && !args.JSON {
		return runLibraryTUI(rt, library.SectionNewsletters)
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	issues, err := rt.Client.ListNewsletters(ctx, args.Limit)
	if err != nil {
		return describeAPIError(err)
	}

	if args.JSON {
		return printJSON(issues)
	}

	for _, n := range issues {
		fmt.Printf("%s\t%s\t%s\n", n.Title, n.Category, n.Date)
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
